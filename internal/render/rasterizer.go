package render

import "github.com/vovakirdan/tui-raycaster/internal/core"

// Rasterizer draws wall strips and flat spans into a pixel buffer using
// nearest-neighbor texture sampling with toroidal wrap.
type Rasterizer struct {
	buf *core.PixelBuffer
}

// NewRasterizer creates a rasterizer writing into buf.
func NewRasterizer(buf *core.PixelBuffer) *Rasterizer {
	return &Rasterizer{buf: buf}
}

// DrawColumns draws the wall strips of every column. Flat strips are skipped;
// they are drawn through spans.
func (r *Rasterizer) DrawColumns(columns []Column) {
	for x, column := range columns {
		for _, s := range column {
			if w, ok := s.(*WallStrip); ok {
				r.DrawWall(x, w)
			}
		}
	}
}

// DrawWall draws one wall strip down column x.
func (r *Rasterizer) DrawWall(x int, w *WallStrip) {
	if w.BottomY <= w.TopY {
		return
	}
	tex := w.Texture
	texels := tex.Column(int(float64(tex.Width) * core.Frac(w.U)))

	h := float64(tex.Height)
	v := core.Wrap(w.TopV*h, h)
	step := h * (w.BottomV - w.TopV) / float64(w.BottomY-w.TopY)

	i := r.buf.Offset(x, w.TopY)
	stride := r.buf.Stride()
	for y := w.TopY; y < w.BottomY; y++ {
		r.buf.Shade(i, texels[int(v)], w.Lighting)
		i += stride
		v += step
		if v >= h || v < 0 {
			v = core.Wrap(v, h)
		}
	}
}

// DrawSpans draws every row of every span.
func (r *Rasterizer) DrawSpans(spans []Span) {
	for i := range spans {
		r.DrawSpan(&spans[i])
	}
}

// DrawSpan draws each row of a span left to right.
func (r *Rasterizer) DrawSpan(s *Span) {
	tex := s.Texture
	w, h := float64(tex.Width), float64(tex.Height)

	for ri := range s.Rows {
		row := &s.Rows[ri]
		u := core.Wrap(row.U*w, w)
		v := core.Wrap(row.V*h, h)
		du, dv := row.UStep*w, row.VStep*h

		i := r.buf.Offset(row.StartX, row.Y)
		for x := row.StartX; x < row.EndX; x++ {
			r.buf.Shade(i, tex.Pixels[int(v)*tex.Width+int(u)], row.Lighting)
			i += 4
			u += du
			if u >= w || u < 0 {
				u = core.Wrap(u, w)
			}
			v += dv
			if v >= h || v < 0 {
				v = core.Wrap(v, h)
			}
		}
	}
}
