package render

import (
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/texture"
)

// indexTexture returns a texture whose texel i has color i*10 in every channel.
func indexTexture(t *testing.T, w, h int) *texture.Texture {
	t.Helper()
	pixels := make([]core.RGB, w*h)
	for i := range pixels {
		v := uint8(i * 10)
		pixels[i] = core.PackRGB(v, v, v)
	}
	tex, err := texture.New("index", w, h, pixels)
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func gray(i int) core.RGB {
	v := uint8(i * 10)
	return core.PackRGB(v, v, v)
}

func TestDrawWallWraps(t *testing.T) {
	tex := indexTexture(t, 1, 4)

	tests := []struct {
		name          string
		topV, bottomV float64
		rows          int
		want          []int
	}{
		{"negative start, two texels per row", -1.25, 2.75, 8, []int{3, 1, 3, 1, 3, 1, 3, 1}},
		{"upside down", 2, -1, 6, []int{0, 2, 0, 2, 0, 2}},
		{"one texel per row", 0, 1, 4, []int{0, 1, 2, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := core.NewPixelBuffer(2, tc.rows)
			r := NewRasterizer(buf)
			r.DrawWall(1, &WallStrip{
				TopY: 0, BottomY: tc.rows,
				Texture: tex, U: 0.5,
				TopV: tc.topV, BottomV: tc.bottomV,
				Lighting: 1,
			})
			for y, texel := range tc.want {
				if got := buf.Get(1, y); got != gray(texel) {
					t.Errorf("row %d = %s, expected texel %d", y, got.Hex(), texel)
				}
				if got := buf.Get(0, y); got != 0 {
					t.Errorf("column 0 row %d was drawn", y)
				}
			}
		})
	}
}

func TestDrawSpanWraps(t *testing.T) {
	tests := []struct {
		name string
		row  SpanRow
		w, h int
		want []int
	}{
		{
			name: "leftward",
			row:  SpanRow{Y: 0, StartX: 0, EndX: 4, U: 0.75, UStep: -0.5, Lighting: 1},
			w:    4, h: 1,
			want: []int{3, 1, 3, 1},
		},
		{
			name: "diagonal",
			row:  SpanRow{Y: 0, StartX: 0, EndX: 4, U: 0, V: -0.25, UStep: 0.25, VStep: 0.5, Lighting: 1},
			w:    4, h: 4,
			want: []int{12, 5, 14, 7},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := core.NewPixelBuffer(4, 1)
			r := NewRasterizer(buf)
			r.DrawSpan(&Span{Kind: SurfaceFloor, Texture: indexTexture(t, tc.w, tc.h), TopY: 0, BottomY: 1, Rows: []SpanRow{tc.row}})
			for x, texel := range tc.want {
				if got := buf.Get(x, 0); got != gray(texel) {
					t.Errorf("column %d = %s, expected texel %d", x, got.Hex(), texel)
				}
			}
		})
	}
}

func TestDrawAppliesLighting(t *testing.T) {
	buf := core.NewPixelBuffer(1, 1)
	r := NewRasterizer(buf)
	r.DrawWall(0, &WallStrip{
		TopY: 0, BottomY: 1,
		Texture:  texture.Solid("white", 0xc8c8c8),
		BottomV:  1,
		Lighting: 0.5,
	})
	if got := buf.Get(0, 0); got != 0x646464 {
		t.Errorf("half-lit texel = %s, expected #646464", got.Hex())
	}
}
