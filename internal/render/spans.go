package render

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/texture"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// SpanRow is one screen row of a span, drawn over columns [StartX, EndX).
type SpanRow struct {
	Y            int
	StartX, EndX int
	U, V         float64 // Texture coordinates at StartX, in [0, 1)
	UStep, VStep float64 // Texture coordinate change per column
	Lighting     float64
}

// Span is a floor or ceiling region covering rows [TopY, BottomY) over one
// or more adjacent columns. Rows[i] describes screen row TopY+i.
type Span struct {
	Kind          Surface
	Elevation     float64
	Texture       *texture.Texture
	TopY, BottomY int
	Rows          []SpanRow
}

// SpanCollector merges the flat strips of adjacent columns into spans,
// so floors and ceilings can be drawn row by row.
type SpanCollector struct {
	proj  *Projection
	light Lighting
	rows  []SpanRow // scratch, indexed by screen row
}

// NewSpanCollector creates a collector lighting flats with light.
func NewSpanCollector(proj *Projection, light Lighting) *SpanCollector {
	return &SpanCollector{proj: proj, light: light}
}

// flatRecord is a flat strip in the collector's working arena.
type flatRecord struct {
	strip FlatStrip
	used  bool
}

// arena is a frame-local copy of every flat strip, grouped by column.
// Column x owns records[starts[x]:starts[x+1]]; len(starts) is columns+1.
type arena struct {
	records []flatRecord
	starts  []int
}

func newArena(columns []Column) *arena {
	a := &arena{starts: make([]int, len(columns)+1)}
	for x, column := range columns {
		a.starts[x] = len(a.records)
		for _, s := range column {
			if f, ok := s.(*FlatStrip); ok {
				a.records = append(a.records, flatRecord{strip: *f})
			}
		}
	}
	a.starts[len(columns)] = len(a.records)
	return a
}

func (a *arena) column(x int) []flatRecord {
	return a.records[a.starts[x]:a.starts[x+1]]
}

// Collect flood-fills the flat strips of columns into spans. Columns are not
// modified; matched strips are only marked in a private working copy.
func (c *SpanCollector) Collect(pov *world.PointOfView, columns []Column) []Span {
	if len(c.rows) != c.proj.ScreenHeight {
		c.rows = make([]SpanRow, c.proj.ScreenHeight)
	}

	a := newArena(columns)
	var spans []Span
	for x := range columns {
		col := a.column(x)
		for i := range col {
			if col[i].used {
				continue
			}
			col[i].used = true
			spans = append(spans, c.grow(pov, a, &col[i].strip, x))
		}
	}
	return spans
}

// grow builds the span that starts with strip in column startX and extends
// it rightward as long as a matching, overlapping strip continues it.
func (c *SpanCollector) grow(pov *world.PointOfView, a *arena, strip *FlatStrip, startX int) Span {
	span := Span{
		Kind:      strip.Kind,
		Elevation: strip.Elevation,
		Texture:   strip.Texture,
		TopY:      strip.TopY,
		BottomY:   strip.BottomY,
	}
	rows := c.rows
	for y := strip.TopY; y < strip.BottomY; y++ {
		rows[y] = c.projectRow(pov, startX, y, span.Elevation)
	}

	activeTop, activeBottom := strip.TopY, strip.BottomY
	x := startX + 1
	for ; x < len(a.starts)-1; x++ {
		next := c.continuation(a.column(x), strip, &span, activeTop, activeBottom)
		if next == nil {
			break
		}

		// Rows entering the span start here.
		if next.TopY < activeTop {
			for y := next.TopY; y < activeTop; y++ {
				rows[y] = c.projectRow(pov, x, y, span.Elevation)
			}
			span.TopY = next.TopY
		}
		if next.BottomY > activeBottom {
			for y := activeBottom; y < next.BottomY; y++ {
				rows[y] = c.projectRow(pov, x, y, span.Elevation)
			}
			span.BottomY = next.BottomY
		}

		// Rows leaving the span end here.
		for y := activeTop; y < next.TopY; y++ {
			rows[y].EndX = x
		}
		for y := next.BottomY; y < activeBottom; y++ {
			rows[y].EndX = x
		}

		activeTop, activeBottom = next.TopY, next.BottomY
	}

	for y := activeTop; y < activeBottom; y++ {
		rows[y].EndX = x
	}
	span.Rows = make([]SpanRow, span.BottomY-span.TopY)
	copy(span.Rows, rows[span.TopY:span.BottomY])
	return span
}

// continuation finds and claims the strip in col that extends the span.
// A candidate must match the span's surface, overlap the active rows, and
// may only grow past the active rows on a side where the span has not
// already closed rows.
func (c *SpanCollector) continuation(col []flatRecord, seed *FlatStrip, span *Span, activeTop, activeBottom int) *FlatStrip {
	for i := range col {
		rec := &col[i]
		cand := &rec.strip
		switch {
		case rec.used, !cand.match(seed):
			continue
		case cand.TopY >= activeBottom || cand.BottomY <= activeTop:
			continue
		case cand.BottomY > activeBottom && activeBottom < span.BottomY:
			continue
		case cand.TopY < activeTop && activeTop > span.TopY:
			continue
		}
		rec.used = true
		return cand
	}
	return nil
}

// projectRow seeds the texturing of row y at column x.
func (c *SpanCollector) projectRow(pov *world.PointOfView, x, y int, elevation float64) SpanRow {
	row := SpanRow{Y: y, StartX: x, EndX: x}
	un, ok := c.proj.Unproject(pov, x, y, elevation)
	if !ok {
		return row
	}

	// World distance covered by one screen column at this depth.
	scale := c.proj.PlaneWidth / float64(c.proj.ScreenWidth) * un.Z / c.proj.Distance
	row.U = core.Frac(un.Mapped.X)
	row.V = core.Frac(un.Mapped.Y)
	row.UStep = pov.Right.X * scale
	row.VStep = pov.Right.Y * scale
	row.Lighting = c.light.Factor(core.V(0, 1), un.Z, core.V(un.Z, pov.Elevation-elevation))
	return row
}
