package world

// Builder assembles the cells of a GridMap before validation.
type Builder struct {
	width  int
	height int
	cells  []Cell
}

// NewBuilder creates a builder for a width x height grid of zero cells.
func NewBuilder(width, height int) *Builder {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Builder{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Set places a cell at integer coordinates. Out-of-bounds coordinates are ignored.
func (b *Builder) Set(x, y int, c Cell) *Builder {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y*b.width+x] = c
	}
	return b
}

// Fill sets every cell to c.
func (b *Builder) Fill(c Cell) *Builder {
	for i := range b.cells {
		b.cells[i] = c
	}
	return b
}

// Border sets every perimeter cell to c.
func (b *Builder) Border(c Cell) *Builder {
	for x := 0; x < b.width; x++ {
		b.Set(x, 0, c)
		b.Set(x, b.height-1, c)
	}
	for y := 0; y < b.height; y++ {
		b.Set(0, y, c)
		b.Set(b.width-1, y, c)
	}
	return b
}

// Build validates the cells and returns the finished map.
func (b *Builder) Build() (*GridMap, error) {
	return NewGridMap(b.width, b.height, b.cells)
}
