// Package world models the static level geometry and the viewer moving through it.
//
// Elevations grow downward, like screen Y: a floor at 1 lies below a ceiling
// at 0. A cell whose floor and ceiling elevations are equal is solid.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/texture"
)

// Grid construction errors.
var (
	ErrBadDimensions  = errors.New("world: invalid grid dimensions")
	ErrNotEnclosed    = errors.New("world: grid border is not solid")
	ErrInvertedCell   = errors.New("world: cell ceiling lies below its floor")
	ErrMissingTexture = errors.New("world: cell is missing a texture")
)

// Cell is one grid square.
type Cell struct {
	Floor   float64 // Floor elevation
	Ceiling float64 // Ceiling elevation, never greater than Floor

	Wall        *texture.Texture // Faces of floor steps and full walls
	UpperWall   *texture.Texture // Faces of ceiling steps; nil falls back to Wall
	FloorFlat   *texture.Texture
	CeilingFlat *texture.Texture
}

// Solid reports whether the cell fills its whole vertical extent.
func (c *Cell) Solid() bool {
	return c.Floor == c.Ceiling
}

// Clearance returns the open height between floor and ceiling.
func (c *Cell) Clearance() float64 {
	return c.Floor - c.Ceiling
}

// CeilingWall returns the texture for faces where the ceiling steps.
func (c *Cell) CeilingWall() *texture.Texture {
	if c.UpperWall != nil {
		return c.UpperWall
	}
	return c.Wall
}

// GridMap is an immutable rectangular grid of cells stored row-major.
// Every map built through NewGridMap has a solid border, so rays cast from
// inside it always terminate.
type GridMap struct {
	width  int
	height int
	cells  []Cell
}

// NewGridMap validates and copies cells into a new map.
func NewGridMap(width, height int, cells []Cell) (*GridMap, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrBadDimensions, len(cells), width, height)
	}

	g := &GridMap{
		width:  width,
		height: height,
		cells:  make([]Cell, len(cells)),
	}
	copy(g.cells, cells)

	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GridMap) validate() error {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.At(x, y)
			if c.Ceiling > c.Floor {
				return fmt.Errorf("%w at (%d, %d): floor %g, ceiling %g", ErrInvertedCell, x, y, c.Floor, c.Ceiling)
			}
			border := x == 0 || y == 0 || x == g.width-1 || y == g.height-1
			if border && !c.Solid() {
				return fmt.Errorf("%w at (%d, %d)", ErrNotEnclosed, x, y)
			}
			if c.Wall == nil {
				return fmt.Errorf("%w at (%d, %d): wall", ErrMissingTexture, x, y)
			}
			if !c.Solid() && (c.FloorFlat == nil || c.CeilingFlat == nil) {
				return fmt.Errorf("%w at (%d, %d): floor or ceiling", ErrMissingTexture, x, y)
			}
		}
	}
	return nil
}

// Width returns the number of columns.
func (g *GridMap) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *GridMap) Height() int {
	return g.height
}

// InBounds checks if integer coordinates are within the grid.
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at integer coordinates, or nil when out of bounds.
func (g *GridMap) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// CellAt returns the cell containing a floating point position.
func (g *GridMap) CellAt(p core.Vec2) (*Cell, bool) {
	x, y := p.Floor()
	c := g.At(x, y)
	return c, c != nil
}

// ElevationsAt returns the floor and ceiling elevations of the cell
// containing p. ok is false when p lies outside the grid.
func (g *GridMap) ElevationsAt(p core.Vec2) (floor, ceiling float64, ok bool) {
	c, ok := g.CellAt(p)
	if !ok {
		return 0, 0, false
	}
	return c.Floor, c.Ceiling, true
}
