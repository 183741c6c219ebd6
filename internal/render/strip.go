package render

import (
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/texture"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Surface tells walls, floors and ceilings apart.
type Surface uint8

const (
	SurfaceWall Surface = iota
	SurfaceFloor
	SurfaceCeiling
)

// String returns a human-readable name for the surface.
func (s Surface) String() string {
	switch s {
	case SurfaceWall:
		return "wall"
	case SurfaceFloor:
		return "floor"
	case SurfaceCeiling:
		return "ceiling"
	default:
		return "unknown"
	}
}

// Strip is a vertical run of pixels [TopY, BottomY) inside one screen column.
// It is either a *WallStrip or a *FlatStrip.
type Strip interface {
	Surface() Surface
	Bounds() (top, bottom int)
	isStrip()
}

// WallStrip is a visible piece of a wall face.
type WallStrip struct {
	TopY, BottomY int
	Texture       *texture.Texture
	U             float64 // Horizontal texture coordinate in [0, 1)
	TopV, BottomV float64 // Vertical texture coordinates at TopY and BottomY
	Lighting      float64
}

// Surface implements Strip.
func (w *WallStrip) Surface() Surface { return SurfaceWall }

// Bounds implements Strip.
func (w *WallStrip) Bounds() (int, int) { return w.TopY, w.BottomY }

func (w *WallStrip) isStrip() {}

// FlatStrip is a visible piece of a floor or ceiling in one column.
// Texturing is resolved later, per row, by the span collector.
type FlatStrip struct {
	Kind          Surface // SurfaceFloor or SurfaceCeiling
	TopY, BottomY int
	Elevation     float64
	Texture       *texture.Texture
}

// Surface implements Strip.
func (f *FlatStrip) Surface() Surface { return f.Kind }

// Bounds implements Strip.
func (f *FlatStrip) Bounds() (int, int) { return f.TopY, f.BottomY }

func (f *FlatStrip) isStrip() {}

// Column is the strips of one screen column, top to bottom, non-overlapping.
type Column []Strip

// Intersection is a change of floor or ceiling elevation found along a ray.
type Intersection struct {
	Kind     Surface   // SurfaceFloor or SurfaceCeiling
	Ray      core.Vec2 // Unit ray direction
	Point    core.Vec2 // Where the ray crossed into Cell
	Distance float64   // From the ray origin to Point
	Top      float64   // Elevation of the surface entered
	Bottom   float64   // Elevation of the surface left behind
	Normal   core.Vec2 // Axis-aligned normal of the crossed grid line
	Cell     *world.Cell
	U        float64 // Horizontal texture coordinate in [0, 1)
	Closing  bool    // Zero-height boundary that closes the final wall
}

// match reports whether two flat strips can belong to the same span.
func (f *FlatStrip) match(o *FlatStrip) bool {
	return f.Kind == o.Kind && f.Elevation == o.Elevation && f.Texture == o.Texture
}
