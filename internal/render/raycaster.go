package render

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// minDepth keeps surfaces crossed right at the viewer from projecting to infinity.
const minDepth = 0.01

// Raycaster casts one ray per screen column and turns the elevation changes
// it finds into ordered, clipped strips.
type Raycaster struct {
	proj    *Projection
	light   Lighting
	workers int
}

// NewRaycaster creates a raycaster for a projection, lighting walls with light.
func NewRaycaster(proj *Projection, light Lighting) *Raycaster {
	return &Raycaster{proj: proj, light: light, workers: 1}
}

// SetWorkers sets how many goroutines CastAll may use. Values below 2 cast serially.
func (r *Raycaster) SetWorkers(n int) {
	r.workers = core.Max(n, 1)
}

// CastAll casts every screen column. Columns share only read-only data, so
// with more than one worker they are cast concurrently in contiguous batches;
// the result does not depend on the worker count.
func (r *Raycaster) CastAll(pov *world.PointOfView, grid *world.GridMap) []Column {
	columns := make([]Column, r.proj.Columns())
	if r.workers < 2 || len(columns) < 2*r.workers {
		for x := range columns {
			columns[x] = r.CastColumn(pov, grid, x)
		}
		return columns
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	batch := (len(columns) + r.workers - 1) / r.workers
	for start := 0; start < len(columns); start += batch {
		end := core.Min(start+batch, len(columns))
		g.Go(func() error {
			for x := start; x < end; x++ {
				columns[x] = r.CastColumn(pov, grid, x)
			}
			return nil
		})
	}
	_ = g.Wait() // batches never fail
	return columns
}

// wallProjection is a wall face projected to the screen, before clipping.
type wallProjection struct {
	topY, bottomY int
	topV, bottomV float64
}

// CastColumn builds the strips of screen column x.
func (r *Raycaster) CastColumn(pov *world.PointOfView, grid *world.GridMap, x int) Column {
	col := r.proj.Column(x)
	ray := core.FromBearing(pov.Radians() + col.RelativeAngle)
	hits := r.Cast(grid, pov.Position, ray)

	floorCell, _ := grid.CellAt(pov.Position)
	ceilingCell := floorCell

	clipTop, clipBottom := 0, r.proj.ScreenHeight
	// Ceiling strips are found top-down, floor strips bottom-up.
	var ceilings, floors []Strip

	for i := range hits {
		hit := &hits[i]
		depth := math.Max(hit.Distance*col.AngleCosine, minDepth)

		var wall wallProjection
		if hit.Kind == SurfaceFloor {
			wall = r.projectWall(pov.Elevation, hit.Top, hit.Bottom, depth)

			// Floor seen between the previous boundary and this one.
			flat := &FlatStrip{
				Kind:      SurfaceFloor,
				TopY:      wall.bottomY,
				BottomY:   clipBottom,
				Elevation: floorCell.Floor,
				Texture:   floorCell.FloorFlat,
			}
			if clipFlat(flat, clipTop, clipBottom) {
				floors = append(floors, flat)
			}
			clipBottom = core.Min(wall.bottomY, clipBottom)
			floorCell = hit.Cell
		} else {
			wall = r.projectWall(pov.Elevation, hit.Bottom, hit.Top, depth)

			flat := &FlatStrip{
				Kind:      SurfaceCeiling,
				TopY:      clipTop,
				BottomY:   wall.topY,
				Elevation: ceilingCell.Ceiling,
				Texture:   ceilingCell.CeilingFlat,
			}
			if clipFlat(flat, clipTop, clipBottom) {
				ceilings = append(ceilings, flat)
			}
			clipTop = core.Max(wall.topY, clipTop)
			ceilingCell = hit.Cell
		}

		// Back-facing or zero-height faces are never drawn.
		if wall.topY >= wall.bottomY {
			continue
		}
		if !clipWall(&wall, clipTop, clipBottom) {
			continue
		}

		strip := &WallStrip{
			TopY:     wall.topY,
			BottomY:  wall.bottomY,
			U:        hit.U,
			TopV:     wall.topV,
			BottomV:  wall.bottomV,
			Lighting: r.light.Factor(hit.Normal, hit.Distance, hit.Ray),
		}
		if hit.Kind == SurfaceFloor {
			clipBottom = wall.topY
			strip.Texture = hit.Cell.Wall
			floors = append(floors, strip)
		} else {
			clipTop = wall.bottomY
			strip.Texture = hit.Cell.CeilingWall()
			ceilings = append(ceilings, strip)
		}
	}

	column := make(Column, 0, len(ceilings)+len(floors))
	column = append(column, ceilings...)
	for i := len(floors) - 1; i >= 0; i-- {
		column = append(column, floors[i])
	}
	return column
}

// projectWall projects a face spanning elevations top..bottom at depth.
// Texture V follows elevation, so one texture repeat covers one world unit.
func (r *Raycaster) projectWall(eye, top, bottom, depth float64) wallProjection {
	return wallProjection{
		topY:    r.proj.ScreenY(top-eye, depth),
		bottomY: r.proj.ScreenY(bottom-eye, depth),
		topV:    top,
		bottomV: bottom,
	}
}

// clipWall narrows a wall to [clipTop, clipBottom), moving its texture
// coordinates proportionally. It reports whether anything is left.
func clipWall(w *wallProjection, clipTop, clipBottom int) bool {
	if w.topY < clipTop {
		w.topV += (w.bottomV - w.topV) * float64(clipTop-w.topY) / float64(w.bottomY-w.topY)
		w.topY = clipTop
		if w.topY >= w.bottomY {
			return false
		}
	}
	if w.bottomY > clipBottom {
		w.bottomV -= (w.bottomV - w.topV) * float64(w.bottomY-clipBottom) / float64(w.bottomY-w.topY)
		w.bottomY = clipBottom
	}
	return w.topY < w.bottomY
}

// clipFlat narrows a flat strip to [clipTop, clipBottom) and reports whether
// anything is left.
func clipFlat(f *FlatStrip, clipTop, clipBottom int) bool {
	f.TopY = core.Max(f.TopY, clipTop)
	f.BottomY = core.Min(f.BottomY, clipBottom)
	return f.TopY < f.BottomY
}

// Cast walks a ray from origin through the grid one grid line at a time and
// returns every floor or ceiling elevation change, near to far. The walk ends
// at the first solid cell; zero-height closing intersections are appended so
// both the floor and the ceiling side of that final wall are bounded.
//
// The grid must be enclosed by solid cells. A ray that leaves the grid is a
// broken map and panics.
func (r *Raycaster) Cast(grid *world.GridMap, origin, ray core.Vec2) []Intersection {
	gx, gy := origin.Floor()
	start := grid.At(gx, gy)
	if start == nil {
		panic(fmt.Sprintf("render: ray origin (%.3f, %.3f) is outside the grid", origin.X, origin.Y))
	}
	fx, fy := origin.X-float64(gx), origin.Y-float64(gy)
	floor, ceiling := start.Floor, start.Ceiling

	absX, absY := math.Abs(ray.X), math.Abs(ray.Y)
	sgnX, sgnY := -1, -1
	if ray.X > 0 {
		sgnX = 1
	}
	if ray.Y > 0 {
		sgnY = 1
	}

	var hits []Intersection
	for {
		distX, distY := fx, fy
		if ray.X > 0 {
			distX = 1 - fx
		}
		if ray.Y > 0 {
			distY = 1 - fy
		}
		timeX, timeY := math.Inf(1), math.Inf(1)
		if absX > 0 {
			timeX = distX / absX
		}
		if absY > 0 {
			timeY = distY / absY
		}

		horizontal := timeX < timeY
		if horizontal {
			gx += sgnX
			fx = 0
			if ray.X < 0 {
				fx = 1
			}
			fy = core.ClampF(fy+float64(sgnY)*distX*absY/absX, 0, 1)
		} else {
			gy += sgnY
			fy = 0
			if ray.Y < 0 {
				fy = 1
			}
			if absY > 0 {
				fx = core.ClampF(fx+float64(sgnX)*distY*absX/absY, 0, 1)
			}
		}

		cell := grid.At(gx, gy)
		if cell == nil {
			panic(fmt.Sprintf("render: ray escaped the grid at (%d, %d); the map is not enclosed", gx, gy))
		}

		point := core.V(float64(gx)+fx, float64(gy)+fy)
		hit := Intersection{
			Ray:      ray,
			Point:    point,
			Distance: point.Sub(origin).Len(),
			Cell:     cell,
		}
		if horizontal {
			hit.Normal = core.V(float64(sgnX), 0)
			hit.U = fy
			if ray.X <= 0 {
				hit.U = 1 - fy
			}
		} else {
			hit.Normal = core.V(0, float64(sgnY))
			hit.U = fx
			if ray.Y >= 0 {
				hit.U = 1 - fx
			}
		}
		hit.U = core.Frac(hit.U)

		if cell.Ceiling != ceiling {
			h := hit
			h.Kind, h.Top, h.Bottom = SurfaceCeiling, cell.Ceiling, ceiling
			hits = append(hits, h)
			ceiling = cell.Ceiling
		}
		if cell.Floor != floor {
			h := hit
			h.Kind, h.Top, h.Bottom = SurfaceFloor, cell.Floor, floor
			hits = append(hits, h)
			floor = cell.Floor
		}

		if floor == ceiling {
			closeFloor, closeCeiling := true, true
			if n := len(hits); n > 0 {
				closeFloor = hits[n-1].Kind != SurfaceFloor
				closeCeiling = hits[n-1].Kind != SurfaceCeiling
			}
			if closeCeiling {
				h := hit
				h.Kind, h.Top, h.Bottom, h.Closing = SurfaceCeiling, ceiling, ceiling, true
				hits = append(hits, h)
			}
			if closeFloor {
				h := hit
				h.Kind, h.Top, h.Bottom, h.Closing = SurfaceFloor, floor, floor, true
				hits = append(hits, h)
			}
			return hits
		}
	}
}
