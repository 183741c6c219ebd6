// Package render turns a point of view inside a grid map into a textured,
// lit frame: rays are cast per screen column, visible floor and ceiling
// fragments are merged into horizontal spans, and both are rasterized into
// a pixel buffer.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// ErrInvalidProjection is returned for unusable screen or field-of-view parameters.
var ErrInvalidProjection = errors.New("render: invalid projection parameters")

// ColumnRay holds the precomputed direction of one screen column.
type ColumnRay struct {
	RelativeAngle float64 // Radians from the forward axis, positive to the right
	AngleCosine   float64 // Cosine of RelativeAngle, removes fisheye distortion
}

// Projection maps between screen pixels and the projection plane in front of
// the viewer. It is immutable; a resize builds a new one.
type Projection struct {
	ScreenWidth  int
	ScreenHeight int
	FOV          float64 // Horizontal field of view in radians
	PlaneWidth   float64 // Projection plane size in world units
	PlaneHeight  float64
	Distance     float64 // Viewer to projection plane

	columns []ColumnRay
}

// NewProjection precomputes the projection for a screen and field of view.
func NewProjection(screenW, screenH int, fovDegrees, planeWidth float64) (*Projection, error) {
	if screenW <= 0 || screenH <= 0 {
		return nil, fmt.Errorf("%w: screen %dx%d", ErrInvalidProjection, screenW, screenH)
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, fmt.Errorf("%w: field of view %g degrees", ErrInvalidProjection, fovDegrees)
	}
	if planeWidth <= 0 {
		return nil, fmt.Errorf("%w: plane width %g", ErrInvalidProjection, planeWidth)
	}

	fov := core.Deg2Rad(fovDegrees)
	p := &Projection{
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		FOV:          fov,
		PlaneWidth:   planeWidth,
		PlaneHeight:  planeWidth * float64(screenH) / float64(screenW),
		Distance:     planeWidth * 0.5 / math.Tan(fov*0.5),
		columns:      make([]ColumnRay, screenW),
	}

	// Each column looks through the center of its pixel on the plane.
	pxInc := p.PlaneWidth / float64(screenW)
	for x := range p.columns {
		planeX := -p.PlaneWidth/2 + pxInc/2 + float64(x)*pxInc
		angle := math.Atan2(planeX, p.Distance)
		p.columns[x] = ColumnRay{RelativeAngle: angle, AngleCosine: math.Cos(angle)}
	}
	return p, nil
}

// Columns returns the number of screen columns.
func (p *Projection) Columns() int {
	return len(p.columns)
}

// Column returns the precomputed ray of screen column x.
func (p *Projection) Column(x int) ColumnRay {
	return p.columns[x]
}

// ScreenY returns the screen row boundary at which a point rel elevation units
// below the eye appears at the given depth.
func (p *Projection) ScreenY(rel, depth float64) int {
	planeY := rel * p.Distance / depth
	return core.RoundHalfUp((planeY/p.PlaneHeight + 0.5) * float64(p.ScreenHeight))
}

// Unprojected is where a screen pixel's ray meets a horizontal plane.
type Unprojected struct {
	Mapped core.Vec2 // Grid-space point
	X      float64   // Lateral offset in player space
	Z      float64   // Depth in player space
}

// horizonEpsilon bounds the plane-space offset below which a row counts as the horizon.
const horizonEpsilon = 1e-12

// Unproject casts a ray through the center of pixel (sx, sy) and intersects it
// with the horizontal plane at elevation. ok is false for the horizon row,
// where the ray runs parallel to every plane; the result is then unusable.
func (p *Projection) Unproject(pov *world.PointOfView, sx, sy int, elevation float64) (Unprojected, bool) {
	planeX := ((float64(sx)+0.5)/float64(p.ScreenWidth) - 0.5) * p.PlaneWidth
	planeY := ((float64(sy)+0.5)/float64(p.ScreenHeight) - 0.5) * p.PlaneHeight
	if math.Abs(planeY) < horizonEpsilon {
		return Unprojected{}, false
	}

	z := p.Distance * math.Abs(pov.Elevation-elevation) / math.Abs(planeY)
	x := planeX * z / p.Distance
	mapped := pov.Position.Add(pov.Forward.Scale(z)).Add(pov.Right.Scale(x))
	return Unprojected{Mapped: mapped, X: x, Z: z}, true
}

// Project is the inverse of Unproject: it returns the continuous screen
// coordinates of a point at the given elevation, with pixel centers on
// integers. ok is false for points on or behind the viewer's plane.
func (p *Projection) Project(pov *world.PointOfView, point core.Vec2, elevation float64) (sx, sy float64, ok bool) {
	rel := point.Sub(pov.Position)
	z := rel.Dot(pov.Forward)
	if z <= 0 {
		return 0, 0, false
	}
	x := rel.Dot(pov.Right)

	planeX := x * p.Distance / z
	planeY := (elevation - pov.Elevation) * p.Distance / z
	sx = (planeX/p.PlaneWidth+0.5)*float64(p.ScreenWidth) - 0.5
	sy = (planeY/p.PlaneHeight+0.5)*float64(p.ScreenHeight) - 0.5
	return sx, sy, true
}
