package world

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// PointOfView is where the frame is rendered from.
type PointOfView struct {
	Position  core.Vec2 // Grid units
	Elevation float64   // Eye elevation, same axis as cell elevations
	Bearing   float64   // Degrees clockwise from north, in [0, 360)

	// Forward and Right form an orthonormal frame derived from Bearing.
	Forward core.Vec2
	Right   core.Vec2
}

// NewPointOfView creates a point of view with its frame already derived.
func NewPointOfView(pos core.Vec2, elevation, bearing float64) *PointOfView {
	p := &PointOfView{Position: pos, Elevation: elevation}
	p.SetBearing(bearing)
	return p
}

// SetBearing sets the bearing in degrees and re-derives the frame.
func (p *PointOfView) SetBearing(deg float64) {
	p.Bearing = math.Mod(deg, 360)
	if p.Bearing < 0 {
		p.Bearing += 360
	}
	p.Update()
}

// Turn rotates the view clockwise by deg degrees.
func (p *PointOfView) Turn(deg float64) {
	p.SetBearing(p.Bearing + deg)
}

// Update recomputes Forward and Right from Bearing.
func (p *PointOfView) Update() {
	p.Forward = core.FromBearing(core.Deg2Rad(p.Bearing))
	p.Right = p.Forward.Rotate90CW()
}

// Radians returns the bearing in radians.
func (p *PointOfView) Radians() float64 {
	return core.Deg2Rad(p.Bearing)
}
