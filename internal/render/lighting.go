package render

import (
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// minLightDistance keeps the inverse-square term finite at the viewer.
const minLightDistance = 1e-3

// Lighting is a light at the viewer: inverse-square attenuation capped at
// full intensity, times an ambient plus Lambertian term.
type Lighting struct {
	Power   float64
	Ambient float64
	Diffuse float64
}

// DefaultWallLighting is used for wall strips.
func DefaultWallLighting() Lighting {
	return Lighting{Power: 8, Ambient: 0.3, Diffuse: 0.7}
}

// DefaultFlatLighting is used for floor and ceiling spans.
func DefaultFlatLighting() Lighting {
	return Lighting{Power: 7, Ambient: 0.3, Diffuse: 0.7}
}

// Factor returns the light in [0, 1] reaching a surface with the given normal
// at distance, lit along incident. incident need not be normalized.
func (l Lighting) Factor(normal core.Vec2, distance float64, incident core.Vec2) float64 {
	d := math.Max(distance, minLightDistance)
	attenuation := math.Min(1, l.Power/(d*d))
	lambert := l.Ambient + l.Diffuse*math.Abs(normal.Dot(incident.Normalize()))
	return core.ClampF(attenuation*lambert, 0, 1)
}
