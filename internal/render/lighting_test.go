package render

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

func TestLightingBounds(t *testing.T) {
	lights := []Lighting{DefaultWallLighting(), DefaultFlatLighting(), {Power: 1000, Ambient: 0.9, Diffuse: 0.9}}
	normals := []core.Vec2{core.V(1, 0), core.V(0, -1), core.V(0, 1)}
	incidents := []core.Vec2{core.V(1, 0), core.V(0.3, -0.7), core.V(5, 2), core.V(0, 0)}

	for _, l := range lights {
		for _, n := range normals {
			for _, in := range incidents {
				for d := 0.0; d < 50; d += 0.37 {
					f := l.Factor(n, d, in)
					if f < 0 || f > 1 || math.IsNaN(f) {
						t.Fatalf("Factor(%v, %v, %v) = %v outside [0, 1]", n, d, in, f)
					}
				}
			}
		}
	}
}

func TestLightingMonotonic(t *testing.T) {
	l := DefaultWallLighting()
	n := core.V(0, 1)
	in := core.V(0.4, 0.9)

	prev := l.Factor(n, 1e-3, in)
	for d := 0.01; d < 40; d += 0.05 {
		f := l.Factor(n, d, in)
		if f > prev {
			t.Fatalf("lighting increased from %v to %v at distance %v", prev, f, d)
		}
		prev = f
	}
	if l.Factor(n, 20, in) >= l.Factor(n, 5, in) {
		t.Error("lighting should fall off beyond the full-intensity radius")
	}
}

func TestLightingLambert(t *testing.T) {
	l := Lighting{Power: 100, Ambient: 0.25, Diffuse: 0.75}

	if got := l.Factor(core.V(1, 0), 1, core.V(-3, 0)); math.Abs(got-1) > 1e-12 {
		t.Errorf("head-on factor = %v, expected 1", got)
	}
	if got := l.Factor(core.V(1, 0), 1, core.V(0, 2)); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("grazing factor = %v, expected ambient 0.25", got)
	}
}
