package render

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

func TestNewProjectionValidates(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		fov    float64
		planeW float64
	}{
		{"zero width", 0, 10, 60, 2},
		{"negative height", 10, -1, 60, 2},
		{"zero fov", 10, 10, 0, 2},
		{"straight angle fov", 10, 10, 180, 2},
		{"zero plane", 10, 10, 60, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProjection(tc.w, tc.h, tc.fov, tc.planeW)
			if !errors.Is(err, ErrInvalidProjection) {
				t.Errorf("expected ErrInvalidProjection, got %v", err)
			}
		})
	}
}

func TestProjectionGeometry(t *testing.T) {
	p, err := NewProjection(testW, testH, 60, 2)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(p.Distance-math.Sqrt(3)) > 1e-9 {
		t.Errorf("Distance = %v, expected sqrt(3)", p.Distance)
	}
	if math.Abs(p.PlaneHeight-2*float64(testH)/float64(testW)) > 1e-12 {
		t.Errorf("PlaneHeight = %v", p.PlaneHeight)
	}
	if p.Columns() != testW {
		t.Fatalf("Columns() = %d", p.Columns())
	}

	for x := 0; x < testW/2; x++ {
		left, right := p.Column(x), p.Column(testW-1-x)
		if math.Abs(left.RelativeAngle+right.RelativeAngle) > 1e-12 {
			t.Errorf("columns %d and %d are not mirrored: %v vs %v", x, testW-1-x, left.RelativeAngle, right.RelativeAngle)
		}
		if math.Abs(left.AngleCosine-math.Cos(left.RelativeAngle)) > 1e-12 {
			t.Errorf("column %d cosine mismatch", x)
		}
	}
	if p.Column(0).RelativeAngle >= 0 || math.Abs(p.Column(0).RelativeAngle) > p.FOV/2 {
		t.Errorf("leftmost column angle %v outside (-fov/2, 0)", p.Column(0).RelativeAngle)
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	p, _ := NewProjection(testW, testH, 60, 2)

	for _, bearing := range []float64{0, 33, 90, 211} {
		pov := world.NewPointOfView(core.V(4.25, 5.75), 0.5, bearing)

		// Floor at 1 is visible below the horizon, ceiling at 0 above it.
		check := func(y int, elevation float64) {
			for x := 0; x < testW; x += 5 {
				un, ok := p.Unproject(pov, x, y, elevation)
				if !ok {
					t.Fatalf("Unproject(%d, %d) reported the horizon", x, y)
				}
				sx, sy, ok := p.Project(pov, un.Mapped, elevation)
				if !ok {
					t.Fatalf("Project of unprojected (%d, %d) is behind the viewer", x, y)
				}
				if math.Abs(sx-float64(x)) > 1e-6 || math.Abs(sy-float64(y)) > 1e-6 {
					t.Errorf("bearing %v: (%d, %d) -> (%.4f, %.4f)", bearing, x, y, sx, sy)
				}
			}
		}
		for y := testH / 2; y < testH; y++ {
			check(y, 1)
		}
		for y := 0; y < testH/2; y++ {
			check(y, 0)
		}
	}
}

func TestUnprojectHorizon(t *testing.T) {
	// With an odd height the middle row sits exactly on the horizon.
	p, _ := NewProjection(40, 41, 60, 2)
	pov := world.NewPointOfView(core.V(2, 2), 0.5, 0)

	if _, ok := p.Unproject(pov, 10, 20, 1); ok {
		t.Error("Unproject on the horizon row should report !ok")
	}
	if _, ok := p.Unproject(pov, 10, 21, 1); !ok {
		t.Error("Unproject below the horizon should succeed")
	}
}

func TestProjectBehindViewer(t *testing.T) {
	p, _ := NewProjection(testW, testH, 60, 2)
	pov := world.NewPointOfView(core.V(5, 5), 0.5, 0)

	if _, _, ok := p.Project(pov, core.V(5, 6), 1); ok {
		t.Error("a point behind the viewer should not project")
	}
}
