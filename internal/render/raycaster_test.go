package render

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// checkCoverage verifies that a column's strips are ordered, non-empty,
// non-overlapping and cover every row of the screen.
func checkCoverage(t *testing.T, x int, column Column, height int) {
	t.Helper()
	next := 0
	for i, s := range column {
		top, bottom := s.Bounds()
		if top != next {
			t.Fatalf("column %d strip %d (%s) starts at %d, expected %d", x, i, s.Surface(), top, next)
		}
		if bottom <= top {
			t.Fatalf("column %d strip %d (%s) is empty: [%d, %d)", x, i, s.Surface(), top, bottom)
		}
		next = bottom
	}
	if next != height {
		t.Fatalf("column %d covered rows up to %d, expected %d", x, next, height)
	}
}

func wallStrips(column Column) []*WallStrip {
	var walls []*WallStrip
	for _, s := range column {
		if w, ok := s.(*WallStrip); ok {
			walls = append(walls, w)
		}
	}
	return walls
}

func TestCastFacingWall(t *testing.T) {
	grid := boxRoom(t)
	proj, _ := NewProjection(testW, testH, 60, 2)
	rc := NewRaycaster(proj, DefaultWallLighting())
	pov := world.NewPointOfView(core.V(4, 4), 0.5, 0)

	columns := rc.CastAll(pov, grid)
	if len(columns) != testW {
		t.Fatalf("CastAll returned %d columns", len(columns))
	}

	first := wallStrips(columns[0])
	if len(first) != 1 {
		t.Fatalf("column 0 has %d wall strips, expected 1", len(first))
	}
	for x, column := range columns {
		checkCoverage(t, x, column, testH)

		walls := wallStrips(column)
		if len(walls) != 1 {
			t.Fatalf("column %d has %d wall strips, expected 1", x, len(walls))
		}
		w := walls[0]
		// The north wall is a flat face three units ahead, so its
		// projected height does not change across the screen.
		if core.Abs(w.TopY-first[0].TopY) > 1 || core.Abs(w.BottomY-first[0].BottomY) > 1 {
			t.Errorf("column %d wall [%d, %d) differs from column 0 [%d, %d)", x, w.TopY, w.BottomY, first[0].TopY, first[0].BottomY)
		}
		if w.Texture != wallTex {
			t.Errorf("column %d wall has texture %q", x, w.Texture.Name)
		}
		if w.Lighting <= 0 || w.Lighting > 1 {
			t.Errorf("column %d lighting %v outside (0, 1]", x, w.Lighting)
		}
		if w.TopV != 0 || w.BottomV != 1 {
			t.Errorf("column %d V range [%v, %v], expected [0, 1]", x, w.TopV, w.BottomV)
		}

		// Ceiling above, floor below.
		if column[0].Surface() != SurfaceCeiling || column[len(column)-1].Surface() != SurfaceFloor {
			t.Errorf("column %d: expected ceiling first and floor last", x)
		}
	}

	center := wallStrips(columns[testW/2])[0]
	if d := center.TopY + center.BottomY - testH; d < -1 || d > 1 {
		t.Errorf("center wall [%d, %d) is not centered on the horizon", center.TopY, center.BottomY)
	}
}

func TestCastIntersections(t *testing.T) {
	grid := boxRoom(t)
	proj, _ := NewProjection(testW, testH, 60, 2)
	rc := NewRaycaster(proj, DefaultWallLighting())

	hits := rc.Cast(grid, core.V(4.5, 4.5), core.V(0, -1))
	if len(hits) != 2 {
		t.Fatalf("expected a floor hit and a closing ceiling, got %d intersections", len(hits))
	}

	floor := hits[0]
	if floor.Kind != SurfaceFloor || floor.Closing {
		t.Errorf("first intersection = %s (closing %v), expected floor", floor.Kind, floor.Closing)
	}
	if floor.Top != 0 || floor.Bottom != 1 {
		t.Errorf("floor step from %v to %v, expected 1 to 0", floor.Bottom, floor.Top)
	}
	if floor.Distance < 3.5-1e-9 || floor.Distance > 3.5+1e-9 {
		t.Errorf("distance = %v, expected 3.5", floor.Distance)
	}
	if floor.Normal != core.V(0, -1) {
		t.Errorf("normal = %v, expected (0, -1)", floor.Normal)
	}

	closing := hits[1]
	if closing.Kind != SurfaceCeiling || !closing.Closing || closing.Top != closing.Bottom {
		t.Errorf("second intersection should be a zero-height closing ceiling, got %+v", closing)
	}
}

func TestCastOrderedByDistance(t *testing.T) {
	grid := terraceRoom(t)
	proj, _ := NewProjection(testW, testH, 60, 2)
	rc := NewRaycaster(proj, DefaultWallLighting())

	for bearing := 0.0; bearing < 360; bearing += 7 {
		ray := core.FromBearing(core.Deg2Rad(bearing))
		hits := rc.Cast(grid, core.V(5.5, 5.5), ray)
		if len(hits) == 0 {
			t.Fatalf("bearing %v: no intersections", bearing)
		}
		for i := 1; i < len(hits); i++ {
			if hits[i].Distance < hits[i-1].Distance-1e-9 {
				t.Fatalf("bearing %v: intersection %d is nearer than %d", bearing, i, i-1)
			}
		}
		for _, h := range hits {
			if h.U < 0 || h.U >= 1 {
				t.Fatalf("bearing %v: U = %v outside [0, 1)", bearing, h.U)
			}
		}
		last := hits[len(hits)-1]
		if !last.Cell.Solid() {
			t.Fatalf("bearing %v: walk ended in an open cell", bearing)
		}
	}
}

func TestCastAllCoverage(t *testing.T) {
	grid := terraceRoom(t)
	proj, _ := NewProjection(testW, testH, 60, 2)
	rc := NewRaycaster(proj, DefaultWallLighting())

	multi := false
	for _, pov := range views() {
		for x, column := range rc.CastAll(pov, grid) {
			checkCoverage(t, x, column, testH)
			if len(wallStrips(column)) > 1 {
				multi = true
			}
		}
	}
	if !multi {
		t.Error("expected some column to show more than one wall")
	}
}

func TestCastAllParallelMatchesSerial(t *testing.T) {
	grid := terraceRoom(t)
	proj, _ := NewProjection(testW, testH, 60, 2)
	serial := NewRaycaster(proj, DefaultWallLighting())
	parallel := NewRaycaster(proj, DefaultWallLighting())
	parallel.SetWorkers(4)

	for _, pov := range views() {
		if !reflect.DeepEqual(serial.CastAll(pov, grid), parallel.CastAll(pov, grid)) {
			t.Fatalf("parallel cast differs at %v bearing %v", pov.Position, pov.Bearing)
		}
	}
}

func TestCastOutsideGridPanics(t *testing.T) {
	grid := boxRoom(t)
	proj, _ := NewProjection(testW, testH, 60, 2)
	rc := NewRaycaster(proj, DefaultWallLighting())

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an origin outside the grid")
		}
	}()
	rc.Cast(grid, core.V(-2, 3), core.V(1, 0))
}

func TestClipWall(t *testing.T) {
	tests := []struct {
		name     string
		wall     wallProjection
		top, bot int
		ok       bool
		want     wallProjection
	}{
		{
			name: "inside",
			wall: wallProjection{topY: 10, bottomY: 20, topV: 0, bottomV: 1},
			top:  0, bot: 30, ok: true,
			want: wallProjection{topY: 10, bottomY: 20, topV: 0, bottomV: 1},
		},
		{
			name: "clipped both sides",
			wall: wallProjection{topY: 0, bottomY: 40, topV: 0, bottomV: 4},
			top:  10, bot: 30, ok: true,
			want: wallProjection{topY: 10, bottomY: 30, topV: 1, bottomV: 3},
		},
		{
			name: "above window",
			wall: wallProjection{topY: 0, bottomY: 5, topV: 0, bottomV: 1},
			top:  5, bot: 30, ok: false,
		},
		{
			name: "below window",
			wall: wallProjection{topY: 30, bottomY: 35, topV: 0, bottomV: 1},
			top:  0, bot: 30, ok: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := tc.wall
			ok := clipWall(&w, tc.top, tc.bot)
			if ok != tc.ok {
				t.Fatalf("clipWall ok = %v, expected %v", ok, tc.ok)
			}
			if ok && w != tc.want {
				t.Errorf("clipWall = %+v, expected %+v", w, tc.want)
			}
		})
	}
}
