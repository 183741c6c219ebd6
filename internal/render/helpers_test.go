package render

import (
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/texture"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

const (
	testW = 96
	testH = 64
)

var (
	wallTex    = mustGenerate("bricks", 0x9c4a2e, 0x3a3a3a)
	floorTex   = mustGenerate("tiles", 0x707070, 0x404040)
	ceilingTex = mustGenerate("planks", 0x8a6a40, 0x4a3a20)
	altTex     = mustGenerate("checker", 0x205080, 0x102040)
)

func mustGenerate(kind string, base, accent core.RGB) *texture.Texture {
	t, err := texture.Generate(kind, texture.Spec{Kind: kind, Size: 16, Base: base, Accent: accent, Seed: 3})
	if err != nil {
		panic(err)
	}
	return t
}

func open(floor, ceiling float64) world.Cell {
	return world.Cell{Floor: floor, Ceiling: ceiling, Wall: wallTex, FloorFlat: floorTex, CeilingFlat: ceilingTex}
}

func solid(elev float64) world.Cell {
	return world.Cell{Floor: elev, Ceiling: elev, Wall: wallTex}
}

// boxRoom is a 10x10 grid of open floor at elevation 1 under a ceiling at 0,
// bordered by solid cells at elevation 0.
func boxRoom(t *testing.T) *world.GridMap {
	t.Helper()
	g, err := world.NewBuilder(10, 10).Fill(open(1, 0)).Border(solid(0)).Build()
	if err != nil {
		t.Fatalf("building room: %v", err)
	}
	return g
}

// terraceRoom mixes raised and sunken floors, a low ceiling, a skylight
// and a pillar so rays cross several elevation changes.
func terraceRoom(t *testing.T) *world.GridMap {
	t.Helper()
	b := world.NewBuilder(12, 12).Fill(open(1, -0.5)).Border(solid(-0.5))
	for x := 7; x <= 9; x++ {
		for y := 2; y <= 4; y++ {
			b.Set(x, y, open(0.75, -0.5)) // platform
		}
	}
	b.Set(3, 8, open(1.25, -0.5)) // pit
	b.Set(4, 8, open(1.25, -0.5))
	for x := 2; x <= 4; x++ {
		b.Set(x, 2, open(1, 0.2)) // low ceiling
	}
	b.Set(6, 6, open(1, -1.5))      // skylight
	b.Set(8, 8, solid(-0.5))        // pillar
	b.Set(5, 3, open(0.875, -0.25)) // step with a lowered ceiling
	g, err := b.Build()
	if err != nil {
		t.Fatalf("building terrace: %v", err)
	}
	return g
}

func newTestRenderer(t *testing.T, workers int) *Renderer {
	t.Helper()
	opts := DefaultOptions()
	opts.Workers = workers
	r, err := New(testW, testH, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

// views are points of view used by the coverage and idempotence tests.
func views() []*world.PointOfView {
	var povs []*world.PointOfView
	for _, pos := range []core.Vec2{core.V(5.5, 5.5), core.V(2.3, 6.7), core.V(6.05, 9.2), core.V(4, 4)} {
		for bearing := 0.0; bearing < 360; bearing += 37 {
			povs = append(povs, world.NewPointOfView(pos, 0.5, bearing))
		}
	}
	return povs
}
