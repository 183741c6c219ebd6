package texture

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// ErrUnknownGenerator is returned for generator names that are not registered.
var ErrUnknownGenerator = errors.New("texture: unknown generator")

// Spec describes a procedural texture.
type Spec struct {
	Kind   string   // Generator name, see Generators
	Size   int      // Width and height in texels
	Base   core.RGB // Dominant color
	Accent core.RGB // Mortar, grain or checker color
	Seed   uint32   // Noise seed
}

type generator func(s Spec, x, y int) core.RGB

var generators = map[string]generator{
	"solid":   genSolid,
	"checker": genChecker,
	"bricks":  genBricks,
	"stone":   genStone,
	"planks":  genPlanks,
	"tiles":   genTiles,
}

// Generators returns the names of the procedural generators, sorted.
func Generators() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate builds a texture from a procedural spec.
// The output depends only on the spec, so the same spec always
// yields the same texels.
func Generate(name string, s Spec) (*Texture, error) {
	gen, ok := generators[s.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, s.Kind)
	}
	if s.Size <= 0 {
		s.Size = 32
	}

	pixels := make([]core.RGB, s.Size*s.Size)
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			pixels[y*s.Size+x] = gen(s, x, y)
		}
	}
	return New(name, s.Size, s.Size, pixels)
}

// noise returns a deterministic value in [0, 1) for a lattice point.
func noise(seed uint32, x, y int) float64 {
	h := seed ^ uint32(x)*0x27d4eb2d ^ uint32(y)*0x165667b1
	h ^= h >> 15
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return float64(h&0xffffff) / float64(1<<24)
}

// grain darkens or lightens c by up to amount, driven by noise.
func grain(c core.RGB, s Spec, x, y int, amount float64) core.RGB {
	return c.Scale(1 - amount + 2*amount*noise(s.Seed, x, y))
}

func genSolid(s Spec, x, y int) core.RGB {
	return s.Base
}

func genChecker(s Spec, x, y int) core.RGB {
	cell := core.Max(s.Size/4, 1)
	if (x/cell+y/cell)%2 == 0 {
		return s.Base
	}
	return s.Accent
}

func genBricks(s Spec, x, y int) core.RGB {
	rowH := core.Max(s.Size/4, 2)
	brickW := core.Max(s.Size/2, 2)
	row := y / rowH
	offset := 0
	if row%2 == 1 {
		offset = brickW / 2
	}
	if y%rowH == rowH-1 || (x+offset)%brickW == brickW-1 {
		return grain(s.Accent, s, x, y, 0.08)
	}
	// Each brick gets its own tint.
	brick := (x + offset) / brickW
	tint := 0.85 + 0.3*noise(s.Seed+1, brick, row)
	return grain(s.Base.Scale(tint), s, x, y, 0.1)
}

func genStone(s Spec, x, y int) core.RGB {
	// Value noise on a coarse lattice, bilinearly blended.
	cell := core.Max(s.Size/8, 1)
	cx, cy := x/cell, y/cell
	fx := float64(x%cell) / float64(cell)
	fy := float64(y%cell) / float64(cell)
	n := s.Size / cell
	at := func(i, j int) float64 {
		return noise(s.Seed, core.WrapIndex(i, n), core.WrapIndex(j, n))
	}
	top := at(cx, cy)*(1-fx) + at(cx+1, cy)*fx
	bottom := at(cx, cy+1)*(1-fx) + at(cx+1, cy+1)*fx
	v := top*(1-fy) + bottom*fy
	return grain(core.Lerp(s.Base, s.Accent, v*0.6), s, x, y, 0.06)
}

func genPlanks(s Spec, x, y int) core.RGB {
	plankW := core.Max(s.Size/4, 2)
	if x%plankW == 0 {
		return s.Accent
	}
	plank := x / plankW
	stripe := noise(s.Seed, plank, y/2)
	return grain(core.Lerp(s.Base, s.Accent, stripe*0.35), s, x, y, 0.05)
}

func genTiles(s Spec, x, y int) core.RGB {
	tile := core.Max(s.Size/2, 2)
	if x%tile == 0 || y%tile == 0 {
		return s.Accent
	}
	return grain(s.Base, s, x, y, 0.04)
}
