// Package texture holds the decoded, immutable textures the renderer samples.
// Textures come from image files or from deterministic procedural generators.
package texture

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Texture errors.
var (
	// ErrEmpty is returned for textures with no pixels.
	ErrEmpty = errors.New("texture: empty texture")

	// ErrSizeMismatch is returned when the pixel slice does not match the dimensions.
	ErrSizeMismatch = errors.New("texture: pixel count does not match size")
)

// Texture is a row-major array of packed RGB texels.
// It also keeps a column-major copy so vertical wall strips read
// consecutive memory.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []core.RGB // row-major, Width*Height

	columns []core.RGB // column-major, Height entries per column
}

// New creates a texture from row-major pixels. The slice is copied.
func New(name string, width, height int, pixels []core.RGB) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %q is %dx%d", ErrEmpty, name, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %q has %d pixels for %dx%d", ErrSizeMismatch, name, len(pixels), width, height)
	}

	t := &Texture{
		Name:    name,
		Width:   width,
		Height:  height,
		Pixels:  make([]core.RGB, len(pixels)),
		columns: make([]core.RGB, len(pixels)),
	}
	copy(t.Pixels, pixels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t.columns[x*height+y] = pixels[y*width+x]
		}
	}
	return t, nil
}

// Solid creates a 1x1 texture of a single color.
func Solid(name string, c core.RGB) *Texture {
	t, _ := New(name, 1, 1, []core.RGB{c})
	return t
}

// At returns the texel at (x, y) with toroidal addressing.
func (t *Texture) At(x, y int) core.RGB {
	x = core.WrapIndex(x, t.Width)
	y = core.WrapIndex(y, t.Height)
	return t.Pixels[y*t.Width+x]
}

// Column returns the texels of column u, top to bottom. u wraps.
// The returned slice must not be modified.
func (t *Texture) Column(u int) []core.RGB {
	u = core.WrapIndex(u, t.Width)
	return t.columns[u*t.Height : (u+1)*t.Height]
}
