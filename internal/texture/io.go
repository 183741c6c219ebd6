package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder
	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// ErrEmptyData is returned when image data is empty.
var ErrEmptyData = errors.New("texture: empty data")

// Load decodes an image file into a texture named after the file.
// If size is positive the image is rescaled to size x size with
// nearest-neighbor sampling.
func Load(path string, size int) (*Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texture: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Decode(name, f, size)
}

// LoadBytes decodes an in-memory image, auto-detecting the format.
func LoadBytes(name string, data []byte, size int) (*Texture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(name, bytes.NewReader(data), size)
}

// Decode reads an image from r, auto-detecting the format.
func Decode(name string, r io.Reader, size int) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %q: %w", name, err)
	}
	return FromImage(name, img, size)
}

// FromImage converts any image into a texture. Alpha is ignored, not
// multiplied into the color.
// A positive size rescales to size x size first.
func FromImage(name string, img image.Image, size int) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrEmpty, name)
	}

	// Non-premultiplied throughout, so translucent texels keep their color.
	src := img
	if size > 0 && (b.Dx() != size || b.Dy() != size) {
		dst := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		src = dst
	}

	sb := src.Bounds()
	pixels := make([]core.RGB, 0, sb.Dx()*sb.Dy())
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			pixels = append(pixels, core.PackRGB(c.R, c.G, c.B))
		}
	}
	return New(name, sb.Dx(), sb.Dy(), pixels)
}
