package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

func TestNewValidates(t *testing.T) {
	if _, err := New("x", 0, 4, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if _, err := New("x", 2, 2, make([]core.RGB, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestColumnsMatchRows(t *testing.T) {
	pixels := []core.RGB{
		1, 2, 3,
		4, 5, 6,
	}
	tex, err := New("grid", 3, 2, pixels)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for u := 0; u < 3; u++ {
		col := tex.Column(u)
		if len(col) != 2 {
			t.Fatalf("column %d has %d texels", u, len(col))
		}
		for v := 0; v < 2; v++ {
			if col[v] != tex.At(u, v) {
				t.Errorf("Column(%d)[%d] = %d, At = %d", u, v, col[v], tex.At(u, v))
			}
		}
	}

	if tex.At(-1, -1) != 6 {
		t.Errorf("At(-1, -1) = %d, expected wrap to 6", tex.At(-1, -1))
	}
	if tex.Column(4)[0] != 2 {
		t.Errorf("Column(4) should wrap to column 1")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, kind := range Generators() {
		t.Run(kind, func(t *testing.T) {
			spec := Spec{Kind: kind, Size: 16, Base: 0x885533, Accent: 0x222222, Seed: 7}
			a, err := Generate(kind, spec)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			b, _ := Generate(kind, spec)
			if a.Width != 16 || a.Height != 16 {
				t.Fatalf("size = %dx%d", a.Width, a.Height)
			}
			for i := range a.Pixels {
				if a.Pixels[i] != b.Pixels[i] {
					t.Fatalf("texel %d differs between runs", i)
				}
			}
		})
	}
}

func TestGenerateUnknown(t *testing.T) {
	_, err := Generate("x", Spec{Kind: "marble"})
	if !errors.Is(err, ErrUnknownGenerator) {
		t.Errorf("expected ErrUnknownGenerator, got %v", err)
	}
}

func TestLoadPNGRescales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "quad.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	tex, err := Load(path, 4)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tex.Name != "quad" {
		t.Errorf("Name = %q, expected quad", tex.Name)
	}
	if tex.Width != 4 || tex.Height != 4 {
		t.Fatalf("size = %dx%d, expected 4x4", tex.Width, tex.Height)
	}
	if tex.At(0, 0) != 0xff0000 || tex.At(3, 0) != 0x00ff00 || tex.At(0, 3) != 0x0000ff || tex.At(3, 3) != 0xffffff {
		t.Errorf("nearest-neighbor scale lost corners: %06x %06x %06x %06x",
			uint32(tex.At(0, 0)), uint32(tex.At(3, 0)), uint32(tex.At(0, 3)), uint32(tex.At(3, 3)))
	}
}

func TestLoadIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 64})
	img.SetNRGBA(1, 0, color.NRGBA{10, 20, 30, 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		size int
	}{
		{"native size", 0},
		{"rescaled", 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tex, err := LoadBytes("glass", buf.Bytes(), tc.size)
			if err != nil {
				t.Fatalf("LoadBytes failed: %v", err)
			}
			if got := tex.At(0, 0); got != 0xc86432 {
				t.Errorf("translucent texel = %06x, expected c86432", uint32(got))
			}
			if got := tex.At(tex.Width-1, 0); got != 0x0a141e {
				t.Errorf("opaque texel = %06x, expected 0a141e", uint32(got))
			}
		})
	}
}

func TestLoadBytesEmpty(t *testing.T) {
	if _, err := LoadBytes("x", nil, 0); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}
