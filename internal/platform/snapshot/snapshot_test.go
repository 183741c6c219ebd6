package snapshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

func TestEncodeDecodes(t *testing.T) {
	buf := core.NewPixelBuffer(3, 2)
	buf.Set(2, 1, 0x336699)

	var out bytes.Buffer
	if err := Encode(&out, buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("decoded size %v", b)
	}
	r, g, bl, a := img.At(2, 1).RGBA()
	if r>>8 != 0x33 || g>>8 != 0x66 || bl>>8 != 0x99 || a>>8 != 0xff {
		t.Errorf("pixel = %x %x %x %x", r>>8, g>>8, bl>>8, a>>8)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, core.NewPixelBuffer(0, 0)); err == nil {
		t.Error("expected an error for an empty frame")
	}
}

func TestFilePresenter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shots", Filename("atrium", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)))
	if filepath.Base(path) != "atrium_20240506_070809.png" {
		t.Errorf("Filename = %q", filepath.Base(path))
	}

	if err := (FilePresenter{Path: path}).Present(core.NewPixelBuffer(4, 4)); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("snapshot file missing: %v", err)
	}
}
