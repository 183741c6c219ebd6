// Package snapshot writes rendered frames to PNG files.
package snapshot

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// Encode writes buf to w as a PNG.
func Encode(w io.Writer, buf *core.PixelBuffer) error {
	if buf.Width() == 0 || buf.Height() == 0 {
		return fmt.Errorf("snapshot: empty frame")
	}
	if err := png.Encode(w, buf.Image()); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Save writes buf to path as a PNG, creating parent directories.
func Save(path string, buf *core.PixelBuffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := Encode(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Filename returns a timestamped file name for a level snapshot.
func Filename(levelID string, t time.Time) string {
	return fmt.Sprintf("%s_%s.png", levelID, t.Format("20060102_150405"))
}

// FilePresenter is a render.Presenter that saves every presented frame to Path.
type FilePresenter struct {
	Path string
}

// Present implements render.Presenter.
func (p FilePresenter) Present(buf *core.PixelBuffer) error {
	return Save(p.Path, buf)
}
