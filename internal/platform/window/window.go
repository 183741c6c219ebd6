// Package window presents the raycaster in a desktop window with ebiten.
// Builds with the headless tag leave ebiten out and Run reports ErrUnavailable.
package window

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/levels"
	"github.com/vovakirdan/tui-raycaster/internal/session"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// ErrUnavailable is returned by Run in headless builds.
var ErrUnavailable = errors.New("window: built without a display backend")

// Options configures a windowed play session.
type Options struct {
	Config      config.Config
	Store       *storage.Store  // Optional; the run is recorded on exit
	Logger      *log.Logger     // Optional
	Watcher     *levels.Watcher // Optional; reloads the level while playing
	SnapshotDir string
}

// FrameSize returns the rendered frame size for the window settings:
// the window size divided by the pixel scale.
func FrameSize(w config.WindowConfig) (width, height int) {
	scale := max(w.Scale, 1)
	return max(w.Width/scale, 1), max(w.Height/scale, 1)
}

// hudText is the overlay line drawn over the frame.
func hudText(s *session.Session, status string) string {
	pov := s.Player().View()
	line := fmt.Sprintf("%s  %.0f fps  %.1f,%.1f  %03.0f",
		s.Level().Name, s.Stats().FPS(), pov.Position.X, pov.Position.Y, pov.Bearing)
	if status != "" {
		line += "  " + status
	}
	return line
}

// recordRun saves the session as a play run when a store is configured.
func recordRun(s *session.Session, opts Options, logger *log.Logger) error {
	run := s.Run(storage.ModePlay)
	if opts.Store == nil || run.Frames == 0 {
		return nil
	}
	if _, err := opts.Store.SaveRun(run); err != nil {
		return err
	}
	logger.Info("run recorded", "level", run.LevelID, "frames", run.Frames, "distance", run.Distance)
	return nil
}
