// Package session ties a level, a player and a renderer together into the
// per-tick loop shared by every presentation.
package session

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/levels"
	"github.com/vovakirdan/tui-raycaster/internal/platform/snapshot"
	"github.com/vovakirdan/tui-raycaster/internal/render"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Session is one player walking one level.
// It is not safe for concurrent use; presentations drive it from their tick loop.
type Session struct {
	level    *levels.Level
	player   *world.Player
	renderer *render.Renderer
	workers  int
	stats    core.FrameStats
	now      func() time.Time
}

// New starts a session on level with a width x height frame.
func New(level *levels.Level, cfg config.Config, width, height int) (*Session, error) {
	player, err := world.NewPlayer(level.Grid, level.Spawn, level.Bearing, cfg.PlayerSettings())
	if err != nil {
		return nil, fmt.Errorf("session: level %s: %w", level.ID, err)
	}
	renderer, err := render.New(width, height, cfg.RenderOptions())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		level:    level,
		player:   player,
		renderer: renderer,
		workers:  cfg.Render.Workers,
		now:      time.Now,
	}, nil
}

// Level returns the level being played.
func (s *Session) Level() *levels.Level { return s.level }

// Player returns the player.
func (s *Session) Player() *world.Player { return s.player }

// Renderer returns the renderer.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Stats returns the frame statistics gathered so far.
func (s *Session) Stats() core.FrameStats { return s.stats }

// Resize changes the frame size.
func (s *Session) Resize(width, height int) error {
	return s.renderer.Resize(width, height)
}

// Step applies one tick of input and renders the resulting view.
func (s *Session) Step(in core.InputFrame) *core.PixelBuffer {
	s.stats.Distance += s.player.Apply(in.Intent(), in.Turn)
	return s.Render()
}

// Render draws the current view without advancing the player.
func (s *Session) Render() *core.PixelBuffer {
	start := s.begin()
	buf := s.renderer.RenderFrame(s.player.View(), s.level.Grid)
	s.stats.Record(s.now().Sub(start))
	return buf
}

// Present renders the current view and hands it to p.
func (s *Session) Present(p render.Presenter) error {
	start := s.begin()
	err := s.renderer.Frame(s.player.View(), s.level.Grid, p)
	s.stats.Record(s.now().Sub(start))
	return err
}

func (s *Session) begin() time.Time {
	t := s.now()
	if s.stats.Started.IsZero() {
		s.stats.Started = t
	}
	return t
}

// SwapLevel replaces the level, keeping the player's position when it
// is still walkable in the new grid. Used by hot reload.
func (s *Session) SwapLevel(level *levels.Level) error {
	if err := s.player.SetGrid(level.Grid, level.Spawn, level.Bearing); err != nil {
		return fmt.Errorf("session: reload %s: %w", level.ID, err)
	}
	s.level = level
	return nil
}

// Snapshot saves the last rendered frame as a PNG in dir and returns its path.
func (s *Session) Snapshot(dir string) (string, error) {
	path := filepath.Join(dir, snapshot.Filename(s.level.ID, s.now()))
	if err := snapshot.Save(path, s.renderer.Buffer()); err != nil {
		return "", err
	}
	return path, nil
}

// Run summarizes the session for storage.
func (s *Session) Run(mode string) storage.Run {
	proj := s.renderer.Projection()
	var elapsed time.Duration
	if !s.stats.Started.IsZero() {
		elapsed = s.now().Sub(s.stats.Started)
	}
	return storage.Run{
		LevelID:    s.level.ID,
		Mode:       mode,
		Frames:     s.stats.Frames,
		AvgFrameMS: float64(s.stats.AvgFrame()) / float64(time.Millisecond),
		Distance:   s.stats.Distance,
		Duration:   elapsed,
		Width:      proj.ScreenWidth,
		Height:     proj.ScreenHeight,
		Workers:    s.workers,
	}
}
