//go:build !headless

package window

import (
	"errors"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/session"
)

// statusTTL is how long a status message stays in the overlay.
const statusTTL = 3 * time.Second

// keyBindings maps held keys to player actions.
var keyBindings = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, core.ActionForward},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, core.ActionBackward},
	{[]ebiten.Key{ebiten.KeyA}, core.ActionStrafeLeft},
	{[]ebiten.Key{ebiten.KeyD}, core.ActionStrafeRight},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyQ}, core.ActionTurnLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyE}, core.ActionTurnRight},
}

var (
	hudColor    = color.RGBA{190, 190, 190, 255}
	shadowColor = color.RGBA{0, 0, 0, 255}
)

// game implements ebiten.Game around a session.
type game struct {
	session *session.Session
	opts    Options
	logger  *log.Logger
	frame   *ebiten.Image
	input   core.InputFrame

	cursorX   int
	cursorSet bool
	showHUD   bool

	status      string
	statusUntil time.Time
}

// Run opens a window and plays s until it is closed or Esc is pressed.
func Run(s *session.Session, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &game{
		session: s,
		opts:    opts,
		logger:  logger,
		input:   core.NewInputFrame(),
		showHUD: true,
	}

	ebiten.SetWindowSize(opts.Config.Window.Width, opts.Config.Window.Height)
	ebiten.SetWindowTitle("raycast - " + s.Level().Name)
	ebiten.SetTPS(max(opts.Config.Render.TickRate, 1))
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return recordRun(s, opts, logger)
}

// Update advances one tick: input, reload, movement and rendering.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showHUD = !g.showHUD
	}

	for _, b := range keyBindings {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				g.input.Set(b.action)
				break
			}
		}
	}

	x, _ := ebiten.CursorPosition()
	if g.cursorSet {
		g.input.Turn += float64(x-g.cursorX) * g.opts.Config.Player.MouseSensitivity
	}
	g.cursorX, g.cursorSet = x, true

	g.pollReload()

	buf := g.session.Step(g.input)
	g.input.Clear()
	g.upload(buf)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.snapshot()
	}
	return nil
}

// upload copies the frame into the ebiten image, recreating it on resize.
func (g *game) upload(buf *core.PixelBuffer) {
	if g.frame != nil {
		if b := g.frame.Bounds(); b.Dx() != buf.Width() || b.Dy() != buf.Height() {
			g.frame.Deallocate()
			g.frame = nil
		}
	}
	if g.frame == nil {
		g.frame = ebiten.NewImage(buf.Width(), buf.Height())
	}
	g.frame.WritePixels(buf.Pix())
}

// pollReload swaps in a reloaded level without blocking the tick.
func (g *game) pollReload() {
	w := g.opts.Watcher
	if w == nil {
		return
	}
	select {
	case level := <-w.Levels():
		if err := g.session.SwapLevel(level); err != nil {
			g.logger.Warn("reloaded level rejected", "id", level.ID, "err", err)
			g.setStatus(err.Error())
			return
		}
		g.logger.Info("level reloaded", "id", level.ID, "path", level.FilePath)
		g.setStatus("reloaded")
	case err := <-w.Errors():
		g.logger.Warn("level reload failed", "err", err)
		g.setStatus("reload failed")
	default:
	}
}

func (g *game) snapshot() {
	path, err := g.session.Snapshot(g.opts.SnapshotDir)
	if err != nil {
		g.logger.Error("snapshot failed", "err", err)
		g.setStatus("snapshot failed")
		return
	}
	g.logger.Info("snapshot saved", "path", path)
	g.setStatus("saved snapshot")
}

func (g *game) setStatus(s string) {
	g.status = s
	g.statusUntil = time.Now().Add(statusTTL)
}

// Draw shows the last frame and the overlay.
func (g *game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
	if !g.showHUD {
		return
	}

	status := ""
	if time.Now().Before(g.statusUntil) {
		status = g.status
	}
	line := hudText(g.session, status)
	face := basicfont.Face7x13
	text.Draw(screen, line, face, 5, 14, shadowColor)
	text.Draw(screen, line, face, 4, 13, hudColor)
}

// Layout keeps the logical screen at the frame size; ebiten scales it to the window.
func (g *game) Layout(_, _ int) (int, int) {
	proj := g.session.Renderer().Projection()
	return proj.ScreenWidth, proj.ScreenHeight
}
