package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/levels"
	"github.com/vovakirdan/tui-raycaster/internal/session"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// Rows below the frame: one status line and the short help.
const (
	statusRows   = 2
	fullHelpRows = 4 // Extra rows while the full help is shown
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// levelMsg carries a reloaded level from the watcher.
type levelMsg struct{ level *levels.Level }

// levelErrMsg carries a failed reload from the watcher.
type levelErrMsg struct{ err error }

// Options configures a terminal play session.
type Options struct {
	Config      config.Config
	Store       *storage.Store  // Optional; the run is recorded on exit
	Logger      *log.Logger     // Optional
	Watcher     *levels.Watcher // Optional; reloads the level while playing
	SnapshotDir string          // Where ctrl+s saves frames
}

// Model is the Bubble Tea model for walking a level in the terminal.
type Model struct {
	session     *session.Session
	cfg         config.Config
	logger      *log.Logger
	watcher     *levels.Watcher
	snapshotDir string

	keys      KeyMap
	keyMapper *KeyMapper
	help      help.Model
	blocks    *BlockRenderer
	input     core.InputFrame

	width    int
	height   int
	frame    string
	status   string
	failed   bool // Whether status reports an error
	showHelp bool
	mouseX   int
	mouseSet bool
	quitting bool
}

// NewModel creates a Bubble Tea model driving s.
func NewModel(s *session.Session, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	proj := s.Renderer().Projection()

	return Model{
		session:     s,
		cfg:         opts.Config,
		logger:      logger,
		watcher:     opts.Watcher,
		snapshotDir: opts.SnapshotDir,
		keys:        keys,
		keyMapper:   NewKeyMapper(keys),
		help:        help.New(),
		blocks:      NewBlockRenderer(),
		input:       core.NewInputFrame(),
		width:       proj.ScreenWidth,
		height:      Rows(proj.ScreenHeight) + statusRows,
	}
}

// Init starts the tick loop and, when watching, the reload listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.cfg.Render.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForLevel(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.handleResize()

	case TickMsg:
		return m.handleTick()

	case levelMsg:
		return m.handleReload(msg.level)

	case levelErrMsg:
		m.logger.Warn("level reload failed", "err", msg.err)
		m.setStatus("reload failed: "+msg.err.Error(), true)
		return m, waitForLevel(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input. Terminals report presses only, so
// movement keys count for the tick they arrive in; key repeat keeps them held.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionHelp:
		m.showHelp = !m.showHelp
		return m.handleResize()
	case core.ActionSnapshot:
		m.saveSnapshot()
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleMouse turns the view by horizontal pointer motion.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionMotion {
		return m, nil
	}
	if m.mouseSet {
		// One cell is two pixels wide at the frame's aspect ratio.
		m.input.Turn += float64(msg.X-m.mouseX) * m.cfg.Player.MouseSensitivity * 2
	}
	m.mouseX = msg.X
	m.mouseSet = true
	return m, nil
}

// handleResize fits the frame to the terminal below the status rows.
func (m Model) handleResize() (tea.Model, tea.Cmd) {
	rows := m.height
	if m.showHelp {
		rows -= fullHelpRows
	}
	w, h := FrameSize(m.width, rows)
	if err := m.session.Resize(w, h); err != nil {
		m.logger.Error("resize failed", "width", w, "height", h, "err", err)
		m.setStatus(err.Error(), true)
	}
	m.help.Width = m.width
	m.help.ShowAll = m.showHelp
	return m, nil
}

// handleTick advances the player and renders the next frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	buf := m.session.Step(m.input)
	m.frame = m.blocks.Render(buf)

	// Clear input for next frame
	m.input.Clear()

	return m, tickCmd(m.cfg.Render.TickRate)
}

func (m Model) handleReload(level *levels.Level) (tea.Model, tea.Cmd) {
	if err := m.session.SwapLevel(level); err != nil {
		m.logger.Warn("reloaded level rejected", "id", level.ID, "err", err)
		m.setStatus(err.Error(), true)
	} else {
		m.logger.Info("level reloaded", "id", level.ID, "path", level.FilePath)
		m.setStatus("reloaded "+level.Name, false)
	}
	return m, waitForLevel(m.watcher)
}

// saveSnapshot writes the last frame to the snapshot directory.
func (m *Model) saveSnapshot() {
	path, err := m.session.Snapshot(m.snapshotDir)
	if err != nil {
		m.logger.Error("snapshot failed", "err", err)
		m.setStatus(err.Error(), true)
		return
	}
	m.logger.Info("snapshot saved", "path", path)
	m.setStatus("saved "+path, false)
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

// View renders the frame, the status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	level := m.session.Level()
	pov := m.session.Player().View()
	stats := m.session.Stats()

	line := statusStyle.Render(level.Name) + "  " + infoStyle.Render(fmt.Sprintf(
		"%.0f fps  pos %.1f,%.1f  bearing %03.0f",
		stats.FPS(), pov.Position.X, pov.Position.Y, pov.Bearing,
	))
	if m.status != "" {
		style := infoStyle
		if m.failed {
			style = errorStyle
		}
		line += "  " + style.Render(m.status)
	}
	return line
}

// FrameSize returns the pixel frame that fills a terminal of cols x rows
// above the status rows.
func FrameSize(cols, rows int) (width, height int) {
	return max(cols, 1), max(rows-statusRows, 1) * 2
}

// waitForLevel blocks until the watcher delivers a level or an error.
func waitForLevel(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case level, ok := <-w.Levels():
			if !ok {
				return nil
			}
			return levelMsg{level: level}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return levelErrMsg{err: err}
		}
	}
}

// Run plays s in the terminal until the user quits, then records the run.
func Run(s *session.Session, opts Options) error {
	model := NewModel(s, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Report motion without a pressed button
	)

	if _, err := p.Run(); err != nil {
		return err
	}

	run := s.Run(storage.ModePlay)
	if opts.Store == nil || run.Frames == 0 {
		return nil
	}
	if _, err := opts.Store.SaveRun(run); err != nil {
		return err
	}
	model.logger.Info("run recorded", "level", run.LevelID, "frames", run.Frames, "distance", run.Distance)
	return nil
}
