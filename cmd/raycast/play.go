package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/levels"
	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/session"
)

var flagWatch bool

var errWatchNeedsFile = errors.New("--watch needs a level file, not a level ID")

var playCmd = &cobra.Command{
	Use:   "play [level|file]",
	Short: "Walk a level in the terminal",
	Long: `Walk a level in the terminal. Each character cell shows two pixels
using half blocks, so a truecolor terminal is recommended.

Controls:
  W/S, Up/Down      - Move forward/back
  A/D               - Strafe
  Left/Right, Q/E   - Turn
  Mouse             - Turn
  P, Ctrl+S         - Save a PNG snapshot to ~/.raycast/snapshots
  ?                 - Toggle help
  Esc, Ctrl+C       - Quit

With --watch the level file is reloaded whenever it is saved.
Logs are written to ~/.raycast/raycast.log.

Examples:
  raycast play
  raycast play terraces
  raycast play ./levels/vault.yaml --watch
  raycast play cistern --quality high --fps 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level file when it changes")
}

func runPlay(_ *cobra.Command, args []string) error {
	a, err := newApp(logToFile)
	if err != nil {
		return err
	}
	defer a.Close()

	level, isFile, err := a.resolveLevel(firstArg(args))
	if err != nil {
		return err
	}
	if flagWatch && !isFile {
		return errWatchNeedsFile
	}

	if err := a.openStore(false); err != nil {
		return err
	}
	return a.playTerminal(level, flagWatch)
}

// playTerminal runs one terminal session on level.
func (a *app) playTerminal(level *levels.Level, watch bool) error {
	width, height := tui.FrameSize(terminalSize())
	s, err := session.New(level, a.cfg, width, height)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Config:      a.cfg,
		Store:       a.store,
		Logger:      a.logger,
		SnapshotDir: snapshotDir(),
	}
	if watch {
		if w := a.watchLevel(level); w != nil {
			defer w.Close()
			opts.Watcher = w
		}
	}

	a.logger.Info("playing", "level", level.ID, "frame", fmt.Sprintf("%dx%d", width, height))
	return tui.Run(s, opts)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
