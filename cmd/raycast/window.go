package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/platform/window"
	"github.com/vovakirdan/tui-raycaster/internal/session"
)

var windowCmd = &cobra.Command{
	Use:   "window [level|file]",
	Short: "Walk a level in a desktop window",
	Long: `Walk a level in a desktop window. The frame is rendered at the window
size divided by window.scale and scaled up.

Controls:
  W/S, Up/Down      - Move forward/back
  A/D               - Strafe
  Left/Right, Q/E   - Turn
  Mouse             - Turn (the cursor is captured)
  P, F12            - Save a PNG snapshot to ~/.raycast/snapshots
  F1                - Toggle the overlay
  Esc               - Quit

Examples:
  raycast window
  raycast window terraces --quality ultra
  raycast window ./levels/vault.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level file when it changes")
}

func runWindow(_ *cobra.Command, args []string) error {
	a, err := newApp(logToStderr)
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

	width, height := window.FrameSize(a.cfg.Window)
	s, err := session.New(level, a.cfg, width, height)
	if err != nil {
		return err
	}

	opts := window.Options{
		Config:      a.cfg,
		Store:       a.store,
		Logger:      a.logger,
		SnapshotDir: snapshotDir(),
	}
	if flagWatch {
		if w := a.watchLevel(level); w != nil {
			defer w.Close()
			opts.Watcher = w
		}
	}

	a.logger.Info("opening window", "level", level.ID, "width", width, "height", height)
	return window.Run(s, opts)
}
