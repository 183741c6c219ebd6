package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to walk a level.
Leaving a level returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Recorded runs
  Q            - Quit

Examples:
  raycast menu
  raycast menu --quality high`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(logToFile)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openStore(false); err != nil {
		return err
	}

	width, height := terminalSize()

	// Menu loop
	for {
		result, err := tui.RunMenu(width, height)
		if err != nil {
			return err
		}
		if result.Width > 0 && result.Height > 0 {
			width, height = result.Width, result.Height
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsRuns:
			goBack, err := tui.RunRuns(a.store, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.LevelID != "":
			level, err := registry.Create(result.LevelID)
			if err != nil {
				a.logger.Error("cannot load level", "id", result.LevelID, "err", err)
				continue
			}
			if err := a.playTerminal(level, false); err != nil {
				return err
			}
		}
	}
}
