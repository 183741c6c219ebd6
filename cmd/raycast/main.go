// raycast renders grid-based 3D levels with a software raycaster, in the
// terminal or in a desktop window.
//
// Usage:
//
//	raycast levels                - List available levels
//	raycast play [level|file]     - Walk a level in the terminal
//	raycast window [level|file]   - Walk a level in a desktop window
//	raycast menu                  - Pick levels interactively
//	raycast snapshot [level]      - Render one frame to a PNG
//	raycast bench [level]         - Measure rendering speed
//	raycast runs [level]          - Show recorded runs
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.raycast/configs, ./configs)
//	--db <path>         - Runs database (default: ~/.raycast/runs.db)
//	--fps <rate>        - Override the tick rate
//	--quality <preset>  - low, medium, high or ultra
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagFPS      int
	flagQuality  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycast",
	Short: "Raycast - walk grid levels rendered in software",
	Long: `Raycast renders grid-based levels with multi-elevation floors and
ceilings, textured walls and distance lighting, in your terminal or a window.

Available commands:
  levels    - Show all available levels
  play      - Walk a level in the terminal
  window    - Walk a level in a desktop window
  menu      - Interactive level picker
  snapshot  - Render a single frame to a PNG file
  bench     - Measure frames per second
  runs      - View recorded play and benchmark runs

Examples:
  raycast levels
  raycast play atrium
  raycast play ./my-level.yaml --watch
  raycast window terraces --quality ultra
  raycast bench cistern --frames 500
  raycast snapshot atrium -o atrium.png`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.raycast/runs.db", "Path to the runs database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagQuality, "quality", "", "Quality preset: low, medium, high, ultra")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
}
