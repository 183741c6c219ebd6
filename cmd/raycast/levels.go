package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and the levels found in the configured
level directory (levels.dir, default ~/.raycast/levels).`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	a, err := newApp(logToStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	all := registry.List()
	if len(all) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Source")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "----", "------")
	for _, l := range all {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, l.ID, maxNameLen, l.Name, l.Source)
	}

	fmt.Println()
	fmt.Println("Run 'raycast play <id>' to walk a level.")
	return nil
}
