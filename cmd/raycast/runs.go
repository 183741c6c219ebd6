package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show recorded runs",
	Long: `Display recent play and benchmark runs, for one level or all of them.

Examples:
  raycast runs
  raycast runs atrium --limit 5
  raycast runs --tui
  raycast runs stats
  raycast runs clear atrium`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals per level",
	Args:  cobra.NoArgs,
	RunE:  runRunsStats,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear [level]",
	Short: "Delete recorded runs of a level, or all runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRunsClear,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
	runsCmd.AddCommand(runsStatsCmd)
	runsCmd.AddCommand(runsClearCmd)
}

// openRunsApp creates an app with the runs database open.
func openRunsApp() (*app, error) {
	a, err := newApp(logToStderr)
	if err != nil {
		return nil, err
	}
	if err := a.openStore(true); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func runRuns(_ *cobra.Command, args []string) error {
	a, err := openRunsApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if flagRunsTUI {
		width, height := terminalSize()
		_, err := tui.RunRuns(a.store, width, height)
		return err
	}

	levelID := firstArg(args)
	if levelID != "" && !registry.Exists(levelID) {
		a.logger.Warn("level is not registered, showing stored runs anyway", "id", levelID)
	}

	runs, err := a.store.RecentRuns(levelID, flagRunsLimit)
	if err != nil {
		return err
	}

	title := "all levels"
	if levelID != "" {
		title = levelID
	}
	fmt.Printf("Recent runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play or bench a level to record one.")
		return nil
	}

	fmt.Printf("  %-12s  %-5s  %8s  %9s  %7s  %9s  %s\n", "Level", "Mode", "Frames", "ms/frame", "Dist", "Size", "Date")
	fmt.Printf("  %-12s  %-5s  %8s  %9s  %7s  %9s  %s\n", "-----", "----", "------", "--------", "----", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-12s  %-5s  %8d  %9.3f  %7.1f  %9s  %s\n",
			r.LevelID, r.Mode, r.Frames, r.AvgFrameMS, r.Distance,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runRunsStats(_ *cobra.Command, _ []string) error {
	a, err := openRunsApp()
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.store.AllLevelStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %5s  %9s  %8s  %10s  %s\n", "Level", "Runs", "Frames", "Dist", "Best ms", "Last played")
	for _, id := range ids {
		st := all[id]
		best := "-"
		if st.BestFrameMS > 0 {
			best = fmt.Sprintf("%.3f", st.BestFrameMS)
		}
		fmt.Printf("  %-12s  %5d  %9d  %8.1f  %10s  %s\n",
			id, st.Runs, st.TotalFrames, st.TotalDistance, best, st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runRunsClear(_ *cobra.Command, args []string) error {
	a, err := openRunsApp()
	if err != nil {
		return err
	}
	defer a.Close()

	levelID := firstArg(args)
	n, err := a.store.ClearRuns(levelID)
	if err != nil {
		return err
	}
	a.logger.Info("runs cleared", "level", levelOrAll(levelID), "count", n)
	return nil
}

func levelOrAll(id string) string {
	if id == "" {
		return "all"
	}
	return id
}
