package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/platform/window"
	"github.com/vovakirdan/tui-raycaster/internal/session"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	flagBenchFrames  int
	flagBenchWidth   int
	flagBenchHeight  int
	flagBenchWorkers int
	flagBenchNoSave  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [level|file]",
	Short: "Measure rendering speed",
	Long: `Render a fixed number of frames while turning in place and report the
average frame time. Results are recorded as bench runs unless --no-save is set.

Examples:
  raycast bench
  raycast bench cistern --frames 1000
  raycast bench terraces --width 640 --height 400 --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchFrames, "frames", 300, "Frames to render")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 0, "Frame width (0 = window size / scale)")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 0, "Frame height (0 = window size / scale)")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", 0, "Casting goroutines (0 = from config)")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not record the run")
}

func runBench(_ *cobra.Command, args []string) error {
	if flagBenchFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagBenchFrames)
	}

	a, err := newApp(logToStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	level, _, err := a.resolveLevel(firstArg(args))
	if err != nil {
		return err
	}

	if flagBenchWorkers > 0 {
		a.cfg.Render.Workers = flagBenchWorkers
	}
	width, height := window.FrameSize(a.cfg.Window)
	if flagBenchWidth > 0 {
		width = flagBenchWidth
	}
	if flagBenchHeight > 0 {
		height = flagBenchHeight
	}

	s, err := session.New(level, a.cfg, width, height)
	if err != nil {
		return err
	}

	// A full turn over the run so every wall gets drawn.
	in := core.NewInputFrame()
	in.Turn = 360 / float64(flagBenchFrames)
	for range flagBenchFrames {
		s.Step(in)
	}

	run := s.Run(storage.ModeBench)
	fmt.Printf("%s  %dx%d  %d workers\n", level.ID, width, height, run.Workers)
	fmt.Printf("  frames     %d\n", run.Frames)
	fmt.Printf("  avg frame  %.3f ms\n", run.AvgFrameMS)
	fmt.Printf("  fps        %.1f\n", run.FPS())

	if flagBenchNoSave {
		return nil
	}
	if err := a.openStore(true); err != nil {
		return err
	}

	best, err := a.store.BestBenchAt(level.ID, width, height)
	if err != nil {
		return err
	}
	if _, err := a.store.SaveRun(run); err != nil {
		return err
	}
	if best != nil {
		fmt.Printf("  previous best at %dx%d  %.3f ms (%.1f fps, %d workers)\n",
			best.Width, best.Height, best.AvgFrameMS, best.FPS(), best.Workers)
	}
	a.logger.Debug("bench recorded", "level", level.ID, "avg_ms", run.AvgFrameMS)
	return nil
}
