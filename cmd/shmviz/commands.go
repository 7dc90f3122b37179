package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/san-kum/shmviz/internal/analysis"
	"github.com/san-kum/shmviz/internal/anim"
	"github.com/san-kum/shmviz/internal/config"
	"github.com/san-kum/shmviz/internal/export"
	"github.com/san-kum/shmviz/internal/shm"
	"github.com/san-kum/shmviz/internal/storage"
	"github.com/san-kum/shmviz/internal/sweep"
	"github.com/san-kum/shmviz/internal/tui"
	"github.com/san-kum/shmviz/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, true)
	if err != nil {
		return err
	}
	opts, err := animOptions(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("starting interactive view", zap.Stringer("params", cfg.Params))
	return viz.Run(viz.Options{
		Params:    cfg.Params,
		Anim:      opts,
		CacheSize: shm.DefaultCacheSize,
		Theme:     viz.ThemeClassic.Name,
	})
}

func sampleTrajectory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, false)
	if err != nil {
		return err
	}
	tr := shm.Sample(cfg.Params)

	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, tr)
	case "json":
		return export.WriteJSON(os.Stdout, tr)
	case "table":
		return writeTable(os.Stdout, tr)
	}
	return fmt.Errorf("unknown format: %s (want table, csv or json)", format)
}

func writeTable(out io.Writer, tr shm.Trajectory) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "T\tPOSITION\tVELOCITY\tACCELERATION\t")
	for i := range tr.T {
		k := tr.At(i)
		fmt.Fprintf(w, "%.3f\t%.6f\t%.6f\t%.6f\t\n", tr.T[i], k.Position, k.Velocity, k.Acceleration)
	}
	return w.Flush()
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, false)
	if err != nil {
		return err
	}
	tr := shm.Sample(cfg.Params)
	fmt.Printf("params: %s\n\n", tr.Params)
	fmt.Println(chart(tr))
	return nil
}

func chart(tr shm.Trajectory) string {
	opts := viz.DefaultChartOptions()
	opts.Width, opts.Height = width, height
	return viz.PlotTrajectory(tr, opts)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, false)
	if err != nil {
		return err
	}
	opts, err := animOptions(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	renderer := tui.NewLiveRenderer(os.Stdout, tui.DefaultPixelsPerCell)
	driver := anim.NewDriver(shm.NewControls(cfg.Params), renderer, anim.TickerScheduler{}, opts)

	renderer.Start()
	defer renderer.Stop()
	if err := driver.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	driver.Stop()

	logger.Info("animation finished",
		zap.Int("ticks", driver.Ticks()),
		zap.Float64("clock", driver.Clock()))
	fmt.Printf("\n%d frames, virtual clock %.2fs\n", driver.Ticks(), driver.Clock())
	return nil
}

func storeRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, false)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	tr := shm.Sample(cfg.Params)
	runID, err := st.Save(tr, note)
	if err != nil {
		return err
	}
	logger.Info("run stored", zap.String("run_id", runID), zap.String("dir", dataDir))

	s := analysis.Summarize(tr)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("params: %s\n", tr.Params)
	fmt.Printf("samples: %d\n", tr.Len())
	fmt.Println("\nsummary:")
	printSummary(os.Stdout, s)
	return nil
}

func printSummary(out io.Writer, s analysis.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  SERIES\tMIN\tMAX\tFINITE")
	rows := []struct {
		name string
		e    analysis.Extrema
	}{
		{"position", s.Position},
		{"velocity", s.Velocity},
		{"acceleration", s.Acceleration},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%.6g\t%.6g\t%d\n", r.name, r.e.Min, r.e.Max, r.e.Count)
	}
	fmt.Fprintf(w, "  period\t%.6gs\t\t\n", s.Period)
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd, false); err != nil {
		return err
	}
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tAMPLITUDE\tOMEGA\tPHASE\tSAMPLES\tNOTE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			float64(run.Params.Amplitude),
			float64(run.Params.Omega),
			float64(run.Params.Phase),
			run.Samples,
			run.Note,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, shm.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, shm.Trajectory{}, err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, shm.Trajectory{}, err
	}
	if tr.Len() == 0 {
		return nil, shm.Trajectory{}, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, tr, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd, false); err != nil {
		return err
	}
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("params: %s\n", tr.Params)
	if meta.Note != "" {
		fmt.Printf("note: %s\n", meta.Note)
	}
	fmt.Printf("samples: %d\n\n", tr.Len())
	fmt.Println(chart(tr))
	return nil
}

// output returns the destination for an export: the --out file, or stdout.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportRun(cmd *cobra.Command, runID string, write func(io.Writer, shm.Trajectory) error) error {
	_, logger, err := setup(cmd, false)
	if err != nil {
		return err
	}
	_, tr, err := loadRun(runID)
	if err != nil {
		return err
	}
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := write(w, tr); err != nil {
		closeFn()
		return fmt.Errorf("export %s: %w", runID, err)
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outFile != "" {
		logger.Info("exported", zap.String("run_id", runID), zap.String("file", outFile))
		fmt.Fprintf(os.Stderr, "exported to %s\n", outFile)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return exportRun(cmd, args[0], export.WriteJSON)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return exportRun(cmd, args[0], export.WriteCSV)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	return exportRun(cmd, args[0], func(w io.Writer, tr shm.Trajectory) error {
		_, err := io.WriteString(w, export.TrajectoryToSVG(tr, export.DefaultChartOptions()))
		return err
	})
}

func analyzeTrajectory(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, false)
	if err != nil {
		return err
	}

	var tr shm.Trajectory
	if len(args) == 1 {
		meta, loaded, err := loadRun(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("frequency analysis: %s\n", meta.ID)
		tr = loaded
	} else {
		fmt.Println("frequency analysis")
		tr = shm.Sample(cfg.Params)
	}
	fmt.Printf("params: %s\n\n", tr.Params)

	printSummary(os.Stdout, analysis.Summarize(tr))
	fmt.Println()

	freq, err := analysis.DominantFrequency(tr.Position, shm.SampleStep)
	if err != nil {
		fmt.Printf("dominant frequency: unavailable (%v)\n", err)
	} else {
		fmt.Printf("dominant frequency: %.3f Hz\n", freq)
		fmt.Printf("estimated omega: %.3f rad/s (configured %.3f)\n", 2*math.Pi*freq, math.Abs(tr.Params.AngularFrequency))
		fmt.Printf("resolution: %.3f Hz\n", 1/(shm.SampleCount*shm.SampleStep))
	}

	portrait := analysis.PhasePortrait(tr)
	if art := viz.PlotPhasePortrait(portrait, 40, 12); art != "" {
		fmt.Println("\nphase portrait (position vs velocity):")
		fmt.Print(art)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, false)
	if err != nil {
		return err
	}
	metric, ok := sweep.Metrics[rankBy]
	if !ok {
		return fmt.Errorf("unknown metric: %s (available: %v)", rankBy, sweep.MetricNames())
	}

	grid := sweep.Grid{
		Amplitudes: orDefault(amplitudes, cfg.Params.Amplitude),
		Omegas:     orDefault(omegas, cfg.Params.AngularFrequency),
		Phases:     orDefault(phases, cfg.Params.Phase),
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sweep.Run(ctx, grid, workers)
	if err != nil {
		return err
	}
	logger.Info("sweep finished", zap.Int("points", len(results)), zap.Duration("elapsed", time.Since(start)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AMPLITUDE\tOMEGA\tPHASE\t|X|MAX\t|V|MAX\t|A|MAX\tFREQ (HZ)")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.3f\n",
			r.Params.Amplitude, r.Params.AngularFrequency, r.Params.Phase,
			r.PeakAbs[0], r.PeakAbs[1], r.PeakAbs[2], r.Dominant)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(results, metric); ok {
		fmt.Printf("\nlowest %s: %s\n", rankBy, best.Params)
	}
	return nil
}

func orDefault(values []float64, def float64) []float64 {
	if len(values) == 0 {
		return []float64{def}
	}
	return values
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tAMPLITUDE\tOMEGA\tPHASE")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%g\t%.4g\t%.4g\n", name, p.Amplitude, p.AngularFrequency, p.Phase)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd, false)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
