package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/san-kum/shmviz/internal/anim"
	"github.com/san-kum/shmviz/internal/config"
	"github.com/san-kum/shmviz/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	// SHM parameters
	amplitude float64
	omega     float64
	phase     float64
	// animation
	axis     string
	interval time.Duration
	duration time.Duration
	// output
	format  string
	outFile string
	note    string
	width   int
	height  int
	// sweep
	amplitudes []float64
	omegas     []float64
	phases     []float64
	workers    int
	rankBy     string
)

// main registers commands and flags and runs the interactive view when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "shmviz",
		Short:        "simple harmonic motion sampler and animator",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".shmviz", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.Float64Var(&amplitude, "amplitude", 1, "amplitude A")
	pf.Float64Var(&omega, "omega", 2*math.Pi, "angular frequency ω (rad/s)")
	pf.Float64Var(&phase, "phase", 0, "phase φ (rad)")
	addAnimFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive view with inputs, chart and animation",
		RunE:  runTUI,
	}
	addAnimFlags(tuiCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "print the sampled trajectory",
		RunE:  sampleTrajectory,
	}
	sampleCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "ascii chart of position, velocity and acceleration",
		RunE:  plotTrajectory,
	}
	addChartFlags(plotCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the mass in the terminal",
		RunE:  runLive,
	}
	addAnimFlags(liveCmd)
	liveCmd.Flags().DurationVar(&duration, "time", 10*time.Second, "how long to animate (0 runs until interrupted)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sample and store a run",
		RunE:  storeRun,
	}
	runCmd.Flags().StringVar(&note, "note", "", "free-form note saved with the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	addChartFlags(showCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run chart to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	for _, c := range []*cobra.Command{exportJSONCmd, exportSVGCmd, exportCSVCmd} {
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and phase portrait",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeTrajectory,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "evaluate a grid of parameters in parallel",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&amplitudes, "amplitudes", nil, "amplitudes to try (default --amplitude)")
	sweepCmd.Flags().Float64SliceVar(&omegas, "omegas", nil, "angular frequencies to try (default --omega)")
	sweepCmd.Flags().Float64SliceVar(&phases, "phases", nil, "phases to try (default --phase)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses all CPUs)")
	sweepCmd.Flags().StringVar(&rankBy, "rank", "acceleration", "metric to minimize (acceleration, frequency, position, velocity)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, sampleCmd, plotCmd, liveCmd, runCmd, listCmd, showCmd,
		exportJSONCmd, exportSVGCmd, exportCSVCmd, analyzeCmd, sweepCmd, presetsCmd, initConfigCmd)

	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func addAnimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&axis, "axis", config.DefaultAxis, "direction of motion (horizontal, vertical)")
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval, "tick interval")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 80, "chart width")
	cmd.Flags().IntVar(&height, "height", 12, "chart height")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("amplitude") {
		cfg.Params.Amplitude = amplitude
	}
	if flags.Changed("omega") {
		cfg.Params.AngularFrequency = omega
	}
	if flags.Changed("phase") {
		cfg.Params.Phase = phase
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("axis") {
		a, err := anim.ParseAxis(axis)
		if err != nil {
			return nil, err
		}
		cfg.Animation.Axis = a.String()
	}
	if flags.Changed("interval") {
		cfg.Animation.Interval = interval
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves the configuration and starts logging. Interactive
// commands own the terminal, so their console log output is discarded.
func setup(cmd *cobra.Command, interactive bool) (*config.Config, *zap.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if interactive {
		observability.Initialize(cfg.Log, zapcore.AddSync(io.Discard))
	} else {
		observability.InitializeLogger(cfg.Log)
	}
	logger := observability.GetLogger().Named(cmd.Name())
	logger.Debug("configuration resolved",
		zap.Stringer("params", cfg.Params),
		zap.String("preset", preset),
		zap.String("config", configFile))
	return cfg, logger, nil
}

func animOptions(cfg *config.Config, logger *zap.Logger) (anim.Options, error) {
	a, err := anim.ParseAxis(cfg.Animation.Axis)
	if err != nil {
		return anim.Options{}, err
	}
	return anim.Options{
		Interval:      cfg.Animation.Interval,
		ClockStep:     cfg.Animation.ClockStep,
		PixelsPerUnit: cfg.Animation.PixelsPerUnit,
		Axis:          a,
		Logger:        logger,
	}, nil
}
