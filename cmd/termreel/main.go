package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/termreel/internal/animation"
	"github.com/san-kum/termreel/internal/config"
	"github.com/san-kum/termreel/internal/progress"
	"github.com/san-kum/termreel/internal/workload"
)

var (
	items       int
	minDelay    time.Duration
	maxDelay    time.Duration
	logEvery    int
	failAt      int
	seed        int64
	barLength   int
	sweepSpeed  float64
	graphHeight int
	title       string
	configFile  string
	preset      string
	logFile     string
	verbose     bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "termreel",
		Short:        "in-place terminal animation for item-by-item work",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a synthetic workload under the progress animation",
		Args:  cobra.NoArgs,
		RunE:  runReel,
	}
	runCmd.Flags().IntVar(&items, "items", config.DefaultItems, "number of items")
	runCmd.Flags().DurationVar(&minDelay, "min-delay", config.DefaultMinDelay, "shortest simulated item duration")
	runCmd.Flags().DurationVar(&maxDelay, "max-delay", config.DefaultMaxDelay, "longest simulated item duration")
	runCmd.Flags().IntVar(&logEvery, "log-every", config.DefaultLogEvery, "log a line every n items (0 disables)")
	runCmd.Flags().IntVar(&failAt, "fail-at", 0, "1-based item that fails (0 disables)")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&barLength, "bar-length", config.DefaultBarLength, "progress bar cells")
	runCmd.Flags().Float64Var(&sweepSpeed, "sweep-speed", config.DefaultSweepSpeed, "highlight cells per frame")
	runCmd.Flags().IntVar(&graphHeight, "graph", 0, "height of the item duration graph (0 disables)")
	runCmd.Flags().StringVar(&title, "title", "Logs:", "header line above the logs")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "write diagnostics to this file instead of stderr")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug diagnostics")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, presetsCmd, configCmd)
	return rootCmd
}

func runReel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.OutOrStdout()
	opts := []progress.Option{
		progress.WithBarLength(cfg.Bar.Length),
		progress.WithSweepSpeed(cfg.Bar.SweepSpeed),
		progress.WithTimingGraph(cfg.Bar.GraphHeight),
		progress.WithTitle(cfg.Bar.Title),
	}
	if width, ok := terminalWidth(out); ok {
		opts = append(opts, progress.WithMaxWidth(width))
	}

	spec := cfg.Workload()
	task := workload.NewTask(spec)
	anim := progress.New(spec.IDs(), task.Handle, opts...)

	logger.Info("run starting", "items", spec.Items, "seed", spec.Seed, "bar", cfg.Bar.Length)
	stats, err := anim.Run(cmd.Context(),
		animation.WithOutput(out),
		animation.WithLogger(logger))
	if errors.Is(err, animation.ErrWrite) {
		// the workload is still running and stats is not safe to read
		logger.Error("run aborted", "error", err)
		return err
	}
	if err != nil {
		logger.Error("run failed", "completed", stats.Index, "total", stats.Total, "error", err)
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted after %d of %d items", stats.Index, stats.Total)
		}
		return fmt.Errorf("run failed after %d of %d items: %w", stats.Index, stats.Total, err)
	}

	logger.Info("run finished", "items", stats.Index, "avg", stats.Avg, "elapsed", stats.Elapsed)
	return nil
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. The config file is read over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("items") {
		cfg.Items = items
	}
	if flags.Changed("min-delay") {
		cfg.MinDelay = minDelay
	}
	if flags.Changed("max-delay") {
		cfg.MaxDelay = maxDelay
	}
	if flags.Changed("log-every") {
		cfg.LogEvery = logEvery
	}
	if flags.Changed("fail-at") {
		cfg.FailAt = failAt
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("sweep-speed") {
		cfg.Bar.SweepSpeed = sweepSpeed
	}
	if flags.Changed("graph") {
		cfg.Bar.GraphHeight = graphHeight
	}
	if flags.Changed("title") {
		cfg.Bar.Title = title
	}
	if flags.Changed("bar-length") {
		cfg.Bar.Length = barLength
	} else if preset == "" && configFile == "" {
		if width, ok := terminalWidth(cmd.OutOrStdout()); ok && width-2 < cfg.Bar.Length {
			cfg.Bar.Length = max(width-2, 1)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// terminalWidth reports the column count when w is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

func newLogger(stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	w, closeFn := stderr, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tITEMS\tDELAY\tBAR\tFAIL AT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		failAt := "-"
		if p.FailAt > 0 {
			failAt = fmt.Sprint(p.FailAt)
		}
		fmt.Fprintf(w, "%s\t%d\t%v-%v\t%d\t%s\n", name, p.Items, p.MinDelay, p.MaxDelay, p.Bar.Length, failAt)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "termreel.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
