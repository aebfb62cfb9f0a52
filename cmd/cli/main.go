package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"dirhist/internal/config"
	"dirhist/internal/logger"
	"dirhist/internal/plot"
	"dirhist/internal/search"
	"dirhist/internal/version"
)

var (
	pattern        string
	ignoreCase     bool
	followSymlinks bool
	excludeDirs    []string
	configPath     string
	logLevel       string
	plotDir        string
	doPlot         bool
	showPlot       bool
	showVersion    bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dirhist [flags] <directory>",
		Short: "Count matching file names per directory",
		Long: `Searches a directory tree for file names matching a regular expression
and reports how many matches each directory holds.
Example: dirhist -p '\.go$' --plot --show ~/src`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Print(version.Info())
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one directory, got %d", len(args))
			}
			if !cmd.Flags().Changed("pattern") {
				return errors.New(`required flag "pattern" not set`)
			}
			return run(cmd, args[0])
		},
	}

	rootCmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Regular expression matched against file names")
	rootCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Ignore case")
	rootCmd.Flags().BoolVarP(&followSymlinks, "follow-symlinks", "L", false, "Descend into symlinked directories")
	rootCmd.Flags().StringSliceVarP(&excludeDirs, "exclude", "x", []string{}, "Directory names to skip (can be specified multiple times)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default: user config dir/dirhist/config.yaml)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&plotDir, "plot-dir", "", "Directory for the histogram image")
	rootCmd.Flags().BoolVar(&doPlot, "plot", false, "Render a histogram of the result")
	rootCmd.Flags().BoolVar(&showPlot, "show", false, "Open the histogram in the system viewer")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return config.DefaultConfig(), nil
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	var ic, fs, op *bool
	if cmd.Flags().Changed("ignore-case") {
		ic = &ignoreCase
	}
	if cmd.Flags().Changed("follow-symlinks") {
		fs = &followSymlinks
	}
	if cmd.Flags().Changed("show") {
		op = &showPlot
	}
	cfg.MergeWithFlags(&logLevel, ic, fs, excludeDirs, &plotDir, op)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, root string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	fileLog, err := logger.NewFileLogger(cfg.LogDir, level)
	if err != nil {
		return err
	}
	defer fileLog.Close()
	log := logger.Multi{fileLog, logger.NewConsoleLogger(os.Stderr, logger.WARNING)}

	engine, err := search.New(root, pattern, cfg.SearchOptions(log))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nSearch interrupted by user")
			engine.Cancel()
			cancel()
		case <-ctx.Done():
		}
	}()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Searching"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	sub := engine.Subscribe(countMatches(bar.Add))
	defer engine.Unsubscribe(sub)

	result := engine.Search(ctx)
	bar.Finish()

	printResult(os.Stdout, result, engine.Status())

	if !doPlot && !showPlot {
		return nil
	}
	plotter := plot.NewPlotter(cfg.PlotDir, "Search for files in "+engine.Request().Root)
	if err := plotter.Plot(result, engine.Status()); err != nil {
		switch {
		case errors.Is(err, plot.ErrNotReady):
			fmt.Fprintln(os.Stderr, "Search did not complete, skipping plot")
			return nil
		case errors.Is(err, plot.ErrNothingToPlot):
			fmt.Fprintln(os.Stderr, "Nothing to plot")
			return nil
		}
		return err
	}
	fmt.Printf("Plot written to %s\n", plotter.Path())

	if cfg.OpenPlot {
		if err := plotter.Show(); err != nil {
			return fmt.Errorf("failed to open plot: %w", err)
		}
	}
	return nil
}

// countMatches returns an observer that calls add once per match. The first
// notification of a search announces the reset and is not a match.
func countMatches(add func(int) error) func() {
	reset := true
	return func() {
		if reset {
			reset = false
			return
		}
		add(1)
	}
}

func printResult(w io.Writer, result search.Result, status search.Status) {
	label := color.New(color.FgCyan)
	value := color.New(color.FgWhite, color.Bold)

	for _, key := range result.Keys() {
		fmt.Fprintf(w, "%s\t%s\n", label.Sprint(key), value.Sprint(result[key]))
	}

	fmt.Fprintf(w, "\nTotal: %d matches in %d directories (digest %016x)\n",
		result.Total(), len(result), result.Digest())
	if status == search.StatusCancelled {
		color.New(color.FgYellow).Fprintln(w, "Search was cancelled, result is partial")
	}
}
