// Command woest-sondes converts Vaisala MW41 EDT radiosonde exports into
// CF-1.6 / NCAS-AMF NetCDF files.
//
// Usage:
//
//	woest-sondes convert RAW_DIR NETCDF_DIR
//	woest-sondes file INPUT OUTPUT_DIR
//
// Settings come from the environment (LOG_LEVEL, SONDE_WORKERS,
// SONDE_STATIONS, ...); flags override them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gapintheclouds/woest-sondes/internal/adapter/edt"
	"github.com/gapintheclouds/woest-sondes/internal/adapter/netcdf"
	"github.com/gapintheclouds/woest-sondes/internal/config"
	"github.com/gapintheclouds/woest-sondes/internal/observability"
	"github.com/gapintheclouds/woest-sondes/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("woest-sondes failed", "error", err)
		os.Exit(1)
	}
}

// flags holds command line overrides of the environment configuration.
type flags struct {
	workers        int
	productVersion string
	stations       []string
	metricsFile    string
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "woest-sondes",
		Short:         "Convert WOEST radiosonde EDT files to NetCDF.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&f.workers, "workers", 0, "files converted concurrently (overrides SONDE_WORKERS)")
	root.PersistentFlags().StringVar(&f.productVersion, "product-version", "", "product version in file names (overrides SONDE_PRODUCT_VERSION)")
	root.PersistentFlags().StringVar(&f.metricsFile, "metrics-file", "", "node-exporter textfile for run metrics (overrides SONDE_METRICS_FILE)")

	convert := &cobra.Command{
		Use:   "convert RAW_DIR NETCDF_DIR",
		Short: "Convert every station subdirectory of RAW_DIR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(f)
			if err != nil {
				return err
			}
			return a.convert(cmd.Context(), args[0], args[1])
		},
	}
	convert.Flags().StringSliceVar(&f.stations, "stations", nil, "station subdirectories (overrides SONDE_STATIONS)")

	file := &cobra.Command{
		Use:   "file INPUT OUTPUT_DIR",
		Short: "Convert a single EDT file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(f)
			if err != nil {
				return err
			}
			return a.file(cmd.Context(), args[0], args[1])
		},
	}

	root.AddCommand(convert, file)
	return root
}

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

func newApp(f flags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.workers != 0 {
		cfg.Workers = f.workers
	}
	if f.productVersion != "" {
		cfg.ProductVersion = f.productVersion
	}
	if len(f.stations) > 0 {
		cfg.Stations = f.stations
	}
	if f.metricsFile != "" {
		cfg.MetricsFile = f.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  observability.NewLogger(cfg),
		metrics: observability.NewMetrics(),
	}, nil
}

func (a *app) pipeline(outDir string) (*pipeline.Pipeline, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return pipeline.New(
		edt.NewReader(a.logger),
		pipeline.NewTransformer(a.logger),
		netcdf.NewWriter(a.cfg, outDir, a.logger),
		a.logger,
		a.metrics,
		a.cfg.Workers,
	), nil
}

func (a *app) convert(ctx context.Context, rawDir, outDir string) error {
	paths, err := pipeline.Discover(rawDir, a.cfg.Stations, a.cfg.FilePattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		a.logger.Warn("no input files found", "raw_dir", rawDir, "pattern", a.cfg.FilePattern)
	}

	p, err := a.pipeline(outDir)
	if err != nil {
		return err
	}
	sum, runErr := p.Run(ctx, paths)
	a.flushMetrics()
	if runErr != nil {
		return runErr
	}
	if len(sum.Failures) > 0 {
		return fmt.Errorf("%d of %d files failed", len(sum.Failures), len(paths))
	}
	return nil
}

func (a *app) file(ctx context.Context, input, outDir string) error {
	p, err := a.pipeline(outDir)
	if err != nil {
		return err
	}
	out, err := p.ProcessFile(ctx, input)
	a.flushMetrics()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func (a *app) flushMetrics() {
	if a.cfg.MetricsFile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.Error("metrics flush failed", "error", err)
	}
}
