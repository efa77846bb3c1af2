package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gapintheclouds/woest-sondes/internal/domain"
	"github.com/gapintheclouds/woest-sondes/internal/observability"
)

// Stage names used in FileError and the files_failed_total metric.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// Extractor reads one raw EDT file.
type Extractor interface {
	Extract(ctx context.Context, path string) (domain.RawSounding, error)
}

// Transformer converts a raw file into a canonical profile.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawSounding) (*domain.Profile, error)
}

// Loader persists a profile and returns where it was written.
type Loader interface {
	Load(ctx context.Context, p *domain.Profile) (string, error)
}

// FileError records which stage rejected an input file.
type FileError struct {
	Path  string
	Stage string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Summary is the outcome of a batch run. Outputs and Failures keep input order.
type Summary struct {
	Outputs  []string
	Failures []*FileError
}

// Pipeline orchestrates extract-transform-load for each input file.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	workers     int
}

// New creates a Pipeline with the given stages and observability. workers
// bounds how many files are converted at once.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		workers:     workers,
	}
}

// ProcessFile converts a single file. Errors are *FileError.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (string, error) {
	start := time.Now()

	raw, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return "", p.fail(path, StageExtract, err)
	}

	profile, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		return "", p.fail(path, StageTransform, err)
	}

	out, err := p.loader.Load(ctx, profile)
	if err != nil {
		return "", p.fail(path, StageLoad, err)
	}

	p.metrics.FilesConverted.Inc()
	p.metrics.RowsWritten.Add(float64(profile.Len()))
	p.metrics.RowsDropped.Add(float64(profile.Table.Dropped))
	p.metrics.ProfileRows.Observe(float64(profile.Len()))
	p.metrics.FileDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("sounding converted",
		"file", path,
		"output", out,
		"station", profile.StationName,
		"rows", profile.Len(),
		"dropped_rows", profile.Table.Dropped,
	)
	return out, nil
}

// Run converts every path with a bounded worker group. A failing file is
// logged, counted and recorded in the Summary; the batch continues. Run
// returns an error only when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, paths []string) (Summary, error) {
	p.logger.Info("conversion started", "files", len(paths), "workers", p.workers)
	p.metrics.RunInProgress.Set(1)
	defer p.metrics.RunInProgress.Set(0)
	p.metrics.FilesDiscovered.Add(float64(len(paths)))

	outputs := make([]string, len(paths))
	failures := make([]*FileError, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.ProcessFile(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				var fe *FileError
				if errors.As(err, &fe) {
					failures[i] = fe
				}
				return nil
			}
			outputs[i] = out
			return nil
		})
	}
	err := g.Wait()

	var sum Summary
	for i := range paths {
		if outputs[i] != "" {
			sum.Outputs = append(sum.Outputs, outputs[i])
		}
		if failures[i] != nil {
			sum.Failures = append(sum.Failures, failures[i])
		}
	}

	if err != nil {
		p.logger.Info("conversion stopping", "reason", err)
		return sum, err
	}
	p.logger.Info("conversion finished", "converted", len(sum.Outputs), "failed", len(sum.Failures))
	return sum, nil
}

func (p *Pipeline) fail(path, stage string, err error) *FileError {
	p.logger.Warn(stage+" failed, skipping file", "file", path, "error", err)
	p.metrics.FilesFailed.WithLabelValues(stage).Inc()
	return &FileError{Path: path, Stage: stage, Err: err}
}
