package netcdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ctessum/cdf"

	"github.com/gapintheclouds/woest-sondes/internal/config"
	"github.com/gapintheclouds/woest-sondes/internal/domain"
)

// Writer emits one NetCDF classic file per profile into a directory.
// It implements pipeline.Loader.
type Writer struct {
	dir            string
	productVersion string
	attribution    config.Attribution
	logger         *slog.Logger
}

// NewWriter creates a Writer for outDir using the configured product
// version and attribution.
func NewWriter(cfg *config.Config, outDir string, logger *slog.Logger) *Writer {
	return &Writer{
		dir:            outDir,
		productVersion: cfg.ProductVersion,
		attribution:    cfg.Attribution,
		logger:         logger,
	}
}

// FileName builds "{instrument}_{station}_{YYYYMMDD-HHMMSS}_sonde_woest_{version}.nc"
// with the station name lower-cased.
func FileName(instrument, station string, release time.Time, version string) string {
	return fmt.Sprintf("%s_%s_%s_sonde_woest_%s.nc",
		instrument, strings.ToLower(station), release.Format("20060102-150405"), version)
}

// Load writes p and returns the path of the new file. A partially written
// file is removed when any step fails.
func (w *Writer) Load(ctx context.Context, p *domain.Profile) (path string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Len() == 0 {
		return "", domain.ErrEmptyTable
	}

	// Everything that can fail on bad input runs before the file exists.
	globals, err := globalAttributes(p, w.attribution, w.productVersion, clock.Now())
	if err != nil {
		return "", err
	}
	vars := append(temporalSeries(p.Times), geophysicalSeries(p)...)
	h, err := buildHeader(p.Len(), globals, vars)
	if err != nil {
		return "", err
	}

	out := filepath.Join(w.dir, FileName(p.Station.InstrumentName, p.StationName, p.Release, w.productVersion))
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", out, cerr)
		}
		if err != nil {
			path = ""
			if rerr := os.Remove(out); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				w.logger.Warn("remove partial output failed", "file", out, "error", rerr)
			}
		}
	}()

	nc, err := cdf.Create(f, h)
	if err != nil {
		return "", fmt.Errorf("write header %s: %w", out, err)
	}
	for _, s := range vars {
		if err := writeSeries(nc, s, p.Len()); err != nil {
			return "", err
		}
	}

	w.logger.Debug("netcdf written", "file", out, "rows", p.Len())
	return out, nil
}

// writeSeries fills one fixed-size variable. The cdf strider reports io.EOF
// once the last element of the variable is written.
func writeSeries(nc *cdf.File, s series, rows int) error {
	if len(s.data) != rows {
		return fmt.Errorf("write variable %s: %d values for %d rows", s.name, len(s.data), rows)
	}
	n, err := nc.Writer(s.name, nil, nil).Write(s.kind.typed(s.data))
	if errors.Is(err, io.EOF) && n == rows {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("write variable %s: %w", s.name, err)
	}
	if n != rows {
		return fmt.Errorf("write variable %s: wrote %d of %d values", s.name, n, rows)
	}
	return nil
}

// buildHeader defines the fixed time dimension, every variable and all
// attributes. The cdf package panics on malformed definitions; those are
// returned as errors.
func buildHeader(rows int, globals []attribute, vars []series) (h *cdf.Header, err error) {
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("define netcdf header: %v", r)
		}
	}()

	h = cdf.NewHeader([]string{timeDim}, []int{rows})
	for _, a := range globals {
		h.AddAttribute("", a.name, a.value)
	}
	for _, s := range vars {
		h.AddVariable(s.name, []string{timeDim}, s.kind.zero())
		for _, a := range variableAttributes(s) {
			h.AddAttribute(s.name, a.name, a.value)
		}
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return nil, fmt.Errorf("define netcdf header: %w", errors.Join(errs...))
	}
	return h, nil
}
