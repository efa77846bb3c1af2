package pipeline

import (
	"context"
	"log/slog"

	"github.com/gapintheclouds/woest-sondes/internal/domain"
)

// SondeTransformer implements Transformer with the domain header parser,
// tabular reader, station registry and derived-field calculator.
type SondeTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a SondeTransformer.
func NewTransformer(logger *slog.Logger) *SondeTransformer {
	return &SondeTransformer{logger: logger}
}

func (t *SondeTransformer) Transform(ctx context.Context, raw domain.RawSounding) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := domain.ParseSounding(raw)
	if err != nil {
		return nil, err
	}
	name, err := s.StationName()
	if err != nil {
		return nil, err
	}

	profile, err := domain.DeriveProfile(s, domain.LookupStation(name))
	if err != nil {
		return nil, err
	}

	if profile.ElapsedRecomputed {
		t.logger.Debug("elapsed time recomputed from timestamps", "file", raw.Path, "station", name)
	}
	if profile.Table.Dropped > 0 {
		t.logger.Info("rows without time dropped", "file", raw.Path, "dropped_rows", profile.Table.Dropped)
	}
	return profile, nil
}
