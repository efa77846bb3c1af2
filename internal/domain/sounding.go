package domain

import (
	"fmt"
	"time"
)

// RawSounding is the decoded text of one EDT file.
type RawSounding struct {
	Path  string
	Lines []string
}

// Sounding is an ascent after header and table parsing.
type Sounding struct {
	Path     string
	Metadata *Metadata
	Units    []string
	Table    Table
}

// StationName returns the "Station name" header value.
func (s Sounding) StationName() (string, error) {
	return s.Metadata.Require(KeyStationName)
}

// Profile is the canonical ascent consumed by the NetCDF writer.
type Profile struct {
	Metadata *Metadata
	Station  StationProfile
	Table    Table

	StationName string
	Release     time.Time
	// Times holds the absolute UTC timestamp of every row.
	Times        []time.Time
	TemperatureK []float64
	Elapsed      []float64
	// ElapsedRecomputed is set when the source had no elapsed time column.
	ElapsedRecomputed bool
	// SamplingInterval is the whole-second spacing of the first two rows.
	SamplingInterval int
	GeospatialBounds string
}

// Len returns the number of rows.
func (p *Profile) Len() int { return len(p.Times) }

// ParseSounding runs the header parser and tabular reader over a raw file.
func ParseSounding(raw RawSounding) (Sounding, error) {
	h, err := ParseHeader(raw.Lines)
	if err != nil {
		return Sounding{}, fmt.Errorf("parse header: %w", err)
	}
	h.Metadata.SetFileNameKeys(raw.Path)

	table, err := ReadTable(raw.Lines, h)
	if err != nil {
		return Sounding{}, fmt.Errorf("read table: %w", err)
	}

	return Sounding{
		Path:     raw.Path,
		Metadata: h.Metadata,
		Units:    h.Units,
		Table:    table,
	}, nil
}
