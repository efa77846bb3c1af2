package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultStations are the WOEST station subdirectories converted by a batch run.
var DefaultStations = []string{"Ash_Farm", "Chilbolton", "Larkhill", "Reading", "Spire_View"}

// Config holds all converter settings, populated from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// Batch discovery.
	Stations    []string
	FilePattern string
	Workers     int

	ProductVersion string

	// MetricsFile is a node-exporter textfile path; empty disables the flush.
	MetricsFile string

	// AttributionFile is an optional TOML file overriding Attribution defaults.
	AttributionFile string
	Attribution     Attribution
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	workers, err := parseWorkers(sharedcfg.EnvOrDefault("SONDE_WORKERS", "4"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		Stations:        parseList(sharedcfg.EnvOrDefault("SONDE_STATIONS", strings.Join(DefaultStations, ","))),
		FilePattern:     sharedcfg.EnvOrDefault("SONDE_FILE_PATTERN", "edt1sdataforv217*.txt"),
		Workers:         workers,
		ProductVersion:  sharedcfg.EnvOrDefault("SONDE_PRODUCT_VERSION", "v0.1"),
		MetricsFile:     sharedcfg.EnvOrDefault("SONDE_METRICS_FILE", ""),
		AttributionFile: sharedcfg.EnvOrDefault("SONDE_ATTRIBUTION_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attr, err := LoadAttribution(cfg.AttributionFile)
	if err != nil {
		return nil, err
	}
	cfg.Attribution = attr

	return cfg, nil
}

// Validate checks settings that flags may have overridden after Load.
func (c *Config) Validate() error {
	if len(c.Stations) == 0 {
		return errors.New("SONDE_STATIONS must name at least one station")
	}
	if c.FilePattern == "" {
		return errors.New("SONDE_FILE_PATTERN is required")
	}
	if c.Workers < 1 || c.Workers > 256 {
		return fmt.Errorf("invalid SONDE_WORKERS %d: must be between 1 and 256", c.Workers)
	}
	if c.ProductVersion == "" {
		return errors.New("SONDE_PRODUCT_VERSION is required")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be json or text", c.LogFormat)
	}
	return nil
}

func parseWorkers(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SONDE_WORKERS %q: %w", s, err)
	}
	return n, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
