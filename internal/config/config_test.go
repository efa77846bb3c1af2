package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DefaultStations, cfg.Stations)
	assert.Equal(t, "edt1sdataforv217*.txt", cfg.FilePattern)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "v0.1", cfg.ProductVersion)
	assert.Empty(t, cfg.MetricsFile)
	assert.Empty(t, cfg.AttributionFile)
	assert.Equal(t, DefaultAttribution(), cfg.Attribution)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SONDE_STATIONS", "Reading, Chilbolton ,")
	t.Setenv("SONDE_FILE_PATTERN", "*.txt")
	t.Setenv("SONDE_WORKERS", "8")
	t.Setenv("SONDE_PRODUCT_VERSION", "v1.0")
	t.Setenv("SONDE_METRICS_FILE", "/var/lib/node_exporter/sondes.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"Reading", "Chilbolton"}, cfg.Stations)
	assert.Equal(t, "*.txt", cfg.FilePattern)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "v1.0", cfg.ProductVersion)
	assert.Equal(t, "/var/lib/node_exporter/sondes.prom", cfg.MetricsFile)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	for _, v := range []string{"many", "0", "1000"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SONDE_WORKERS", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SONDE_WORKERS")
		})
	}
}

func TestLoad_EmptyStations(t *testing.T) {
	t.Setenv("SONDE_STATIONS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SONDE_STATIONS")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_AttributionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attribution.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
creator_name = "Dr Test Creator"
project = "Test Campaign"
`), 0o600))
	t.Setenv("SONDE_ATTRIBUTION_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Dr Test Creator", cfg.Attribution.CreatorName)
	assert.Equal(t, "Test Campaign", cfg.Attribution.Project)
	assert.Equal(t, DefaultAttribution().Licence, cfg.Attribution.Licence)
}

func TestLoad_MissingAttributionFile(t *testing.T) {
	t.Setenv("SONDE_ATTRIBUTION_FILE", filepath.Join(t.TempDir(), "absent.toml"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load attribution")
}

func TestLoadAttribution_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("creator_name = "), 0o600))

	_, err := LoadAttribution(path)
	require.Error(t, err)
}
