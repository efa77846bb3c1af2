package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapintheclouds/woest-sondes/internal/adapter/edt"
	"github.com/gapintheclouds/woest-sondes/internal/adapter/netcdf"
	"github.com/gapintheclouds/woest-sondes/internal/config"
	"github.com/gapintheclouds/woest-sondes/internal/domain"
	"github.com/gapintheclouds/woest-sondes/internal/pipeline"
)

const filePattern = "edt1sdataforv217*.txt"

// Latin-1 encoded, CRLF terminated, as exported by MW41 at Reading.
const readingEDT = "Sounding data\r\n" +
	"System trademark and model\tMW41\r\n" +
	"Station name\tReading\r\n" +
	"Balloon release date and time\t2023-10-10T11:22:00\r\n" +
	"Sonde type\tRS41-SGP\r\n" +
	"Sonde software version\t2.4.0\r\n" +
	"Sonde serial number\tU1234567\r\n" +
	"Software version\tMW41 2.17.0\r\n" +
	"Release point height from sea level\t66 m\r\n" +
	"\r\n" +
	" TimeUTC\tP\tTemp\tRH\tSpeed\tDir\tHeightMSL\tGpsHeightMSL\tLat\tLon\tAscRate\r\n" +
	"\thPa\t\xB0C\t%\tm/s\t\xB0\tm\tm\t\xB0\t\xB0\tm/s\r\n" +
	"11:22:00\t1002.1\t14.2\t81\t3.1\t250\t66\t67.0\t51.1\t-1.5\t0.0\r\n" +
	"11:22:10\t1000.9\t14.0\t80\t3.3\t252\t76\t77.2\t51.2\t-1.4\t5.1\r\n" +
	"  \t999.9\t13.9\t80\t3.4\t253\t81\t82.0\t51.3\t-1.3\t5.2\r\n" +
	"11:22:20\t999.7\t13.9\t80\t3.6\t255\t86\t87.9\t51.4\t-1.2\t5.3\r\n"

const ashFarmEDT = "System trademark and model\tMW41\n" +
	"Station name\tAshFarm\n" +
	"Balloon release date and time\t2023-07-01T09:00:00\n" +
	"Sonde type\tRS41-SGP\n" +
	"Sonde software version\t2.4.0\n" +
	"Sonde serial number\tU7654321\n" +
	"Software version\tMW41 2.17.0\n" +
	"Release point height from sea level\t120 m\n" +
	"Elapsed time\tTimeUTC\tP\tTemp\tRH\tSpeed\tDir\tHeightMSL\tGpsHeightMSL\tLat\tLon\tAscRate\n" +
	"s\t\thPa\t\xB0C\t%\tm/s\t\xB0\tm\tm\t\xB0\t\xB0\tm/s\n" +
	"0\t09:00:01\t990.0\t18.0\t60\t2.0\t200\t120\t121\t54.1\t-1.6\t0.0\n" +
	"1\t09:00:02\t989.9\t17.9\t60\t2.1\t201\t125\t126\t54.1\t-1.6\t5.0\n"

// Header never reaches a column row.
const truncatedEDT = "System trademark and model\tMW41\nStation name\tChilbolton\n"

func writeRaw(t *testing.T, rawDir, station, name, body string) {
	t.Helper()
	dir := filepath.Join(rawDir, station)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestDiscover_SortedPerStation(t *testing.T) {
	rawDir := t.TempDir()
	writeRaw(t, rawDir, "Reading", "edt1sdataforv217_20231011_120000.txt", "")
	writeRaw(t, rawDir, "Reading", "edt1sdataforv217_20231010_112200.txt", "")
	writeRaw(t, rawDir, "Reading", "notes.txt", "")
	writeRaw(t, rawDir, "Ash_Farm", "edt1sdataforv217_20230701_090000.txt", "")

	paths, err := pipeline.Discover(rawDir, []string{"Ash_Farm", "Castle_Cary", "Reading"}, filePattern)
	require.NoError(t, err)

	rel := make([]string, len(paths))
	for i, p := range paths {
		rel[i], err = filepath.Rel(rawDir, p)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		filepath.Join("Ash_Farm", "edt1sdataforv217_20230701_090000.txt"),
		filepath.Join("Reading", "edt1sdataforv217_20231010_112200.txt"),
		filepath.Join("Reading", "edt1sdataforv217_20231011_120000.txt"),
	}, rel)
}

func TestDiscover_BadPattern(t *testing.T) {
	_, err := pipeline.Discover(t.TempDir(), []string{"Reading"}, "[")
	require.Error(t, err)
}

func TestPipeline_ConvertsRawDirectory(t *testing.T) {
	rawDir, outDir := t.TempDir(), t.TempDir()
	writeRaw(t, rawDir, "Reading", "edt1sdataforv217_20231010_112200.txt", readingEDT)
	writeRaw(t, rawDir, "Ash_Farm", "edt1sdataforv217_20230701_090000.txt", ashFarmEDT)
	writeRaw(t, rawDir, "Chilbolton", "edt1sdataforv217_20230702_100000.txt", truncatedEDT)

	paths, err := pipeline.Discover(rawDir, []string{"Ash_Farm", "Chilbolton", "Reading"}, filePattern)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ProductVersion: "v0.1", Attribution: config.DefaultAttribution()}
	p := pipeline.New(
		edt.NewReader(logger),
		pipeline.NewTransformer(logger),
		netcdf.NewWriter(cfg, outDir, logger),
		logger,
		newTestMetrics(),
		2,
	)

	sum, err := p.Run(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, sum.Outputs, 2)
	assert.Equal(t, "ncas-radiosonde-1_ashfarm_20230701-090000_sonde_woest_v0.1.nc", filepath.Base(sum.Outputs[0]))
	assert.Equal(t, "uor-radiosonde_reading_20231010-112200_sonde_woest_v0.1.nc", filepath.Base(sum.Outputs[1]))

	require.Len(t, sum.Failures, 1)
	assert.True(t, strings.HasSuffix(sum.Failures[0].Path, "edt1sdataforv217_20230702_100000.txt"))
	assert.Equal(t, pipeline.StageTransform, sum.Failures[0].Stage)
	require.ErrorIs(t, sum.Failures[0], domain.ErrMalformedHeader)

	f, err := os.Open(sum.Outputs[1])
	require.NoError(t, err)
	defer f.Close()
	nc, err := cdf.Open(f)
	require.NoError(t, err)

	// The blank-time row is dropped, leaving 0/10/20.
	assert.Equal(t, []int{3}, nc.Header.Lengths("elapsed_time"))
	elapsed := make([]float32, 3)
	_, err = nc.Reader("elapsed_time", nil, nil).Read(elapsed)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 10, 20}, elapsed)
	assert.Equal(t, "10 seconds", nc.Header.GetAttribute("", "sampling_interval"))
}
