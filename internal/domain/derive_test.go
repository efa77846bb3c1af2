package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSounding(t *testing.T, path string, lines []string) Sounding {
	t.Helper()
	s, err := ParseSounding(RawSounding{Path: path, Lines: lines})
	require.NoError(t, err)
	return s
}

func TestDeriveProfile_ReadingRecomputesElapsed(t *testing.T) {
	s := parseSounding(t, "Reading/edt1sdataforv217_20231010_112200.txt", readingLines())

	p, err := DeriveProfile(s, LookupStation("Reading"))
	require.NoError(t, err)

	assert.Equal(t, "Reading", p.StationName)
	assert.Equal(t, time.Date(2023, 10, 10, 11, 22, 0, 0, time.UTC), p.Release)
	assert.Equal(t, []time.Time{
		time.Date(2023, 10, 10, 11, 22, 0, 0, time.UTC),
		time.Date(2023, 10, 10, 11, 22, 10, 0, time.UTC),
		time.Date(2023, 10, 10, 11, 22, 20, 0, time.UTC),
	}, p.Times)
	assert.True(t, p.ElapsedRecomputed)
	assert.Equal(t, []float64{0, 10, 20}, p.Elapsed)
	assert.Equal(t, 10, p.SamplingInterval)
	assert.Equal(t, "51.100000N 1.500000W, 51.400000N 1.200000W", p.GeospatialBounds)
	assert.Equal(t, "uor-radiosonde", p.Station.InstrumentName)

	date, _ := p.Metadata.Get(KeyFileDate)
	clock, _ := p.Metadata.Get(KeyFileTime)
	assert.Equal(t, "20231010", date)
	assert.Equal(t, "112200", clock)
}

func TestDeriveProfile_UsesElapsedColumnWhenPresent(t *testing.T) {
	s := parseSounding(t, "edt.txt", elapsedLines(
		elapsedRow("0.5", "09:00:00", "20.0"),
		elapsedRow("1.5", "09:00:01", "19.0"),
	))

	p, err := DeriveProfile(s, LookupStation("AshFarm"))
	require.NoError(t, err)

	assert.False(t, p.ElapsedRecomputed)
	assert.Equal(t, []float64{0.5, 1.5}, p.Elapsed)
	assert.Equal(t, 1, p.SamplingInterval)
}

func TestDeriveProfile_KelvinPropagatesNaN(t *testing.T) {
	s := parseSounding(t, "edt.txt", elapsedLines(
		elapsedRow("0", "09:00:00", "-40.0"),
		elapsedRow("1", "09:00:01", "//////"),
		elapsedRow("2", "09:00:02", "0"),
	))

	p, err := DeriveProfile(s, LookupStation("AshFarm"))
	require.NoError(t, err)

	want := []float64{233.15, math.NaN(), 273.15}
	if diff := cmp.Diff(want, p.TemperatureK, cmpopts.EquateNaNs(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("TemperatureK mismatch (-want +got):\n%s", diff)
	}
}

func TestToKelvin(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{in: 0, want: 273.15},
		{in: 25, want: 298.15},
		{in: -273.15, want: 0},
		{in: math.Inf(1), want: math.Inf(1)},
	}
	for _, tc := range cases {
		got := toKelvin([]float64{tc.in})
		assert.InDelta(t, tc.want, got[0], 1e-9)
	}
	assert.True(t, math.IsNaN(toKelvin([]float64{math.NaN()})[0]))
}

func TestDeriveProfile_GeospatialBoundsIgnoresNaN(t *testing.T) {
	assert.Equal(t,
		"51.100000N 1.500000W, 51.400000N 1.200000W",
		geospatialBounds([]float64{51.4, math.NaN(), 51.1}, []float64{-1.2, -1.5, math.NaN()}))
	assert.Equal(t,
		"33.900000S 18.400000E, 0.000000N 151.200000E",
		geospatialBounds([]float64{-33.9, 0}, []float64{151.2, 18.4}))
	assert.Empty(t, geospatialBounds([]float64{math.NaN()}, []float64{1}))
}

func TestDeriveProfile_SingleRowHasZeroInterval(t *testing.T) {
	s := parseSounding(t, "edt.txt", elapsedLines(elapsedRow("0", "09:00:00", "20.0")))

	p, err := DeriveProfile(s, LookupStation("AshFarm"))
	require.NoError(t, err)
	assert.Equal(t, 0, p.SamplingInterval)
}

func TestDeriveProfile_Errors(t *testing.T) {
	t.Run("missing station name", func(t *testing.T) {
		lines := readingLines()
		lines[3] = "Station\tReading"
		s := parseSounding(t, "edt.txt", lines)

		_, err := DeriveProfile(s, StationProfile{})

		var fieldErr *MissingFieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, KeyStationName, fieldErr.Field)
	})

	t.Run("missing release time", func(t *testing.T) {
		lines := readingLines()
		lines[4] = ""
		s := parseSounding(t, "edt.txt", lines)

		_, err := DeriveProfile(s, StationProfile{})

		var fieldErr *MissingFieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, KeyReleaseTime, fieldErr.Field)
	})

	t.Run("unparsable release time", func(t *testing.T) {
		lines := readingLines()
		lines[4] = "Balloon release date and time\t10/10/2023 11:22"
		s := parseSounding(t, "edt.txt", lines)

		_, err := DeriveProfile(s, StationProfile{})
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("unparsable row time", func(t *testing.T) {
		lines := append(readingLines(), "25:99:00\t999\t13\t80\t3\t255\t90\t91\t51.4\t-1.2\t5")
		s := parseSounding(t, "edt.txt", lines)

		_, err := DeriveProfile(s, StationProfile{})
		require.ErrorIs(t, err, ErrInvalidTimestamp)
		assert.Contains(t, err.Error(), "row 3")
	})

	t.Run("empty table", func(t *testing.T) {
		s := parseSounding(t, "edt.txt", readingHeader)

		_, err := DeriveProfile(s, StationProfile{})
		assert.ErrorIs(t, err, ErrEmptyTable)
	})
}

func TestBounds(t *testing.T) {
	lo, hi, ok := Bounds([]float64{math.NaN(), 3, -2, math.NaN(), 7})
	require.True(t, ok)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 7.0, hi)

	_, _, ok = Bounds([]float64{math.NaN()})
	assert.False(t, ok)

	_, _, ok = Bounds(nil)
	assert.False(t, ok)
}
