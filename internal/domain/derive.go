package domain

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	// ReleaseLayout is the layout of the "Balloon release date and time" value.
	ReleaseLayout = "2006-01-02T15:04:05"

	timeOfDayLayout = "15:04:05"
	celsiusToKelvin = 273.15
)

// DeriveProfile builds the canonical profile: absolute timestamps, Kelvin
// temperatures, elapsed time, sampling interval and geospatial bounds.
func DeriveProfile(s Sounding, station StationProfile) (*Profile, error) {
	name, err := s.StationName()
	if err != nil {
		return nil, err
	}
	if s.Table.Len() == 0 {
		return nil, ErrEmptyTable
	}

	releaseRaw, err := s.Metadata.Require(KeyReleaseTime)
	if err != nil {
		return nil, err
	}
	release, err := time.Parse(ReleaseLayout, releaseRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: release %q: %v", ErrInvalidTimestamp, releaseRaw, err)
	}

	times, err := absoluteTimes(release, s.Table.TimeUTC)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Metadata:         s.Metadata,
		Station:          station,
		Table:            s.Table,
		StationName:      name,
		Release:          release,
		Times:            times,
		TemperatureK:     toKelvin(s.Table.Column(ColTemperature)),
		SamplingInterval: samplingInterval(times),
		GeospatialBounds: geospatialBounds(s.Table.Column(ColLatitude), s.Table.Column(ColLongitude)),
	}

	if s.Table.Has(ColElapsed) {
		p.Elapsed = s.Table.Column(ColElapsed)
	} else {
		p.Elapsed = elapsedSince(times)
		p.ElapsedRecomputed = true
	}
	return p, nil
}

// absoluteTimes combines the release calendar date with each row's
// time-of-day. Rows are assumed to fall on the release date.
func absoluteTimes(release time.Time, timeOfDay []string) ([]time.Time, error) {
	date := release.Format("2006-01-02")
	out := make([]time.Time, len(timeOfDay))
	for i, tod := range timeOfDay {
		t, err := time.Parse(ReleaseLayout, date+"T"+tod)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d time of day %q", ErrInvalidTimestamp, i, tod)
		}
		out[i] = t
	}
	return out, nil
}

// samplingInterval returns the whole seconds between the first two rows.
// Later intervals are not checked.
func samplingInterval(times []time.Time) int {
	if len(times) < 2 {
		return 0
	}
	return int(times[1].Sub(times[0]) / time.Second)
}

func toKelvin(celsius []float64) []float64 {
	out := make([]float64, len(celsius))
	for i, c := range celsius {
		out[i] = c + celsiusToKelvin
	}
	return out
}

func elapsedSince(times []time.Time) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = t.Sub(times[0]).Seconds()
	}
	return out
}

// Bounds returns the minimum and maximum of values ignoring NaN. ok is false
// when every sample is NaN.
func Bounds(values []float64) (lo, hi float64, ok bool) {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), true
}

// geospatialBounds renders "<minLat> <minLon>, <maxLat> <maxLon>" with
// hemisphere suffixes, e.g. "51.100000N 1.500000W, 51.400000N 1.200000W".
func geospatialBounds(lat, lon []float64) string {
	latMin, latMax, okLat := Bounds(lat)
	lonMin, lonMax, okLon := Bounds(lon)
	if !okLat || !okLon {
		return ""
	}
	return fmt.Sprintf("%s %s, %s %s",
		hemisphere(latMin, "N", "S"), hemisphere(lonMin, "E", "W"),
		hemisphere(latMax, "N", "S"), hemisphere(lonMax, "E", "W"))
}

func hemisphere(v float64, pos, neg string) string {
	if v >= 0 {
		return fmt.Sprintf("%.6f%s", v, pos)
	}
	return fmt.Sprintf("%.6f%s", -v, neg)
}
