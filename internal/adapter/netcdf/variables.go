package netcdf

import (
	"math"
	"time"

	"github.com/gapintheclouds/woest-sondes/internal/domain"
)

// FillValue replaces NaN samples in every geophysical variable.
const FillValue = -1.0e20

const (
	timeDim          = "time"
	timeUnits        = "seconds since 1970-01-01 00:00:00"
	pointCellMethods = "time: point"
	coordinatesAttr  = "latitude longitude altitude"
)

type kind int

const (
	kindDouble kind = iota
	kindFloat
	kindInt
)

func (k kind) String() string {
	switch k {
	case kindDouble:
		return "double"
	case kindInt:
		return "int"
	default:
		return "float"
	}
}

// zero returns the slice whose dynamic type selects the NetCDF type.
func (k kind) zero() interface{} {
	switch k {
	case kindDouble:
		return []float64{0}
	case kindInt:
		return []int32{0}
	default:
		return []float32{0}
	}
}

// series is one variable along the time dimension.
type series struct {
	name         string
	kind         kind
	units        string
	standardName string
	longName     string
	axis         string
	calendar     string

	data     []float64
	min, max float64

	// Geophysical series carry _FillValue.
	geophysical bool
	point       bool
	coordinates bool
}

// temporalSeries builds time and its calendar components. time, day_of_year
// and year take their bounds from the first and last rows; the remaining
// components declare their full calendar range.
func temporalSeries(times []time.Time) []series {
	n := len(times)
	epoch := make([]float64, n)
	doy := make([]float64, n)
	year := make([]float64, n)
	month := make([]float64, n)
	day := make([]float64, n)
	hour := make([]float64, n)
	minute := make([]float64, n)
	second := make([]float64, n)
	for i, t := range times {
		epoch[i] = float64(t.Unix())
		doy[i] = dayOfYear(t)
		year[i] = float64(t.Year())
		month[i] = float64(t.Month())
		day[i] = float64(t.Day())
		hour[i] = float64(t.Hour())
		minute[i] = float64(t.Minute())
		second[i] = float64(t.Second()) + float64(t.Nanosecond())/1e9
	}

	last := n - 1
	out := []series{
		{name: "time", kind: kindDouble, units: timeUnits, standardName: "time",
			longName: "Time (seconds since 1970-01-01 00:00:00)", axis: "T", calendar: "standard",
			data: epoch, min: epoch[0], max: epoch[last]},
		{name: "day_of_year", kind: kindFloat, units: "1", longName: "Day of Year",
			data: doy, min: doy[0], max: doy[last]},
		{name: "year", kind: kindInt, units: "1", longName: "Year",
			data: year, min: year[0], max: year[last]},
		calendarSeries("month", "Month", kindInt, month, 1, 12),
		calendarSeries("day", "Day", kindInt, day, 1, 31),
		calendarSeries("hour", "Hour", kindInt, hour, 0, 23),
		calendarSeries("minute", "Minute", kindInt, minute, 0, 59),
		calendarSeries("second", "Second", kindFloat, second, 0, 59.99999),
	}
	return out
}

func calendarSeries(name, longName string, k kind, data []float64, lo, hi float64) series {
	return series{name: name, kind: k, units: "1", longName: longName, data: data, min: lo, max: hi}
}

// dayOfYear is fractional: 1.0 is midnight on 1 January.
func dayOfYear(t time.Time) float64 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return float64(t.YearDay()) + t.Sub(midnight).Seconds()/86400
}

// geophysicalSeries maps profile columns onto the AMF sonde variables.
// Altitude comes from the GPS height. The position variables are point
// samples without coordinates; elapsed_time is neither.
func geophysicalSeries(p *domain.Profile) []series {
	cols := []struct {
		name, units, standardName, longName, axis string
		data                                      []float64
		point, coordinates                        bool
	}{
		{"altitude", "m", "altitude", "Geometric height above geoid (WGS 84).", "Z", p.Table.Column(domain.ColGPSHeight), true, false},
		{"latitude", "degrees_north", "latitude", "Latitude", "Y", p.Table.Column(domain.ColLatitude), true, false},
		{"longitude", "degrees_east", "longitude", "Longitude", "X", p.Table.Column(domain.ColLongitude), true, false},
		{"air_pressure", "hPa", "air_pressure", "Air Pressure", "", p.Table.Column(domain.ColPressure), true, true},
		{"air_temperature", "K", "air_temperature", "AirTemperature", "", p.TemperatureK, true, true},
		{"relative_humidity", "%", "relative_humidity", "Relative Humidity", "", p.Table.Column(domain.ColHumidity), true, true},
		{"wind_speed", "m s-1", "wind_speed", "Wind Speed", "", p.Table.Column(domain.ColWindSpeed), true, true},
		{"wind_from_direction", "degree", "wind_from_direction", "Wind From Direction", "", p.Table.Column(domain.ColWindDir), true, true},
		{"upward_balloon_velocity", "m s-1", "", "Balloon Ascent Rate", "", p.Table.Column(domain.ColAscentRate), true, true},
		{"elapsed_time", "s", "", "Elapsed Time", "", p.Elapsed, false, false},
	}

	out := make([]series, 0, len(cols))
	for _, c := range cols {
		lo, hi, ok := domain.Bounds(c.data)
		if !ok {
			lo, hi = FillValue, FillValue
		}
		out = append(out, series{
			name:         c.name,
			kind:         kindFloat,
			units:        c.units,
			standardName: c.standardName,
			longName:     c.longName,
			axis:         c.axis,
			data:         c.data,
			min:          lo,
			max:          hi,
			geophysical:  true,
			point:        c.point,
			coordinates:  c.coordinates,
		})
	}
	return out
}

// typed converts values to the slice type NetCDF stores for k. NaN becomes
// FillValue, so bounds must already have been taken.
func (k kind) typed(values []float64) interface{} {
	switch k {
	case kindDouble:
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = fillNaN(v)
		}
		return out
	case kindInt:
		out := make([]int32, len(values))
		for i, v := range values {
			out[i] = int32(v)
		}
		return out
	default:
		out := make([]float32, len(values))
		for i, v := range values {
			out[i] = float32(fillNaN(v))
		}
		return out
	}
}

func fillNaN(v float64) float64 {
	if math.IsNaN(v) {
		return FillValue
	}
	return v
}
