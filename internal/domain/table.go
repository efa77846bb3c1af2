package domain

import (
	"math"
	"strconv"
	"strings"
)

// Canonical column names of a Table.
const (
	ColTimeUTC     = "TimeUTC"
	ColHeight      = "Height"
	ColHumidity    = "Humidity"
	ColLatitude    = "Latitude"
	ColLongitude   = "Longitude"
	ColPressure    = "Pressure"
	ColTemperature = "Temperature"
	ColWindDir     = "WindDir"
	ColWindSpeed   = "WindSpeed"

	// Kept under their vendor names.
	ColElapsed    = "Elapsed time"
	ColGPSHeight  = "GpsHeightMSL"
	ColAscentRate = "AscRate"
)

type columnSpec struct {
	source   string
	name     string
	optional bool
}

// tableColumns is the projection applied to the vendor columns. The first
// eight entries are renamed; the rest keep their vendor names.
var tableColumns = []columnSpec{
	{source: "HeightMSL", name: ColHeight, optional: true},
	{source: "RH", name: ColHumidity},
	{source: "Lat", name: ColLatitude},
	{source: "Lon", name: ColLongitude},
	{source: "P", name: ColPressure},
	{source: "Temp", name: ColTemperature},
	{source: "Dir", name: ColWindDir},
	{source: "Speed", name: ColWindSpeed},
	{source: ColElapsed, name: ColElapsed, optional: true},
	{source: ColGPSHeight, name: ColGPSHeight},
	{source: ColAscentRate, name: ColAscentRate},
}

// ColumnRenames returns the vendor -> canonical rename map.
func ColumnRenames() map[string]string {
	out := make(map[string]string)
	for _, c := range tableColumns {
		if c.source != c.name {
			out[c.source] = c.name
		}
	}
	return out
}

// ProjectedColumns returns the canonical names of every projected column.
func ProjectedColumns() []string {
	out := make([]string, len(tableColumns))
	for i, c := range tableColumns {
		out[i] = c.name
	}
	return out
}

// Table is the measurement table of one ascent, stored column-wise.
// Every column has the same length as TimeUTC.
type Table struct {
	TimeUTC []string
	columns map[string][]float64
	// Dropped counts rows discarded for an empty time-of-day token.
	Dropped int
}

// NewTable builds a Table from already parsed columns. It is used by tests
// and fixture tooling; ReadTable is the parsing entry point.
func NewTable(timeUTC []string, columns map[string][]float64) Table {
	return Table{TimeUTC: timeUTC, columns: columns}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.TimeUTC) }

// Has reports whether the column was present in the source file.
func (t Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the values of a canonical column, or nil if absent.
func (t Table) Column(name string) []float64 { return t.columns[name] }

// ReadTable parses the tab-delimited table that follows the header. The line
// at h.Skip holds the column names, the next line the units; every later line
// is a data row.
func ReadTable(lines []string, h Header) (Table, error) {
	if h.Skip >= len(lines) {
		return Table{}, ErrMalformedHeader
	}

	index := make(map[string]int)
	for i, name := range splitTrimmed(lines[h.Skip]) {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	timeIdx, ok := index[ColTimeUTC]
	if !ok {
		return Table{}, &MissingColumnError{Column: ColTimeUTC}
	}

	type projection struct {
		name string
		idx  int
	}
	var projected []projection
	for _, c := range tableColumns {
		idx, ok := index[c.source]
		if !ok {
			if c.optional {
				continue
			}
			return Table{}, &MissingColumnError{Column: c.source}
		}
		projected = append(projected, projection{name: c.name, idx: idx})
	}

	t := Table{columns: make(map[string][]float64, len(projected))}
	for _, p := range projected {
		t.columns[p.name] = []float64{}
	}

	start := h.DataStart()
	if start > len(lines) {
		start = len(lines)
	}
	for _, line := range lines[start:] {
		fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
		tod := strings.TrimSpace(field(fields, timeIdx))
		if tod == "" {
			t.Dropped++
			continue
		}
		t.TimeUTC = append(t.TimeUTC, tod)
		for _, p := range projected {
			t.columns[p.name] = append(t.columns[p.name], parseFloatOrNaN(field(fields, p.idx)))
		}
	}
	return t, nil
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parseFloatOrNaN parses a numeric token, returning NaN for missing or
// corrupt tokens such as "//////".
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
