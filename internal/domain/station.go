package domain

import "strings"

const (
	// DefaultDataSource is the source attribute for MW41 systems without a
	// dedicated description.
	DefaultDataSource = "Vaisala MW41 sounding system"

	unknownInstrumentPrefix = "radiosonde-"
)

// StationProfile describes who owns and runs the sounding system at a site.
type StationProfile struct {
	SystemOwner    string
	SystemOperator string
	InstrumentName string
	DataSource     string
}

var stations = map[string]StationProfile{
	"AshFarm": {
		SystemOwner:    "Atmospheric Measurement and Observation Facility",
		SystemOperator: "University of Leeds",
		InstrumentName: "ncas-radiosonde-1",
		DataSource:     "NCAS Vaisala Sounding Station unit 1",
	},
	"Chilbolton": {
		SystemOwner:    "Met Office",
		SystemOperator: "Met Office",
		InstrumentName: "ukmo-radiosonde",
		DataSource:     DefaultDataSource,
	},
	"LAR_A": {
		SystemOwner:    "Met Office",
		SystemOperator: "Met Office",
		InstrumentName: "ukmo-radiosonde",
		DataSource:     DefaultDataSource,
	},
	"Larkhill_B": {
		SystemOwner:    "Met Office",
		SystemOperator: "Met Office",
		InstrumentName: "ukmo-radiosonde",
		DataSource:     DefaultDataSource,
	},
	"Reading": {
		SystemOwner:    "University of Reading",
		SystemOperator: "University of Reading",
		InstrumentName: "uor-radiosonde",
		DataSource:     DefaultDataSource,
	},
	"SpireView": {
		SystemOwner:    "Met Office",
		SystemOperator: "Met Office",
		InstrumentName: "ukmo-radiosonde",
		DataSource:     DefaultDataSource,
	},
}

// LookupStation returns the profile registered for a station name. Unknown
// stations get empty owner/operator and a placeholder instrument name so new
// sites in the feed still convert.
func LookupStation(name string) StationProfile {
	if p, ok := stations[name]; ok {
		return p
	}
	return StationProfile{
		InstrumentName: unknownInstrumentPrefix + strings.ToLower(name),
		DataSource:     DefaultDataSource,
	}
}

// KnownStations returns the registered station names.
func KnownStations() []string {
	out := make([]string, 0, len(stations))
	for name := range stations {
		out = append(out, name)
	}
	return out
}
