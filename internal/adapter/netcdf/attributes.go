package netcdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/gapintheclouds/woest-sondes/internal/config"
	"github.com/gapintheclouds/woest-sondes/internal/domain"
)

// TimestampLayout formats coverage and processing timestamps.
const TimestampLayout = "2006-01-02T15:04:05"

type attribute struct {
	name  string
	value interface{} // string, []int32, []float32 or []float64
}

// globalAttributes returns the NCAS AMF file-scope attributes in write order.
func globalAttributes(p *domain.Profile, attr config.Attribution, productVersion string, now time.Time) ([]attribute, error) {
	meta := p.Metadata
	sondeType, err := meta.Require(domain.KeySondeType)
	if err != nil {
		return nil, err
	}
	sondeSoftware, err := meta.Require(domain.KeySondeSoftware)
	if err != nil {
		return nil, err
	}
	serial, err := meta.Require(domain.KeySondeSerial)
	if err != nil {
		return nil, err
	}
	softwareVersion, err := meta.Require(domain.KeySoftwareVersion)
	if err != nil {
		return nil, err
	}
	elevation, err := meta.Require(domain.KeyReleaseElevation)
	if err != nil {
		return nil, err
	}
	software, version := splitSoftware(softwareVersion)
	interval := IntervalString(p.SamplingInterval)
	stamp := now.UTC().Format(TimestampLayout)

	return []attribute{
		{"Conventions", attr.Conventions},
		{"source", p.Station.DataSource},
		{"instrument_manufacturer", attr.InstrumentManufacturer},
		{"instrument_model", sondeType + " (software v" + sondeSoftware + ")"},
		{"instrument_serial_number", serial},
		{"instrument_software", software},
		{"instrument_software_version", version},
		{"creator_name", attr.CreatorName},
		{"creator_email", attr.CreatorEmail},
		{"creator_url", attr.CreatorURL},
		{"institution", attr.Institution},
		{"processing_software_url", attr.ProcessingSoftwareURL},
		{"processing_software_version", attr.ProcessingSoftwareVersion},
		{"calibration_sensitivity", "Not Applicable"},
		{"calibration_certification_date", "N/A"},
		{"calibration_certification_url", "N/A"},
		{"sampling_interval", interval},
		{"averaging_interval", interval},
		{"product_version", productVersion},
		{"processing_level", []int32{1}},
		{"last_revised_date", stamp},
		{"project", attr.Project},
		{"project_principal_investigator", attr.ProjectPrincipalInvestigator},
		{"project_principal_investigator_email", attr.ProjectPrincipalInvestigatorEmail},
		{"project_principal_investigator_url", attr.ProjectPrincipalInvestigatorURL},
		{"licence", attr.Licence},
		{"acknowledgement", attr.Acknowledgement},
		{"platform", "Launch location: " + p.StationName},
		{"platform_type", "moving_platform"},
		{"deployment_mode", "trajectory"},
		{"title", "Radiosonde ascent"},
		{"featureType", "timeSeriesProfile"},
		{"time_coverage_start", p.Times[0].Format(TimestampLayout)},
		{"time_coverage_end", p.Times[len(p.Times)-1].Format(TimestampLayout)},
		{"geospatial_bounds", p.GeospatialBounds},
		{"platform_altitude", elevation},
		{"location_keywords", p.StationName},
		{"amf_vocabularies_release", attr.AMFVocabulariesRelease},
		{"history", stamp + " - Initial processing. Flags not implemented yet."},
		{"comment", fmt.Sprintf("Instrument owner: %s, Instrument operator: %s",
			p.Station.SystemOwner, p.Station.SystemOperator)},
	}, nil
}

// variableAttributes returns the per-variable attributes in write order.
func variableAttributes(s series) []attribute {
	var out []attribute
	if s.geophysical {
		out = append(out, attribute{"_FillValue", []float32{FillValue}})
	}
	out = append(out,
		attribute{"type", s.kind.String()},
		attribute{"dimension", timeDim},
		attribute{"units", s.units},
		attribute{"standard_name", s.standardName},
		attribute{"long_name", s.longName},
	)
	if s.axis != "" {
		out = append(out, attribute{"axis", s.axis})
	}
	out = append(out,
		attribute{"valid_min", s.kind.scalar(s.min)},
		attribute{"valid_max", s.kind.scalar(s.max)},
	)
	if s.calendar != "" {
		out = append(out, attribute{"calendar", s.calendar})
	}
	if s.point {
		out = append(out, attribute{"cell_methods", pointCellMethods})
	}
	if s.coordinates {
		out = append(out, attribute{"coordinates", coordinatesAttr})
	}
	return out
}

// scalar wraps v as a one-element attribute of the variable's own type.
func (k kind) scalar(v float64) interface{} {
	switch k {
	case kindDouble:
		return []float64{v}
	case kindInt:
		return []int32{int32(v)}
	default:
		return []float32{float32(v)}
	}
}

// IntervalString renders a whole-second interval as "1 second" or "N seconds".
func IntervalString(seconds int) string {
	if seconds == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", seconds)
}

// splitSoftware splits "MW41 2.17.0" into product and version. A value
// without a space has an empty version.
func splitSoftware(s string) (string, string) {
	fields := strings.Split(s, " ")
	if len(fields) < 2 {
		return fields[0], ""
	}
	return fields[0], fields[1]
}
