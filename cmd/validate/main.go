// Command validate checks converted sonde NetCDF files: file naming, the
// NCAS AMF global attribute set, the per-variable schema, and that fill
// values and valid_min/valid_max agree with the stored data.
//
// Usage:
//
//	go run ./cmd/validate -dir data/netcdf
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ctessum/cdf"

	"github.com/gapintheclouds/woest-sondes/internal/adapter/netcdf"
)

var fileNamePattern = regexp.MustCompile(`^([a-z0-9-]+)_([a-z0-9_]+)_(\d{8}-\d{6})_sonde_woest_(v[0-9.]+)\.nc$`)

var requiredGlobals = []string{
	"Conventions", "source", "instrument_manufacturer", "instrument_model",
	"instrument_serial_number", "instrument_software", "instrument_software_version",
	"creator_name", "creator_email", "creator_url", "institution",
	"processing_software_url", "processing_software_version",
	"calibration_sensitivity", "calibration_certification_date", "calibration_certification_url",
	"sampling_interval", "averaging_interval", "product_version", "processing_level",
	"last_revised_date", "project", "project_principal_investigator",
	"project_principal_investigator_email", "project_principal_investigator_url",
	"licence", "acknowledgement", "platform", "platform_type", "deployment_mode", "title",
	"featureType", "time_coverage_start", "time_coverage_end", "geospatial_bounds",
	"platform_altitude", "location_keywords", "amf_vocabularies_release", "history", "comment",
}

// varSpec is the expected shape of one variable.
type varSpec struct {
	name        string
	typ         string
	geophysical bool
	point       bool
	coordinates bool
}

var variables = []varSpec{
	{name: "time", typ: "double"},
	{name: "day_of_year", typ: "float"},
	{name: "year", typ: "int"},
	{name: "month", typ: "int"},
	{name: "day", typ: "int"},
	{name: "hour", typ: "int"},
	{name: "minute", typ: "int"},
	{name: "second", typ: "float"},
	{name: "altitude", typ: "float", geophysical: true, point: true},
	{name: "latitude", typ: "float", geophysical: true, point: true},
	{name: "longitude", typ: "float", geophysical: true, point: true},
	{name: "air_pressure", typ: "float", geophysical: true, point: true, coordinates: true},
	{name: "air_temperature", typ: "float", geophysical: true, point: true, coordinates: true},
	{name: "relative_humidity", typ: "float", geophysical: true, point: true, coordinates: true},
	{name: "wind_speed", typ: "float", geophysical: true, point: true, coordinates: true},
	{name: "wind_from_direction", typ: "float", geophysical: true, point: true, coordinates: true},
	{name: "upward_balloon_velocity", typ: "float", geophysical: true, point: true, coordinates: true},
	{name: "elapsed_time", typ: "float", geophysical: true},
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dir := flag.String("dir", "", "directory containing converted NetCDF files")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dir, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(dir string, out io.Writer) int {
	fmt.Fprintln(out, "=== Sonde NetCDF Validation ===")
	fmt.Fprintln(out)

	paths, err := filepath.Glob(filepath.Join(dir, "*.nc"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: list %s: %v\n", dir, err)
		return 1
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "FATAL: no .nc files in %s\n", dir)
		return 1
	}

	phases := []*phase{
		{name: "Phase 1: File naming"},
		{name: "Phase 2: Global attributes"},
		{name: "Phase 3: Variable schema"},
		{name: "Phase 4: Fill values and bounds"},
	}

	for _, path := range paths {
		if err := validateFile(path, phases); err != nil {
			phases[0].errorf("%s: %v", filepath.Base(path), err)
		}
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}
	fmt.Fprintf(out, "\nFiles: %d\n", len(paths))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// validateFile runs every phase against one file. The returned error means
// the file could not be opened as NetCDF at all.
func validateFile(path string, phases []*phase) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	nc, err := cdf.Open(f)
	if err != nil {
		return fmt.Errorf("open netcdf: %w", err)
	}

	name := filepath.Base(path)
	checkFileName(phases[0], name, nc.Header)
	checkGlobals(phases[1], name, nc.Header)
	checkSchema(phases[2], name, nc.Header)
	checkData(phases[3], name, nc)
	return nil
}

// ── Phase 1: File naming ──

func checkFileName(p *phase, name string, h *cdf.Header) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		p.errorf("%s: name does not match {instrument}_{station}_{YYYYMMDD-HHMMSS}_sonde_woest_{version}.nc", name)
		return
	}
	if station, _ := h.GetAttribute("", "location_keywords").(string); strings.ToLower(station) != m[2] {
		p.errorf("%s: station %q in name, location_keywords %q", name, m[2], station)
	}
	if version, _ := h.GetAttribute("", "product_version").(string); version != m[4] {
		p.errorf("%s: version %q in name, product_version %q", name, m[4], version)
	}
}

// ── Phase 2: Global attributes ──

func checkGlobals(p *phase, name string, h *cdf.Header) {
	for _, a := range requiredGlobals {
		if h.GetAttribute("", a) == nil {
			p.errorf("%s: missing global attribute %q", name, a)
		}
	}
	if v, _ := h.GetAttribute("", "Conventions").(string); !strings.HasPrefix(v, "CF-1.6") {
		p.errorf("%s: Conventions %q", name, v)
	}
	for _, a := range []string{"sampling_interval", "averaging_interval"} {
		v, _ := h.GetAttribute("", a).(string)
		if v != "1 second" && !strings.HasSuffix(v, " seconds") {
			p.errorf("%s: %s %q is not pluralised", name, a, v)
		}
	}
	if v, ok := h.GetAttribute("", "processing_level").([]int32); !ok || len(v) != 1 {
		p.errorf("%s: processing_level must be a single int", name)
	}
}

// ── Phase 3: Variable schema ──

func checkSchema(p *phase, name string, h *cdf.Header) {
	present := map[string]bool{}
	for _, v := range h.Variables() {
		present[v] = true
	}

	for _, v := range variables {
		if !present[v.name] {
			p.errorf("%s: missing variable %q", name, v.name)
			continue
		}
		if dims := h.Dimensions(v.name); len(dims) != 1 || dims[0] != "time" {
			p.errorf("%s: %s dimensions %v, want [time]", name, v.name, dims)
		}
		if typ, _ := h.GetAttribute(v.name, "type").(string); typ != v.typ {
			p.errorf("%s: %s type %q, want %q", name, v.name, typ, v.typ)
		}
		for _, a := range []string{"units", "standard_name", "long_name", "valid_min", "valid_max"} {
			if h.GetAttribute(v.name, a) == nil {
				p.errorf("%s: %s missing %q", name, v.name, a)
			}
		}

		if v.geophysical {
			fill, ok := h.GetAttribute(v.name, "_FillValue").([]float32)
			if !ok || len(fill) != 1 || fill[0] != float32(netcdf.FillValue) {
				p.errorf("%s: %s _FillValue is not %g", name, v.name, netcdf.FillValue)
			}
		}

		cm, hasCM := h.GetAttribute(v.name, "cell_methods").(string)
		switch {
		case v.point && cm != "time: point":
			p.errorf("%s: %s cell_methods %q", name, v.name, cm)
		case !v.point && hasCM:
			p.errorf("%s: %s must not declare cell_methods", name, v.name)
		}

		coords, hasCoords := h.GetAttribute(v.name, "coordinates").(string)
		switch {
		case v.coordinates && coords != "latitude longitude altitude":
			p.errorf("%s: %s coordinates %q", name, v.name, coords)
		case !v.coordinates && hasCoords:
			p.errorf("%s: %s must not declare coordinates", name, v.name)
		}
	}
}

// ── Phase 4: Fill values and bounds ──

func checkData(p *phase, name string, nc *cdf.File) {
	for _, v := range variables {
		if !v.geophysical || nc.Header.GetAttribute(v.name, "valid_min") == nil {
			continue
		}
		lengths := nc.Header.Lengths(v.name)
		if len(lengths) != 1 {
			continue
		}
		data := make([]float32, lengths[0])
		if _, err := nc.Reader(v.name, nil, nil).Read(data); err != nil {
			p.errorf("%s: read %s: %v", name, v.name, err)
			continue
		}

		lo, okLo := nc.Header.GetAttribute(v.name, "valid_min").([]float32)
		hi, okHi := nc.Header.GetAttribute(v.name, "valid_max").([]float32)
		if !okLo || !okHi || len(lo) != 1 || len(hi) != 1 {
			p.errorf("%s: %s valid_min/valid_max must be single floats", name, v.name)
			continue
		}

		valid := 0
		for i, x := range data {
			if math.IsNaN(float64(x)) {
				p.errorf("%s: %s[%d] is NaN, want fill", name, v.name, i)
				continue
			}
			if x == float32(netcdf.FillValue) {
				continue
			}
			valid++
			if x < lo[0] || x > hi[0] {
				p.errorf("%s: %s[%d]=%g outside [%g, %g]", name, v.name, i, x, lo[0], hi[0])
			}
		}
		if valid > 0 && (lo[0] == float32(netcdf.FillValue) || hi[0] == float32(netcdf.FillValue)) {
			p.errorf("%s: %s bounds include the fill value", name, v.name)
		}
	}
}
