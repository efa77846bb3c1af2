// Command genmock writes synthetic Vaisala MW41 EDT exports laid out like the
// WOEST raw archive (one subdirectory per station). Each generated file is
// parsed back through the domain package so fixtures always match what the
// converter accepts.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/raw -rows 600 -corrupt 0.02
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/gapintheclouds/woest-sondes/internal/domain"
)

// stationDef ties a raw archive subdirectory to the station name written in
// the header and to the launch site used for the synthetic drift.
type stationDef struct {
	dir      string
	name     string
	lat, lon float64
	height   float64
	elapsed  bool
}

var stations = []stationDef{
	{dir: "Ash_Farm", name: "AshFarm", lat: 50.9904, lon: -2.6211, height: 60, elapsed: true},
	{dir: "Chilbolton", name: "Chilbolton", lat: 51.1445, lon: -1.4370, height: 84, elapsed: true},
	{dir: "Larkhill", name: "LAR_A", lat: 51.2009, lon: -1.8050, height: 132, elapsed: true},
	{dir: "Reading", name: "Reading", lat: 51.4415, lon: -0.9376, height: 66},
	{dir: "Spire_View", name: "SpireView", lat: 51.0670, lon: -1.7950, height: 50, elapsed: true},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "root directory for the generated station subdirectories")
	rows := flag.Int("rows", 600, "samples per ascent")
	interval := flag.Int("interval", 1, "seconds between samples")
	corrupt := flag.Float64("corrupt", 0.02, "fraction of rows with missing (//////) or blank-time tokens")
	release := flag.String("release", "2023-07-01T09:00:00", "release time of the first ascent")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" || *rows < 1 || *interval < 1 {
		flag.Usage()
		return fmt.Errorf("missing or invalid flags: -out, -rows, -interval")
	}
	start, err := time.Parse(domain.ReleaseLayout, *release)
	if err != nil {
		return fmt.Errorf("parse -release: %w", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	for i, st := range stations {
		g := generator{
			station:  st,
			release:  start.Add(time.Duration(i) * 3 * time.Hour),
			rows:     *rows,
			interval: *interval,
			corrupt:  *corrupt,
			rng:      rng,
		}
		path, stats, err := g.write(*out)
		if err != nil {
			return fmt.Errorf("station %s: %w", st.dir, err)
		}
		log.Printf("%s: %d rows (%d dropped, %d with missing values) -> %s",
			st.name, stats.rows, stats.dropped, stats.missing, path)
	}
	return nil
}

type generator struct {
	station  stationDef
	release  time.Time
	rows     int
	interval int
	corrupt  float64
	rng      *rand.Rand
}

type genStats struct {
	rows, dropped, missing int
}

func (g generator) write(root string) (string, genStats, error) {
	lines, missing := g.lines()

	dir := filepath.Join(root, g.station.dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", genStats{}, err
	}
	name := "edt1sdataforv217_" + g.release.Format("20060102_150405") + ".txt"
	path := filepath.Join(dir, name)

	// Self-check against the real parser before writing anything.
	s, err := domain.ParseSounding(domain.RawSounding{Path: path, Lines: lines})
	if err != nil {
		return "", genStats{}, fmt.Errorf("generated file does not parse: %w", err)
	}
	if _, err := domain.DeriveProfile(s, domain.LookupStation(g.station.name)); err != nil {
		return "", genStats{}, fmt.Errorf("generated file does not derive: %w", err)
	}

	body, err := charmap.ISO8859_1.NewEncoder().String(strings.Join(lines, "\r\n") + "\r\n")
	if err != nil {
		return "", genStats{}, fmt.Errorf("encode latin-1: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return "", genStats{}, err
	}
	return path, genStats{rows: s.Table.Len(), dropped: s.Table.Dropped, missing: missing}, nil
}

func (g generator) lines() ([]string, int) {
	lines := []string{
		"Sounding data",
		"",
		"System trademark and model\tMW41",
		"Station name\t" + g.station.name,
		"Balloon release date and time\t" + g.release.Format(domain.ReleaseLayout),
		"Sonde type\tRS41-SGP",
		"Sonde software version\t2.4.0",
		fmt.Sprintf("Sonde serial number\tU%07d", g.rng.IntN(10_000_000)),
		"Software version\tMW41 2.17.0",
		fmt.Sprintf("Release point height from sea level\t%.0f m", g.station.height),
		"",
	}

	cols := []string{"TimeUTC", "P", "Temp", "RH", "Speed", "Dir", "HeightMSL", "GpsHeightMSL", "Lat", "Lon", "AscRate"}
	units := []string{"", "hPa", "°C", "%", "m/s", "°", "m", "m", "°", "°", "m/s"}
	if g.station.elapsed {
		cols = append([]string{"Elapsed time"}, cols...)
		units = append([]string{"s"}, units...)
		lines = append(lines, strings.Join(cols, "\t"))
	} else {
		lines = append(lines, " "+strings.Join(cols, "\t"))
	}
	lines = append(lines, strings.Join(units, "\t"))

	missing := 0
	for i := range g.rows {
		row, hasMissing := g.row(i)
		if hasMissing {
			missing++
		}
		lines = append(lines, row)
	}
	return lines, missing
}

// row synthesises one sample of a standard-atmosphere ascent with a steady
// eastward drift. The first two rows are never corrupted so the sampling
// interval is always defined.
func (g generator) row(i int) (string, bool) {
	elapsed := float64(i * g.interval)
	z := g.station.height + 5.2*elapsed
	t := 15 - 0.0065*(z-g.station.height) + g.rng.NormFloat64()*0.2
	p := 1013.25 * math.Exp(-z/8434)
	rh := math.Max(2, 85-0.006*z+g.rng.NormFloat64())
	speed := 3 + 0.002*z
	dir := math.Mod(240+0.001*z, 360)
	lat := g.station.lat + 0.00001*elapsed
	lon := g.station.lon + 0.00004*elapsed

	tod := g.release.Add(time.Duration(elapsed) * time.Second).Format("15:04:05")
	fields := []string{
		tod,
		fmt.Sprintf("%.2f", p),
		fmt.Sprintf("%.2f", t),
		strconv.Itoa(int(rh)),
		fmt.Sprintf("%.1f", speed),
		strconv.Itoa(int(dir)),
		fmt.Sprintf("%.0f", z-1),
		fmt.Sprintf("%.1f", z),
		fmt.Sprintf("%.6f", lat),
		fmt.Sprintf("%.6f", lon),
		"5.2",
	}

	missing := false
	if i > 1 && g.rng.Float64() < g.corrupt {
		if g.rng.IntN(2) == 0 {
			fields[0] = ""
		} else {
			fields[2], fields[3] = "//////", "//////"
			missing = true
		}
	}
	if g.station.elapsed {
		fields = append([]string{strconv.Itoa(int(elapsed))}, fields...)
	}
	return strings.Join(fields, "\t"), missing
}
