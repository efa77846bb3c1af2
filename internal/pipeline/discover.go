package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover lists the files matching pattern in each station subdirectory of
// rawDir. Stations are visited in the given order and files sorted within
// each station. A missing station directory contributes nothing.
func Discover(rawDir string, stations []string, pattern string) ([]string, error) {
	var paths []string
	for _, station := range stations {
		matches, err := filepath.Glob(filepath.Join(rawDir, station, pattern))
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", station, err)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}
