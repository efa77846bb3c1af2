package domain

import (
	"path/filepath"
	"strings"
)

// Header keys read by the derivation and writer stages.
const (
	KeySystemModel      = "System trademark and model"
	KeyStationName      = "Station name"
	KeyReleaseTime      = "Balloon release date and time"
	KeySondeType        = "Sonde type"
	KeySondeSoftware    = "Sonde software version"
	KeySondeSerial      = "Sonde serial number"
	KeySoftwareVersion  = "Software version"
	KeyReleaseElevation = "Release point height from sea level"

	// Synthetic keys taken from the input file name.
	KeyFileDate = "date"
	KeyFileTime = "time"
)

// RequiredKeys lists the header keys a complete conversion reads.
var RequiredKeys = []string{
	KeySystemModel,
	KeyStationName,
	KeyReleaseTime,
	KeySondeType,
	KeySondeSoftware,
	KeySondeSerial,
	KeySoftwareVersion,
	KeyReleaseElevation,
}

// Metadata is the ordered key/value header of one ascent file.
// Re-setting a key replaces its value but keeps its original position.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Set stores value under key, both trimmed.
func (m *Metadata) Set(key, value string) {
	key = strings.TrimSpace(key)
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = strings.TrimSpace(value)
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Require returns the value stored under key or a *MissingFieldError.
func (m *Metadata) Require(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", &MissingFieldError{Field: key}
	}
	return v, nil
}

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Metadata) Len() int { return len(m.keys) }

// SetFileNameKeys copies the date and time parts of an EDT file name
// ("<prefix>_<date>_<time>.txt") into the synthetic date/time keys.
// Names with fewer parts leave the keys unset.
func (m *Metadata) SetFileNameKeys(path string) {
	parts := strings.Split(filepath.Base(path), "_")
	if len(parts) > 1 {
		m.Set(KeyFileDate, parts[1])
	}
	if len(parts) > 2 {
		m.Set(KeyFileTime, strings.SplitN(parts[2], ".", 2)[0])
	}
}
