package domain

import "strings"

// Tokens that open the column-name row. Stations without an elapsed time
// column start the row with a padded " TimeUTC".
const (
	elapsedSentinel = "Elapsed time"
	timeSentinel    = " TimeUTC"
)

type headerState int

const (
	stateScanning headerState = iota
	stateUnitsPending
	stateDone
)

// Header is the result of scanning the metadata block of an EDT file.
type Header struct {
	Metadata *Metadata
	Units    []string
	// Skip is the number of lines before the column-name row.
	Skip int
}

// DataStart returns the index of the first data row: the column-name row and
// the units line follow the skipped lines.
func (h Header) DataStart() int { return h.Skip + 2 }

// ParseHeader scans lines until the units line that follows the column-name
// row. Key/value lines are split on tabs; everything else before the
// column-name row is skipped.
func ParseHeader(lines []string) (Header, error) {
	h := Header{Metadata: NewMetadata()}
	state := stateScanning

	for i, line := range lines {
		switch state {
		case stateScanning:
			switch {
			case isColumnRow(line):
				h.Skip = i
				state = stateUnitsPending
			case strings.Contains(line, "\t"):
				fields := strings.Split(line, "\t")
				h.Metadata.Set(fields[0], fields[1])
			}
		case stateUnitsPending:
			h.Units = splitTrimmed(line)
			state = stateDone
		}
		if state == stateDone {
			return h, nil
		}
	}
	return Header{}, ErrMalformedHeader
}

func isColumnRow(line string) bool {
	return strings.HasPrefix(line, elapsedSentinel) || strings.HasPrefix(line, timeSentinel)
}

func splitTrimmed(line string) []string {
	fields := strings.Split(line, "\t")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
