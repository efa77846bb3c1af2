package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader means the column units line was never reached.
	ErrMalformedHeader = errors.New("malformed header: column units line not found")

	// ErrInvalidTimestamp wraps release time and per-row time-of-day parse failures.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrEmptyTable means no data row survived filtering.
	ErrEmptyTable = errors.New("measurement table has no rows")
)

// MissingFieldError reports a required header key that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing metadata field %q", e.Field)
}

// MissingColumnError reports a required table column that is absent.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing table column %q", e.Column)
}
