// Package entry defines the log entry value type and its validation rules.
package entry

import (
	"fmt"
	"strings"
	"time"
)

// Entry represents a single logged activity. Entries are immutable value
// objects: the store replaces whole entries rather than mutating fields.
type Entry struct {
	Timestamp   time.Time
	Description string
	Elapsed     time.Duration
	Paused      time.Duration
}

// ValidationError reports invalid user input for an entry field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// New creates a validated entry. The description must contain at least one
// non-whitespace character and durations must not be negative.
func New(description string, elapsed time.Duration, timestamp time.Time) (Entry, error) {
	e := Entry{
		Timestamp:   timestamp,
		Description: description,
		Elapsed:     elapsed,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks the entry's fields against the creation rules.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Reason: "cannot be empty"}
	}
	if e.Elapsed < 0 {
		return &ValidationError{Field: "duration", Reason: "cannot be negative"}
	}
	if e.Paused < 0 {
		return &ValidationError{Field: "paused duration", Reason: "cannot be negative"}
	}
	return nil
}
