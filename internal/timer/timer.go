// Package timer persists the state of the currently running task.
package timer

import (
	"encoding/json"
	"os"
	"time"
)

// State represents an active timer. PausedSeconds accumulates completed
// pauses; PausedAt is set while a pause is ongoing.
type State struct {
	StartedAt     time.Time  `json:"started_at"`
	Description   string     `json:"description"`
	PausedSeconds int64      `json:"paused_seconds"`
	PausedAt      *time.Time `json:"paused_at,omitempty"`
}

// Running reports whether the timer is counting (started and not paused).
func (s State) Running() bool {
	return s.PausedAt == nil
}

// Paused returns the total time spent paused as of now, including an
// ongoing pause.
func (s State) Paused(now time.Time) time.Duration {
	d := time.Duration(s.PausedSeconds) * time.Second
	if s.PausedAt != nil {
		d += now.Sub(*s.PausedAt)
	}
	return d
}

// Elapsed returns the working time as of now, excluding pauses.
func (s State) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt) - s.Paused(now)
}

// Pause suspends the timer. No-op when already paused.
func (s *State) Pause(now time.Time) {
	if s.PausedAt == nil {
		t := now
		s.PausedAt = &t
	}
}

// Resume restarts a paused timer, folding the finished pause into the
// accumulated total. No-op when not paused.
func (s *State) Resume(now time.Time) {
	if s.PausedAt != nil {
		s.PausedSeconds += int64(now.Sub(*s.PausedAt) / time.Second)
		s.PausedAt = nil
	}
}

// Save writes the timer state to the state file.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func Save(path string, state State) error {
	// State contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(state, "", "  ")

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the timer state from the state file.
// Returns nil when the file does not exist (no active timer).
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Clear removes the timer state file. Idempotent: a missing file is not an
// error.
func Clear(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
