// Package store owns the ordered, persistent collection of log entries.
//
// The backing file is CSV with a header row and one record per entry:
//
//	Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)
//
// Adds append a single record with O_APPEND; deletes renumber the remaining
// entries and rewrite the whole file through a temp file followed by an
// atomic rename. The file therefore always reflects the last completed
// mutation, never a partial one, and live indices are always the dense
// sequence 0..N-1 matching record position.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"timelog/internal/entry"
)

// TimeLayout is the on-disk timestamp format (RFC 2822 style).
const TimeLayout = time.RFC1123Z

var header = []string{
	"Index",
	"Start Time",
	"Task Description",
	"Elapsed Time (seconds)",
	"Paused Duration (seconds)",
}

// Store is the aggregate root for log entries. It holds the in-memory
// sequence and the injected backing file path. Mutations are synchronously
// flushed, so memory and disk never diverge past the last completed
// operation.
type Store struct {
	path    string
	entries []entry.Entry
}

// Load reads the backing file at path and materializes the store. A missing
// file yields an empty store. An unparsable record aborts the load with a
// *CorruptError identifying the offending line; callers that prefer to skip
// bad records use LoadSkipCorrupt instead.
func Load(path string) (*Store, error) {
	entries, _, err := readFile(path, false)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, entries: entries}, nil
}

// LoadSkipCorrupt reads the backing file, dropping unparsable records and
// reporting them as warnings.
func LoadSkipCorrupt(path string) (*Store, []ParseWarning, error) {
	entries, warnings, err := readFile(path, true)
	if err != nil {
		return nil, nil, err
	}
	return &Store{path: path, entries: entries}, warnings, nil
}

// New returns an empty store backed by path. The file is not created until
// the first append.
func New(path string) *Store {
	return &Store{path: path, entries: []entry.Entry{}}
}

// Path returns the injected backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a snapshot of the current entry sequence in display
// order. The slice is a copy; mutating it does not affect the store.
func (s *Store) Entries() []entry.Entry {
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry at index.
func (s *Store) Get(index int) (entry.Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return entry.Entry{}, &IndexError{Index: index, Len: len(s.entries)}
	}
	return s.entries[index], nil
}

// Total returns the summed elapsed duration of all live entries.
func (s *Store) Total() time.Duration {
	var total time.Duration
	for _, e := range s.entries {
		total += e.Elapsed
	}
	return total
}

// Append validates and persists a new entry timestamped now, assigning it
// the next sequential index. Returns the new index.
func (s *Store) Append(description string, elapsed time.Duration) (int, error) {
	e, err := entry.New(description, elapsed, time.Now())
	if err != nil {
		return 0, err
	}
	return s.AppendEntry(e)
}

// AppendEntry persists a prebuilt entry. Timestamps and durations are
// truncated to second precision, the granularity the file format stores, so
// the in-memory entry always round-trips through a reload exactly.
//
// The record is written to disk first and memory updated only on success:
// a failed write leaves both sides in the pre-append state.
func (s *Store) AppendEntry(e entry.Entry) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	e.Timestamp = e.Timestamp.Truncate(time.Second)
	e.Elapsed = e.Elapsed.Truncate(time.Second)
	e.Paused = e.Paused.Truncate(time.Second)

	index := len(s.entries)
	if err := appendRecord(s.path, index, e); err != nil {
		return 0, err
	}

	s.entries = append(s.entries, e)
	return index, nil
}

// Delete removes the entry at index, shifts all later entries down by one
// and rewrites the backing file atomically with the renumbered sequence.
// Returns the removed entry for confirmation display.
func (s *Store) Delete(index int) (entry.Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return entry.Entry{}, &IndexError{Index: index, Len: len(s.entries)}
	}

	removed := s.entries[index]
	remaining := make([]entry.Entry, 0, len(s.entries)-1)
	remaining = append(remaining, s.entries[:index]...)
	remaining = append(remaining, s.entries[index+1:]...)

	if err := writeAll(s.path, remaining); err != nil {
		// Memory untouched: it still matches the file the rewrite failed
		// to replace.
		return entry.Entry{}, err
	}

	s.entries = remaining
	return removed, nil
}

// record serializes an entry at the given position.
func record(index int, e entry.Entry) []string {
	return []string{
		strconv.Itoa(index),
		e.Timestamp.Format(TimeLayout),
		e.Description,
		strconv.FormatInt(int64(e.Elapsed/time.Second), 10),
		strconv.FormatInt(int64(e.Paused/time.Second), 10),
	}
}

// parseRecord deserializes one CSV record into an entry. The index column
// must be numeric but its value is ignored: indices derive from position.
func parseRecord(rec []string) (entry.Entry, error) {
	if len(rec) < 4 {
		return entry.Entry{}, fmt.Errorf("expected at least 4 fields, got %d", len(rec))
	}

	if _, err := strconv.Atoi(strings.TrimSpace(rec[0])); err != nil {
		return entry.Entry{}, fmt.Errorf("invalid index %q", rec[0])
	}

	timestamp, err := time.Parse(TimeLayout, rec[1])
	if err != nil {
		return entry.Entry{}, fmt.Errorf("invalid start time %q: %w", rec[1], err)
	}

	elapsedSecs, err := strconv.ParseInt(rec[3], 10, 64)
	if err != nil || elapsedSecs < 0 {
		return entry.Entry{}, fmt.Errorf("invalid elapsed time %q", rec[3])
	}

	// The paused column was absent in early log files; default to zero.
	var pausedSecs int64
	if len(rec) >= 5 && rec[4] != "" {
		pausedSecs, err = strconv.ParseInt(rec[4], 10, 64)
		if err != nil || pausedSecs < 0 {
			return entry.Entry{}, fmt.Errorf("invalid paused duration %q", rec[4])
		}
	}

	e := entry.Entry{
		Timestamp:   timestamp,
		Description: rec[2],
		Elapsed:     time.Duration(elapsedSecs) * time.Second,
		Paused:      time.Duration(pausedSecs) * time.Second,
	}
	if err := e.Validate(); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// readFile parses the backing file. With skipCorrupt set, unparsable
// records are collected as warnings; otherwise the first one aborts the
// read with a *CorruptError.
func readFile(path string, skipCorrupt bool) ([]entry.Entry, []ParseWarning, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entry.Entry{}, nil, nil
		}
		return nil, nil, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	entries := []entry.Entry{}
	var warnings []ParseWarning
	lastLine := 0
	first := true
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := lastLine + 1
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			if skipCorrupt {
				warnings = append(warnings, ParseWarning{Line: line, Message: err.Error()})
				continue
			}
			return nil, nil, &CorruptError{Line: line, Err: err}
		}

		// Physical line of the record's first field; blank lines the
		// reader skips and quoted newlines make this differ from the
		// record count.
		line, _ := reader.FieldPos(0)
		lastLine = line

		if first {
			first = false
			if len(rec) > 0 && rec[0] == header[0] {
				continue
			}
		}

		e, perr := parseRecord(rec)
		if perr != nil {
			raw := strings.Join(rec, ",")
			if skipCorrupt {
				warnings = append(warnings, ParseWarning{Line: line, Record: raw, Message: perr.Error()})
				continue
			}
			return nil, nil, &CorruptError{Line: line, Record: raw, Err: perr}
		}
		entries = append(entries, e)
	}

	return entries, warnings, nil
}

// appendRecord appends one serialized record, writing the header first when
// the file is new or empty.
func appendRecord(path string, index int, e entry.Entry) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(header); err != nil {
			return err
		}
	}
	if err := writer.Write(record(index, e)); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// writeAll rewrites the backing file with the given sequence, renumbered
// densely from zero. The content goes to a temp file first and replaces the
// log with an atomic rename, so a crash mid-write leaves the previous file
// intact.
func writeAll(path string, entries []entry.Entry) error {
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	werr := writer.Write(header)
	for i, e := range entries {
		if werr != nil {
			break
		}
		werr = writer.Write(record(i, e))
	}
	if werr == nil {
		writer.Flush()
		werr = writer.Error()
	}
	if werr != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return werr
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
