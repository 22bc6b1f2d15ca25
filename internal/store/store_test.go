package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timelog/internal/entry"
)

func tempLogPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "timelog.csv")
}

func mustAppend(t *testing.T, s *Store, description string, elapsed time.Duration) int {
	t.Helper()
	index, err := s.Append(description, elapsed)
	if err != nil {
		t.Fatalf("Append(%q) error = %v", description, err)
	}
	return index
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(tempLogPath(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestAppend_AssignsSequentialIndices(t *testing.T) {
	s := New(tempLogPath(t))

	for i := 0; i < 5; i++ {
		index := mustAppend(t, s, "task", 10*time.Minute)
		if index != i {
			t.Errorf("Append #%d returned index %d", i, index)
		}
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestAppend_RoundTrip(t *testing.T) {
	path := tempLogPath(t)
	s := New(path)

	mustAppend(t, s, "write report", time.Hour)
	mustAppend(t, s, "review PR, final pass", 45*time.Minute)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", loaded.Len())
	}

	original := s.Entries()
	reloaded := loaded.Entries()
	for i := range original {
		if !original[i].Timestamp.Equal(reloaded[i].Timestamp) {
			t.Errorf("entry %d timestamp = %v, want %v", i, reloaded[i].Timestamp, original[i].Timestamp)
		}
		if original[i].Description != reloaded[i].Description {
			t.Errorf("entry %d description = %q, want %q", i, reloaded[i].Description, original[i].Description)
		}
		if original[i].Elapsed != reloaded[i].Elapsed {
			t.Errorf("entry %d elapsed = %v, want %v", i, reloaded[i].Elapsed, original[i].Elapsed)
		}
	}
}

func TestAppendEntry_TruncatesToSeconds(t *testing.T) {
	path := tempLogPath(t)
	s := New(path)

	e := entry.Entry{
		Timestamp:   time.Now().Add(123 * time.Millisecond),
		Description: "task",
		Elapsed:     time.Minute + 700*time.Millisecond,
	}
	if _, err := s.AppendEntry(e); err != nil {
		t.Fatalf("AppendEntry() error = %v", err)
	}

	got, _ := s.Get(0)
	if got.Elapsed != time.Minute {
		t.Errorf("Elapsed = %v, want %v", got.Elapsed, time.Minute)
	}
	if got.Timestamp.Nanosecond() != 0 {
		t.Errorf("Timestamp not truncated: %v", got.Timestamp)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	reloaded, _ := loaded.Get(0)
	if !reloaded.Timestamp.Equal(got.Timestamp) || reloaded.Elapsed != got.Elapsed {
		t.Errorf("reloaded entry %+v differs from in-memory %+v", reloaded, got)
	}
}

func TestAppendEntry_RejectsInvalid(t *testing.T) {
	s := New(tempLogPath(t))

	_, err := s.AppendEntry(entry.Entry{Timestamp: time.Now(), Description: "  "})
	var verr *entry.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *entry.ValidationError, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("invalid append mutated the store: Len() = %d", s.Len())
	}
	if _, statErr := os.Stat(s.Path()); !os.IsNotExist(statErr) {
		t.Error("invalid append created the log file")
	}
}

func TestDelete_ShiftsAndRenumbers(t *testing.T) {
	path := tempLogPath(t)
	s := New(path)

	mustAppend(t, s, "write spec", 3600*time.Second)
	mustAppend(t, s, "review", 1800*time.Second)

	removed, err := s.Delete(0)
	if err != nil {
		t.Fatalf("Delete(0) error = %v", err)
	}
	if removed.Description != "write spec" {
		t.Errorf("removed %q, want %q", removed.Description, "write spec")
	}

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, err := s.Get(0)
	if err != nil {
		t.Fatalf("Get(0) error = %v", err)
	}
	if got.Description != "review" {
		t.Errorf("entry at index 0 = %q, want %q", got.Description, "review")
	}

	// Reload confirms the rewrite hit the disk with dense indices
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("reloaded Len() = %d, want 1", loaded.Len())
	}
	reloaded, _ := loaded.Get(0)
	if reloaded.Description != "review" || reloaded.Elapsed != 1800*time.Second {
		t.Errorf("reloaded entry = %+v", reloaded)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("file has %d lines, want header + 1 record", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0,") {
		t.Errorf("surviving record not renumbered to 0: %q", lines[1])
	}
}

func TestDelete_OutOfRange(t *testing.T) {
	s := New(tempLogPath(t))
	mustAppend(t, s, "task", time.Minute)

	for _, index := range []int{-1, 1, 99} {
		_, err := s.Delete(index)
		var ierr *IndexError
		if !errors.As(err, &ierr) {
			t.Errorf("Delete(%d): expected *IndexError, got %v", index, err)
			continue
		}
		if ierr.Index != index {
			t.Errorf("IndexError.Index = %d, want %d", ierr.Index, index)
		}
	}
	if s.Len() != 1 {
		t.Errorf("failed deletes mutated the store: Len() = %d", s.Len())
	}
}

func TestGet_OutOfRange(t *testing.T) {
	s := New(tempLogPath(t))
	var ierr *IndexError
	if _, err := s.Get(0); !errors.As(err, &ierr) {
		t.Errorf("Get(0) on empty store: expected *IndexError, got %v", err)
	}
}

func TestIndicesStayDense(t *testing.T) {
	path := tempLogPath(t)
	s := New(path)

	for _, desc := range []string{"a", "b", "c", "d", "e"} {
		mustAppend(t, s, desc, time.Minute)
	}
	if _, err := s.Delete(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Delete(2); err != nil {
		t.Fatal(err)
	}
	mustAppend(t, s, "f", time.Minute)

	want := []string{"a", "c", "e", "f"}
	entries := s.Entries()
	if len(entries) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Description != w {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Description, w)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for i, w := range want {
		got, _ := loaded.Get(i)
		if got.Description != w {
			t.Errorf("reloaded entry %d = %q, want %q", i, got.Description, w)
		}
	}
}

func TestTotal(t *testing.T) {
	s := New(tempLogPath(t))
	if s.Total() != 0 {
		t.Errorf("empty Total() = %v, want 0", s.Total())
	}

	mustAppend(t, s, "a", time.Hour)
	mustAppend(t, s, "b", 30*time.Minute)
	if s.Total() != 90*time.Minute {
		t.Errorf("Total() = %v, want %v", s.Total(), 90*time.Minute)
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	s := New(tempLogPath(t))
	mustAppend(t, s, "task", time.Minute)

	entries := s.Entries()
	entries[0].Description = "mutated"

	got, _ := s.Get(0)
	if got.Description != "task" {
		t.Error("mutating the snapshot affected the store")
	}
}

func TestLoad_CorruptRecord(t *testing.T) {
	path := tempLogPath(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)",
		"0," + time.Now().Format(TimeLayout) + ",good,60,0",
		"1,not a timestamp,bad,60,0",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected *CorruptError, got %v", err)
	}
	if corrupt.Line != 3 {
		t.Errorf("CorruptError.Line = %d, want 3", corrupt.Line)
	}
	if !strings.Contains(corrupt.Record, "not a timestamp") {
		t.Errorf("CorruptError.Record = %q", corrupt.Record)
	}
}

func TestLoadSkipCorrupt(t *testing.T) {
	path := tempLogPath(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)",
		"0," + time.Now().Format(TimeLayout) + ",good,60,0",
		"garbage line",
		"2," + time.Now().Format(TimeLayout) + ",also good,120,0",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, warnings, err := LoadSkipCorrupt(path)
	if err != nil {
		t.Fatalf("LoadSkipCorrupt() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Line != 3 {
		t.Errorf("warning line = %d, want 3", warnings[0].Line)
	}
}

func TestLoad_LineNumbersWithQuotedNewline(t *testing.T) {
	// A quoted description spanning two physical lines must not shift
	// the line reported for a later corrupt record.
	path := tempLogPath(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)",
		`0,` + time.Now().Format(TimeLayout) + `,"multi`,
		`line desc",60,0`,
		"1,not a timestamp,bad,60,0",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected *CorruptError, got %v", err)
	}
	if corrupt.Line != 4 {
		t.Errorf("CorruptError.Line = %d, want 4", corrupt.Line)
	}

	s, warnings, err := LoadSkipCorrupt(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	got, _ := s.Get(0)
	if got.Description != "multi\nline desc" {
		t.Errorf("Description = %q", got.Description)
	}
	if len(warnings) != 1 || warnings[0].Line != 4 {
		t.Errorf("warnings = %+v, want one at line 4", warnings)
	}
}

func TestLoad_LineNumbersAfterBlankLine(t *testing.T) {
	// The reader skips blank lines silently; reported positions stay
	// physical.
	path := tempLogPath(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)",
		"",
		"0," + time.Now().Format(TimeLayout) + ",good,60,0",
		"1,not a timestamp,bad,60,0",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected *CorruptError, got %v", err)
	}
	if corrupt.Line != 4 {
		t.Errorf("CorruptError.Line = %d, want 4", corrupt.Line)
	}
}

func TestLoad_PausedColumnOptional(t *testing.T) {
	path := tempLogPath(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds)",
		"0," + time.Now().Format(TimeLayout) + ",old format,300",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, _ := s.Get(0)
	if got.Paused != 0 {
		t.Errorf("Paused = %v, want 0", got.Paused)
	}
	if got.Elapsed != 300*time.Second {
		t.Errorf("Elapsed = %v, want 5m", got.Elapsed)
	}
}

func TestLoad_IgnoresStoredIndexValues(t *testing.T) {
	path := tempLogPath(t)
	content := strings.Join([]string{
		"Index,Start Time,Task Description,Elapsed Time (seconds),Paused Duration (seconds)",
		"7," + time.Now().Format(TimeLayout) + ",first,60,0",
		"3," + time.Now().Format(TimeLayout) + ",second,60,0",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first, _ := s.Get(0)
	second, _ := s.Get(1)
	if first.Description != "first" || second.Description != "second" {
		t.Errorf("indices did not derive from position: %q, %q", first.Description, second.Description)
	}
}

func TestDelete_StaleTempFileIgnored(t *testing.T) {
	// A crash between temp write and rename leaves a .tmp file behind.
	// The log itself is untouched, so the store must load normally.
	path := tempLogPath(t)
	s := New(path)
	mustAppend(t, s, "a", time.Minute)
	mustAppend(t, s, "b", time.Minute)

	if err := os.WriteFile(path+".tmp", []byte("partial garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("Len() = %d, want 2", loaded.Len())
	}

	// A subsequent delete replaces the stale temp file and succeeds
	if _, err := loaded.Delete(0); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after successful delete")
	}
}

func TestAppend_KeepsExistingHeader(t *testing.T) {
	path := tempLogPath(t)
	s := New(path)
	mustAppend(t, s, "a", time.Minute)

	reopened, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reopened.Append("b", time.Minute); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "Index,Start Time"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}
}
