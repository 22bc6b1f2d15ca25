package store

import "fmt"

// IndexError reports a delete or lookup with an index outside the live range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of range: log is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of range (0-%d)", e.Index, e.Len-1)
}

// CorruptError reports a persisted record that could not be parsed. It
// carries enough context (line number and raw record) for the caller to
// decide whether to skip, abort, or repair.
type CorruptError struct {
	Line   int
	Record string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt log record at line %d: %v", e.Line, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// ParseWarning describes a corrupted record that was skipped during a
// lenient load.
type ParseWarning struct {
	Line    int
	Record  string
	Message string
}
