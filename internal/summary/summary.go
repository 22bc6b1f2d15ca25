// Package summary computes read-only aggregate views over log entries.
package summary

import (
	"fmt"
	"sort"
	"time"

	"timelog/internal/entry"
)

// Grouping selects how entries are bucketed when summarizing.
type Grouping int

const (
	// GroupTotal sums everything into a single row.
	GroupTotal Grouping = iota
	// GroupByDay buckets entries by the calendar day of their timestamp.
	GroupByDay
	// GroupByWeek buckets entries by the ISO week of their timestamp.
	GroupByWeek
	// GroupByTask buckets entries by exact description match.
	GroupByTask
)

// dayKey is the bucket key layout for GroupByDay.
const dayKey = "2006-01-02"

// Row is one aggregated bucket.
type Row struct {
	Key   string
	Total time.Duration
	Count int
}

// String returns the CLI flag spelling of the grouping.
func (g Grouping) String() string {
	switch g {
	case GroupByDay:
		return "day"
	case GroupByWeek:
		return "week"
	case GroupByTask:
		return "task"
	default:
		return "total"
	}
}

// ParseGrouping converts a CLI flag value into a Grouping.
func ParseGrouping(s string) (Grouping, error) {
	switch s {
	case "total":
		return GroupTotal, nil
	case "day":
		return GroupByDay, nil
	case "week":
		return GroupByWeek, nil
	case "task":
		return GroupByTask, nil
	}
	return GroupTotal, fmt.Errorf("invalid grouping %q: expected total, day, week or task", s)
}

// Summarize aggregates elapsed time per bucket. Pure: no side effects, no
// persistence. An empty input yields an empty slice for every grouping.
// Paused time is excluded from totals.
//
// Row order is deterministic: day and week rows ascend by key, task rows
// descend by total (ties broken by key).
func Summarize(entries []entry.Entry, g Grouping) []Row {
	if len(entries) == 0 {
		return []Row{}
	}

	if g == GroupTotal {
		row := Row{Key: "total"}
		for _, e := range entries {
			row.Total += e.Elapsed
			row.Count++
		}
		return []Row{row}
	}

	buckets := make(map[string]*Row)
	for _, e := range entries {
		key := e.Description
		switch g {
		case GroupByDay:
			key = e.Timestamp.Format(dayKey)
		case GroupByWeek:
			year, week := e.Timestamp.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		}
		row, ok := buckets[key]
		if !ok {
			row = &Row{Key: key}
			buckets[key] = row
		}
		row.Total += e.Elapsed
		row.Count++
	}

	rows := make([]Row, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, *row)
	}

	switch g {
	case GroupByDay, GroupByWeek:
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Key < rows[j].Key
		})
	default:
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Total != rows[j].Total {
				return rows[i].Total > rows[j].Total
			}
			return rows[i].Key < rows[j].Key
		})
	}

	return rows
}
