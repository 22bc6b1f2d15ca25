package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"timelog/internal/entry"
	"timelog/internal/summary"
)

// The presenter: pure functions from (entries, width, cursor) to plain
// display lines, recomputed entirely on every call. Styling is applied over
// these lines by the view, so the width contract can be checked on the
// unstyled text.

const (
	selectedMarker = "▸ "
	normalMarker   = "  "
	ellipsis       = "…"

	// minDescWidth is the narrowest description column kept before the
	// timestamp column is dropped instead.
	minDescWidth = 8
)

// RenderEntryLines renders one line per entry sized to fit width: selection
// marker, [index], description, duration, timestamp. When the terminal is
// too narrow the description is truncated with an ellipsis first, then the
// timestamp column is dropped; the duration is never dropped. Lines never
// exceed width: below the fixed column overhead the line itself is cut. At
// most one line carries the selection marker and it corresponds to cursor
// (pass -1 for no selection).
func RenderEntryLines(entries []entry.Entry, width, cursor int, dateFormat string) []string {
	if len(entries) == 0 {
		return []string{}
	}

	type columns struct {
		index    string
		desc     string
		duration string
		stamp    string
	}

	data := make([]columns, len(entries))
	indexWidth, descWidth, durWidth, stampWidth := 0, 0, 0, 0
	for i, e := range entries {
		c := columns{
			index:    fmt.Sprintf("[%d]", i),
			desc:     e.Description,
			duration: entry.FormatDuration(e.Elapsed),
			stamp:    e.Timestamp.Format(dateFormat),
		}
		data[i] = c
		indexWidth = max(indexWidth, textWidth(c.index))
		descWidth = max(descWidth, textWidth(c.desc))
		durWidth = max(durWidth, textWidth(c.duration))
		stampWidth = max(stampWidth, textWidth(c.stamp))
	}

	// Fixed overhead: marker, index, and the two-space gaps around the
	// description and duration columns.
	fixed := textWidth(normalMarker) + indexWidth + 1 + 2 + durWidth

	showStamp := true
	avail := width - fixed - 2 - stampWidth
	if avail < minDescWidth && descWidth > avail {
		showStamp = false
		avail = width - fixed
	}
	if descWidth > avail {
		descWidth = max(avail, 0)
	}

	lines := make([]string, len(entries))
	for i, c := range data {
		marker := normalMarker
		if i == cursor {
			marker = selectedMarker
		}

		line := marker + padRight(c.index, indexWidth) + " " +
			padRight(truncate(c.desc, descWidth), descWidth) + "  " +
			padLeft(c.duration, durWidth)
		if showStamp {
			line += "  " + c.stamp
		}
		// Widths below the fixed column overhead cut into the line itself
		if textWidth(line) > width {
			line = truncate(line, width)
		}
		lines[i] = line
	}

	return lines
}

// RenderSummaryLines renders aggregated rows with the same width-fitting
// rule as entry lines: the key is truncated first, the total never dropped.
func RenderSummaryLines(rows []summary.Row, width int) []string {
	if len(rows) == 0 {
		return []string{}
	}

	keyWidth, totalWidth := 0, 0
	totals := make([]string, len(rows))
	for i, row := range rows {
		totals[i] = entry.FormatDuration(row.Total)
		keyWidth = max(keyWidth, textWidth(row.Key))
		totalWidth = max(totalWidth, textWidth(totals[i]))
	}

	counts := make([]string, len(rows))
	countWidth := 0
	for i, row := range rows {
		counts[i] = fmt.Sprintf("(%d)", row.Count)
		countWidth = max(countWidth, textWidth(counts[i]))
	}

	fixed := 2 + 2 + totalWidth
	showCount := true
	avail := width - fixed - 2 - countWidth
	if avail < minDescWidth && keyWidth > avail {
		showCount = false
		avail = width - fixed
	}
	if keyWidth > avail {
		keyWidth = max(avail, 0)
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		line := "  " + padRight(truncate(row.Key, keyWidth), keyWidth) + "  " +
			padLeft(totals[i], totalWidth)
		if showCount {
			line += "  " + padLeft(counts[i], countWidth)
		}
		if textWidth(line) > width {
			line = truncate(line, width)
		}
		lines[i] = line
	}

	return lines
}

func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate shortens s to at most w runes, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if textWidth(s) <= w {
		return s
	}
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:w-1]) + ellipsis
}

func padRight(s string, w int) string {
	if n := w - textWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := w - textWidth(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
