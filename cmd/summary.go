package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"timelog/internal/entry"
	"timelog/internal/summary"
)

var summaryByFlag string

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregated time totals",
	Long: `Show aggregated time totals over the whole log.

Groupings:
  total   One grand total (default)
  day     Totals per calendar day
  week    Totals per ISO week
  task    Totals per task description

Examples:
  timelog summary
  timelog summary --by day
  timelog summary --by week
  timelog summary --by task`,
	Run: func(cmd *cobra.Command, args []string) {
		showSummary()
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryByFlag, "by", "total", "grouping: total, day, week or task")
}

func showSummary() {
	grouping, err := summary.ParseGrouping(summaryByFlag)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	st, cfg, ok := loadStore()
	if !ok {
		return
	}

	// Day and week buckets follow the configured timezone
	entries := st.Entries()
	for i := range entries {
		entries[i].Timestamp = cfg.Localize(entries[i].Timestamp)
	}

	rows := summary.Summarize(entries, grouping)
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries to summarize")
		return
	}

	if grouping == summary.GroupTotal {
		row := rows[0]
		_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n",
			entry.FormatDuration(row.Total), row.Count, pluralize("entry", row.Count))
		return
	}

	keyWidth := 0
	for _, row := range rows {
		if len(row.Key) > keyWidth {
			keyWidth = len(row.Key)
		}
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(deps.Stdout, "%-*s  %s (%d %s)\n",
			keyWidth, row.Key,
			entry.FormatDuration(row.Total),
			row.Count, pluralize("entry", row.Count))
	}
}
