package cmd

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"timelog/internal/store"
)

// exportCmd represents the export parent command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export log entries for programmatic use",
	Long: `Export log entries for programmatic use, backup or migration.

Examples:
  timelog export csv                 Export all entries as CSV
  timelog export csv > entries.csv   Export to file`,
}

// exportCSVCmd represents the export csv command
var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export log entries as CSV",
	Long:  `Write all log entries to stdout as CSV, in the log file's column layout.`,
	Run: func(cmd *cobra.Command, args []string) {
		exportCSV()
	},
}

func init() {
	exportCmd.AddCommand(exportCSVCmd)
}

func exportCSV() {
	st, _, ok := loadStore()
	if !ok {
		return
	}

	writer := csv.NewWriter(deps.Stdout)

	header := []string{"Index", "Start Time", "Task Description", "Elapsed Time (seconds)", "Paused Duration (seconds)"}
	if err := writer.Write(header); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write CSV header")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	for i, e := range st.Entries() {
		row := []string{
			strconv.Itoa(i),
			e.Timestamp.Format(store.TimeLayout),
			e.Description,
			strconv.FormatInt(int64(e.Elapsed/time.Second), 10),
			strconv.FormatInt(int64(e.Paused/time.Second), 10),
		}
		if err := writer.Write(row); err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write CSV row")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to flush CSV output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
