package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"timelog/internal/entry"
	"timelog/internal/timer"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer and log the entry",
	Long: `Stop the running timer and append the finished task to the log.
The logged elapsed time excludes any paused time.`,
	Run: func(cmd *cobra.Command, args []string) {
		stopTimer()
	},
}

func stopTimer() {
	timerPath, ok := timerStatePath()
	if !ok {
		return
	}
	state, ok := loadRunningTimer(timerPath)
	if !ok {
		return
	}

	now := time.Now()
	// Fold an ongoing pause into the total before computing elapsed time
	state.Resume(now)
	elapsed := state.Elapsed(now)
	paused := state.Paused(now)

	st, _, ok := loadStore()
	if !ok {
		return
	}

	e := entry.Entry{
		Timestamp:   state.StartedAt,
		Description: state.Description,
		Elapsed:     elapsed,
		Paused:      paused,
	}
	index, err := st.AppendEntry(e)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save entry to the log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: The timer is still running; fix the log and stop again")
		deps.Exit(1)
		return
	}

	if err := timer.Clear(timerPath); err != nil {
		// The entry is saved; only the stale state file remains
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Entry saved but failed to clear timer state")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged [%d]: %s (%s)\n",
		index, state.Description, entry.FormatDuration(elapsed))
}
