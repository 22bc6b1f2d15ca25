package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"timelog/internal/entry"
	"timelog/internal/timer"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running timer",
	Long:  `Pause the running timer. Paused time is excluded from the elapsed time logged on stop.`,
	Run: func(cmd *cobra.Command, args []string) {
		pauseTimer()
	},
}

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused timer",
	Long:  `Resume a paused timer, folding the finished pause into the paused total.`,
	Run: func(cmd *cobra.Command, args []string) {
		resumeTimer()
	},
}

// loadRunningTimer loads the timer state, reporting the no-timer case.
func loadRunningTimer(timerPath string) (*timer.State, bool) {
	state, err := timer.Load(timerPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load timer state")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return nil, false
	}
	if state == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No timer is running")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start one with 'timelog start <description>'")
		deps.Exit(1)
		return nil, false
	}
	return state, true
}

func pauseTimer() {
	timerPath, ok := timerStatePath()
	if !ok {
		return
	}
	state, ok := loadRunningTimer(timerPath)
	if !ok {
		return
	}

	if !state.Running() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Timer is already paused")
		deps.Exit(1)
		return
	}

	state.Pause(time.Now())
	if err := timer.Save(timerPath, *state); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save timer state")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Timer paused: %s (worked %s so far)\n",
		state.Description, entry.FormatDuration(state.Elapsed(time.Now())))
}

func resumeTimer() {
	timerPath, ok := timerStatePath()
	if !ok {
		return
	}
	state, ok := loadRunningTimer(timerPath)
	if !ok {
		return
	}

	if state.Running() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Timer is not paused")
		deps.Exit(1)
		return
	}

	state.Resume(time.Now())
	if err := timer.Save(timerPath, *state); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save timer state")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Timer resumed: %s\n", state.Description)
}
