package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"timelog/internal/timer"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <description>",
	Short: "Start the task timer",
	Long: `Start timing a task. The timer runs until 'timelog stop', which logs
the finished task as an entry. Use 'timelog pause' and 'timelog resume' to
exclude breaks from the elapsed time.

Example:
  timelog start writing docs`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		startTimer(args)
	},
}

func startTimer(args []string) {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Description cannot be empty")
		deps.Exit(1)
		return
	}

	timerPath, ok := timerStatePath()
	if !ok {
		return
	}

	existing, err := timer.Load(timerPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load timer state")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if existing != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: A timer is already running for %q (started %s)\n",
			existing.Description, existing.StartedAt.Format("15:04"))
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Stop it with 'timelog stop' first")
		deps.Exit(1)
		return
	}

	state := timer.State{
		StartedAt:   time.Now(),
		Description: description,
	}
	if err := timer.Save(timerPath, state); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save timer state")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Timer started: %s\n", description)
}

// timerStatePath resolves the timer state file path, reporting failures.
func timerStatePath() (string, bool) {
	path, err := deps.TimerPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine timer state location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return "", false
	}
	return path, true
}
