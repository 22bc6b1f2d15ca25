package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"timelog/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the log interactively",
	Long: `Open the interactive terminal interface: navigate entries, add and
delete them, and view aggregated summaries.`,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func runTUI() {
	st, cfg, ok := loadStore()
	if !ok {
		return
	}

	if err := tui.Run(st, cfg); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Interactive mode failed")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
