package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"timelog/internal/store"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check log file health",
	Long: `Read the log file leniently and report any records that could not
be parsed, with their line numbers. Exits non-zero when corrupt records
are found.`,
	Run: func(cmd *cobra.Command, args []string) {
		validateLog()
	},
}

func validateLog() {
	cfg, ok := loadConfig()
	if !ok {
		return
	}
	path, ok := resolveLogPath(cfg)
	if !ok {
		return
	}

	st, warnings, err := store.LoadSkipCorrupt(path)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the log file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Log file: %s\n", path)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid entries: %d\n", st.Len())
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupt records: %d\n", len(warnings))

	if len(warnings) == 0 {
		return
	}

	for _, w := range warnings {
		_, _ = fmt.Fprintf(deps.Stdout, "  line %d: %s\n", w.Line, w.Message)
		if w.Record != "" {
			_, _ = fmt.Fprintf(deps.Stdout, "    record: %s\n", w.Record)
		}
	}
	deps.Exit(1)
}
