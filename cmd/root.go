package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"timelog/internal/config"
	"timelog/internal/entry"
	"timelog/internal/store"
)

var fileFlag string

var rootCmd = &cobra.Command{
	Use:   "timelog",
	Short: "A personal task and time tracking log",
	Long: `timelog records discrete activities with a start time, description and
elapsed duration, and keeps them in an indexed CSV log.

Usage:
  timelog <description> for <duration>    Log a new entry (e.g. timelog review PR for 45m)
  timelog                                 List all entries with their indices
  timelog delete <index>                  Delete an entry (with confirmation)
  timelog summary --by day                Aggregated totals
  timelog start <description>             Start the task timer
  timelog stop                            Stop the timer and log the entry
  timelog tui                             Interactive mode

Duration format: Xh (hours), Ym (minutes), Zs (seconds) or combined
Examples: 2h, 30m, 90s, 1h30m`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			// No args: list the log
			listEntries()
			return
		}

		// With args: create a new entry
		createEntry(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fileFlag, "file", "", "path to the log file (overrides config)")

	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"timelog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the configuration, reporting failures to stderr.
// The bool result is false when the command should stop.
func loadConfig() (config.Config, bool) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return config.Config{}, false
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return config.Config{}, false
	}

	return cfg, true
}

// resolveLogPath returns the log file path, honoring the --file override.
func resolveLogPath(cfg config.Config) (string, bool) {
	if fileFlag != "" {
		return fileFlag, true
	}

	path, err := cfg.ResolveLogPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine log file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return "", false
	}
	return path, true
}

// loadStore loads the log store strictly, reporting corrupt records with
// their line numbers.
func loadStore() (*store.Store, config.Config, bool) {
	cfg, ok := loadConfig()
	if !ok {
		return nil, config.Config{}, false
	}

	path, ok := resolveLogPath(cfg)
	if !ok {
		return nil, config.Config{}, false
	}

	st, err := store.Load(path)
	if err != nil {
		var corrupt *store.CorruptError
		if errors.As(err, &corrupt) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Corrupt log record at line %d\n", corrupt.Line)
			if corrupt.Record != "" {
				_, _ = fmt.Fprintf(deps.Stderr, "Record: %s\n", corrupt.Record)
			}
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", corrupt.Err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'timelog validate' to see all corrupt records")
		} else {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the log file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		}
		deps.Exit(1)
		return nil, config.Config{}, false
	}

	return st, cfg, true
}

// listEntries prints all entries with their indices and a total.
func listEntries() {
	st, cfg, ok := loadStore()
	if !ok {
		return
	}

	entries := st.Entries()
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries logged yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Log one with: timelog <description> for <duration>")
		return
	}

	for i, e := range entries {
		_, _ = fmt.Fprintf(deps.Stdout, "[%d] %s  %s (%s)\n",
			i,
			cfg.Localize(e.Timestamp).Format(cfg.DateFormat),
			e.Description,
			entry.FormatDuration(e.Elapsed))
	}

	_, _ = fmt.Fprintf(deps.Stdout, "\nTotal: %s (%d %s)\n",
		entry.FormatDuration(st.Total()),
		len(entries),
		pluralize("entry", len(entries)))
}

// createEntry parses "<description> for <duration>" and appends the entry.
func createEntry(args []string) {
	rawInput := strings.Join(args, " ")

	// The last "for" separates the description from the duration
	lastForIdx := strings.LastIndex(strings.ToLower(rawInput), " for ")
	if lastForIdx == -1 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid format. Missing 'for <duration>'")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: timelog <description> for <duration>")
		_, _ = fmt.Fprintln(deps.Stderr, "Example: timelog review PR for 45m")
		deps.Exit(1)
		return
	}

	description := strings.TrimSpace(rawInput[:lastForIdx])
	durationStr := strings.TrimSpace(rawInput[lastForIdx+5:]) // +5 for " for "

	if description == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Description cannot be empty")
		deps.Exit(1)
		return
	}

	elapsed, err := entry.ParseDuration(durationStr)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid duration '%s'\n", durationStr)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use format like '2h', '30m' or '1h30m', max 24h")
		deps.Exit(1)
		return
	}

	st, _, ok := loadStore()
	if !ok {
		return
	}

	index, err := st.Append(description, elapsed)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save entry to the log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged [%d]: %s (%s)\n", index, description, entry.FormatDuration(elapsed))
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
