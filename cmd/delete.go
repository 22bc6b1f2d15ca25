package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"timelog/internal/entry"
	"timelog/internal/store"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a log entry by index",
	Long: `Delete a log entry by its index number, as shown in list output
(starting from 0). Entries after the deleted one shift down by one so the
indices stay dense.
A confirmation prompt is shown unless --yes is specified.

Example:
  timelog delete 3
  timelog delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteEntry(args[0])
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
}

// deleteEntry handles the deletion of a log entry
func deleteEntry(indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid index '%s'. Index must be a number\n", indexStr)
		deps.Exit(1)
		return
	}

	st, cfg, ok := loadStore()
	if !ok {
		return
	}

	if st.Len() == 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No entries to delete")
		deps.Exit(1)
		return
	}

	entryToDelete, err := st.Get(index)
	if err != nil {
		var indexErr *store.IndexError
		if errors.As(err, &indexErr) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entry: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  [%d] %s  %s (%s)\n",
		index,
		cfg.Localize(entryToDelete.Timestamp).Format(cfg.DateFormat),
		entryToDelete.Description,
		entry.FormatDuration(entryToDelete.Elapsed))

	if !yesFlag {
		if !promptConfirmation() {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	deleted, err := st.Delete(index)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to delete entry: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s (%s)\n", deleted.Description, entry.FormatDuration(deleted.Elapsed))
}

// promptConfirmation asks the user to confirm deletion.
// Returns true only on an explicit 'y' or 'Y'.
func promptConfirmation() bool {
	_, _ = fmt.Fprint(deps.Stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
