package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App       lipgloss.Style
	ViewTitle lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Labels and values (summary, confirmation dialog)
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input
	InputLabel lipgloss.Style

	// Dialog
	Dialog lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStylesFromRegistry creates a Styles struct using colors from a
// bubbletint registry. The registry's current tint supplies the palette.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	secondary := r.Cyan()
	muted := r.BrightBlack()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		EntrySelected: lipgloss.NewStyle().
			Background(muted).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),

		StatusBar: lipgloss.NewStyle().
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted),
		StatValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		InputLabel: lipgloss.NewStyle().
			Foreground(muted),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
	}
}
