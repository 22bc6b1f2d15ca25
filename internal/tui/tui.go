// Package tui provides the interactive terminal interface for the time log.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"timelog/internal/config"
	"timelog/internal/entry"
	"timelog/internal/store"
	"timelog/internal/summary"
	"timelog/internal/tui/ui"
)

// mode represents the interaction state machine's current state
type mode int

const (
	modeListing mode = iota
	modeConfirmDelete
	modeSummary
	modeAdd
)

// Model is the root TUI model. It owns the store handle for the session;
// every event is fully processed (state transition plus re-render) before
// the next one is read, so no locking is needed.
type Model struct {
	store *store.Store
	cfg   config.Config

	// UI state
	mode    mode
	cursor  int // -1 when the store is empty
	pending int // index awaiting delete confirmation
	width   int
	height  int
	err     error

	// Add form state
	descInput    textinput.Model
	durInput     textinput.Model
	focusedInput int // 0 = description, 1 = duration

	styles ui.Styles
	keys   ui.KeyMap
}

// New creates the TUI model for a loaded store.
func New(st *store.Store, cfg config.Config) Model {
	descInput := textinput.New()
	descInput.Placeholder = "Task description..."
	descInput.CharLimit = 200
	descInput.Width = 50

	durInput := textinput.New()
	durInput.Placeholder = "Duration (e.g., 1h30m, 45m, 90s)..."
	durInput.CharLimit = 20
	durInput.Width = 20

	cursor := -1
	if st.Len() > 0 {
		cursor = 0
	}

	return Model{
		store:     st,
		cfg:       cfg,
		cursor:    cursor,
		descInput: descInput,
		durInput:  durInput,
		styles:    ui.NewThemeProvider(ui.DefaultTheme).Styles(),
		keys:      ui.DefaultKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Resize re-renders in place; the state is unchanged.
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeSummary:
			return m.updateSummary(msg)
		default:
			return m.updateListing(msg)
		}
	}

	return m, nil
}

// updateListing handles events in the Listing state.
func (m Model) updateListing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		// No selection means nothing to delete; stay in Listing.
		if m.cursor >= 0 && m.cursor < m.store.Len() {
			m.pending = m.cursor
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Summary):
		m.mode = modeSummary
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = modeAdd
		m.err = nil
		m.descInput.SetValue("")
		m.durInput.SetValue("")
		m.focusedInput = 0
		m.descInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// updateConfirmDelete handles the delete confirmation state. The store is
// only ever mutated from the confirm branch here.
func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if _, err := m.store.Delete(m.pending); err != nil {
			m.err = err
		} else {
			m.err = nil
		}
		m.clampCursor()
		m.mode = modeListing
		return m, nil
	case "n", "N", "esc":
		m.mode = modeListing
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateSummary handles the summary view: toggling again or any navigation
// returns to Listing.
func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Summary),
		key.Matches(msg, m.keys.Up),
		key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.Back):
		m.mode = modeListing
	}
	return m, nil
}

// updateAdd handles the new-entry form.
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.mode = modeListing
		m.err = nil
		m.descInput.Blur()
		m.durInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		desc := strings.TrimSpace(m.descInput.Value())
		dur := strings.TrimSpace(m.durInput.Value())
		if desc == "" || dur == "" {
			return m, nil
		}
		elapsed, err := entry.ParseDuration(dur)
		if err != nil {
			m.err = err
			return m, nil
		}
		index, err := m.store.Append(desc, elapsed)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.cursor = index
		m.mode = modeListing
		m.descInput.Blur()
		m.durInput.Blur()
		return m, nil

	case msg.String() == "tab":
		if m.focusedInput == 0 {
			m.focusedInput = 1
			m.descInput.Blur()
			m.durInput.Focus()
		} else {
			m.focusedInput = 0
			m.durInput.Blur()
			m.descInput.Focus()
		}
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	if m.focusedInput == 0 {
		m.descInput, cmd = m.descInput.Update(msg)
	} else {
		m.durInput, cmd = m.durInput.Update(msg)
	}
	return m, cmd
}

// displayEntries returns a snapshot of the entries with timestamps
// converted to the configured timezone.
func (m Model) displayEntries() []entry.Entry {
	entries := m.store.Entries()
	for i := range entries {
		entries[i].Timestamp = m.cfg.Localize(entries[i].Timestamp)
	}
	return entries
}

// clampCursor keeps the selection within the live entry range after a
// deletion, or clears it when the store is empty.
func (m *Model) clampCursor() {
	if m.store.Len() == 0 {
		m.cursor = -1
		return
	}
	if m.cursor >= m.store.Len() {
		m.cursor = m.store.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var view string
	switch m.mode {
	case modeAdd:
		view = m.renderAddForm()
	case modeConfirmDelete:
		view = m.renderDeleteConfirm()
	case modeSummary:
		view = m.renderSummary()
	default:
		view = m.renderListing()
	}

	return m.styles.App.Render(view)
}

// renderListing renders the entry list with the selection marker.
func (m Model) renderListing() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Time log"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	entries := m.displayEntries()
	if len(entries) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No entries yet"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press 'a' to add an entry"))
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
		return b.String()
	}

	for i, line := range RenderEntryLines(entries, m.contentWidth(), m.cursor, m.cfg.DateFormat) {
		style := m.styles.EntryNormal
		if i == m.cursor {
			style = m.styles.EntrySelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", min(50, m.contentWidth())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s (%d %s)\n",
		entry.FormatDuration(m.store.Total()),
		len(entries),
		pluralize("entry", len(entries))))

	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog for the
// pending entry.
func (m Model) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Entry"))
	b.WriteString("\n\n")

	if e, err := m.store.Get(m.pending); err == nil {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this entry?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Description: "))
		b.WriteString(m.styles.StatValue.Render(e.Description))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Duration: "))
		b.WriteString(m.styles.StatValue.Render(entry.FormatDuration(e.Elapsed)))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Logged: "))
		b.WriteString(m.styles.StatValue.Render(m.cfg.Localize(e.Timestamp).Format(m.cfg.DateFormat)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// renderSummary renders the aggregated views in place of the raw entries.
func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Summary"))
	b.WriteString("\n")

	entries := m.displayEntries()
	if len(entries) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No entries to summarize"))
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
		return b.String()
	}

	sections := []struct {
		title string
		rows  []summary.Row
	}{
		{"Total", summary.Summarize(entries, summary.GroupTotal)},
		{"By day", summary.Summarize(entries, summary.GroupByDay)},
		{"By week", summary.Summarize(entries, summary.GroupByWeek)},
		{"By task", summary.Summarize(entries, summary.GroupByTask)},
	}

	for _, section := range sections {
		b.WriteString(m.styles.StatLabel.Render(section.title))
		b.WriteString("\n")
		for _, line := range RenderSummaryLines(section.rows, m.contentWidth()) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderAddForm renders the new entry form.
func (m Model) renderAddForm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("New Entry"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	descLabel := "Description:"
	if m.focusedInput == 0 {
		descLabel = "▸ Description:"
	}
	b.WriteString(m.styles.InputLabel.Render(descLabel))
	b.WriteString("\n")
	b.WriteString(m.descInput.View())
	b.WriteString("\n\n")

	durLabel := "Duration:"
	if m.focusedInput == 1 {
		durLabel = "▸ Duration:"
	}
	b.WriteString(m.styles.InputLabel.Render(durLabel))
	b.WriteString("\n")
	b.WriteString(m.durInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.StatLabel.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

// renderStatusBar renders the key hints at the bottom.
func (m Model) renderStatusBar() string {
	var parts []string
	switch m.mode {
	case modeSummary:
		parts = append(parts, m.renderKeyHelp("s", "back"))
	default:
		parts = append(parts, m.renderKeyHelp("j/k", "navigate"))
		parts = append(parts, m.renderKeyHelp("a", "add"))
		parts = append(parts, m.renderKeyHelp("d", "delete"))
		parts = append(parts, m.renderKeyHelp("s", "summary"))
	}
	parts = append(parts, m.renderKeyHelp("q", "quit"))

	return m.styles.StatusBar.Render(strings.Join(parts, "  "))
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// contentWidth is the width available inside the app padding.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// Run starts the interactive interface over an already-loaded store. All
// mutations are flushed synchronously by the store, so quitting needs no
// extra teardown beyond leaving the alt screen.
func Run(st *store.Store, cfg config.Config) error {
	p := tea.NewProgram(New(st, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
