package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neuroflap/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the run list sidebar
	sidebarWidth       = 22 // Width of run list sidebar
	maxRuns            = 50 // Max runs to load
)

// HistoryStore reads training history. *storage.Store implements it.
type HistoryStore interface {
	RecentRuns(limit int) ([]storage.Run, error)
	Generations(runID string) ([]storage.Generation, error)
}

var _ HistoryStore = (*storage.Store)(nil)

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextRun key.Binding
	PrevRun key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRun, k.PrevRun, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextRun, k.PrevRun},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextRun: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next run"),
		),
		PrevRun: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel shows the generations of stored training runs.
type HistoryModel struct {
	store       HistoryStore
	runs        []storage.Run
	runCursor   int
	gens        []storage.Generation
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
	err         error
}

// NewHistoryModel loads the recent runs and selects initialRun when it is
// among them, otherwise the most recent run.
func NewHistoryModel(store HistoryStore, initialRun string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	runs, err := store.RecentRuns(maxRuns)
	if err != nil {
		m.err = err
		return m
	}
	m.runs = runs
	for i, r := range runs {
		if r.ID == initialRun {
			m.runCursor = i
		}
	}
	if len(m.runs) > 0 {
		m.loadGenerations()
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Gen", Width: 5},
		{Title: "Best", Width: 9},
		{Title: "Mean", Width: 9},
		{Title: "StdDev", Width: 8},
		{Title: "Score", Width: 6},
		{Title: "Ticks", Width: 7},
		{Title: "Species", Width: 7},
		{Title: "State", Width: 11},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadGenerations loads the generations of the selected run.
func (m *HistoryModel) loadGenerations() {
	gens, err := m.store.Generations(m.runs[m.runCursor].ID)
	if err != nil {
		m.err = err
		m.gens = nil
	} else {
		m.err = nil
		m.gens = gens
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current generations.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(generationRows(m.gens))
	m.table.GotoTop()
}

func generationRows(gens []storage.Generation) []table.Row {
	rows := make([]table.Row, len(gens))
	for i, g := range gens {
		rows[i] = table.Row{
			fmt.Sprintf("%d", g.Generation),
			fmt.Sprintf("%.1f", g.BestFitness),
			fmt.Sprintf("%.1f", g.MeanFitness),
			fmt.Sprintf("%.2f", g.StdDev),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d", g.Ticks),
			fmt.Sprintf("%d", g.Species),
			g.State,
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextRun):
			if len(m.runs) > 0 {
				m.runCursor = (m.runCursor + 1) % len(m.runs)
				m.loadGenerations()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevRun):
			if len(m.runs) > 0 {
				m.runCursor--
				if m.runCursor < 0 {
					m.runCursor = len(m.runs) - 1
				}
				m.loadGenerations()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SelectedRun returns the run whose generations are shown, or nil.
func (m HistoryModel) SelectedRun() *storage.Run {
	if len(m.runs) == 0 {
		return nil
	}
	return &m.runs[m.runCursor]
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "TRAINING HISTORY"
	if r := m.SelectedRun(); r != nil {
		title = fmt.Sprintf("TRAINING HISTORY - %s (%s)", shortID(r.ID), r.Status)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the run list next to the generations table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Runs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, r := range m.runs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.runCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(fmt.Sprintf("%s%s %d", cursor, shortID(r.ID), r.BestScore)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the selected run id above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if r := m.SelectedRun(); r != nil {
		b.WriteString(centerText(fmt.Sprintf("< %s  %d/%d >", shortID(r.ID), m.runCursor+1, len(m.runs)), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load history:\n" + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No training runs recorded yet.\nRun `neuroflap train` to start one.")
	case len(m.gens) == 0:
		return emptyStyle.Render("This run has no finished generations.")
	}
	return m.table.View()
}

// centerText pads every line of text to center it within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunHistory shows the history view until the user quits.
func RunHistory(store HistoryStore, initialRun string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, initialRun, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
