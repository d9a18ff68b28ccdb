package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/storage"
)

// Journal layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the page list sidebar
	sidebarWidth       = 20  // Width of page list sidebar
	maxRuns            = 100 // Max runs to load
)

// JournalPage is one tab of the journal.
type JournalPage int

const (
	PageRuns JournalPage = iota
	PageOutcomes
	PagePuzzles
)

var journalPages = []JournalPage{PageRuns, PageOutcomes, PagePuzzles}

// Title returns the page name.
func (p JournalPage) Title() string {
	switch p {
	case PageRuns:
		return "Recent runs"
	case PageOutcomes:
		return "Endings"
	case PagePuzzles:
		return "Puzzles"
	default:
		return "Unknown"
	}
}

// JournalKeyMap defines the key bindings for the journal.
type JournalKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for the journal screen: past runs,
// how they ended and which puzzles are solved.
type JournalModel struct {
	store       *storage.Store
	player      string // only this player's puzzles are listed; empty for all
	page        int
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        JournalKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewJournalModel creates a new journal model.
func NewJournalModel(store *storage.Store, player string, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		store:       store,
		player:      player,
		keys:        DefaultJournalKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *JournalModel) current() JournalPage {
	return journalPages[m.page]
}

// columns returns the table columns of the current page.
func (m *JournalModel) columns() []table.Column {
	switch m.current() {
	case PageOutcomes:
		return []table.Column{
			{Title: "Ending", Width: 14},
			{Title: "Runs", Width: 8},
		}
	case PagePuzzles:
		return []table.Column{
			{Title: "Puzzle", Width: 40},
			{Title: "Solved", Width: 8},
		}
	default:
		return []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Player", Width: 10},
			{Title: "Ending", Width: 10},
			{Title: "Room", Width: 7},
			{Title: "Solved", Width: 6},
			{Title: "Wrong", Width: 6},
			{Title: "Time", Width: 7},
		}
	}
}

// createTable creates a new table for the current page.
func (m *JournalModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("52")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rows of the current page from the store.
func (m *JournalModel) load() {
	m.rows = nil
	m.loadErr = nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	switch m.current() {
	case PageRuns:
		runs, err := m.store.RecentRuns(maxRuns)
		m.loadErr = err
		for _, r := range runs {
			m.rows = append(m.rows, table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				r.Player,
				string(r.Outcome),
				r.Room,
				fmt.Sprintf("%d", r.Solved),
				fmt.Sprintf("%d", r.WrongAnswers),
				formatDuration(r.Duration),
			})
		}

	case PageOutcomes:
		counts, err := m.store.OutcomeCounts()
		m.loadErr = err
		for _, o := range []core.Outcome{core.OutcomeEscaped, core.OutcomeExtracted, core.OutcomeBound, core.OutcomeQuit} {
			m.rows = append(m.rows, table.Row{string(o), fmt.Sprintf("%d", counts[o])})
		}

	case PagePuzzles:
		flags, err := m.store.Flags()
		m.loadErr = err
		keys := make([]string, 0, len(flags))
		for k := range flags {
			if m.player != "" && !strings.HasPrefix(k, m.player+":") {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			solved := "no"
			if flags[k] {
				solved = "yes"
			}
			m.rows = append(m.rows, table.Row{k, solved})
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rows.
func (m *JournalModel) updateTableRows() {
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// switchPage moves delta pages and reloads.
func (m *JournalModel) switchPage(delta int) {
	n := len(journalPages)
	m.page = ((m.page+delta)%n + n) % n
	// Columns must change before rows of a different width are set
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.load()
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.Right):
			m.switchPage(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.Left):
			m.switchPage(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("JOURNAL - %s", m.current().Title())
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

// renderWideLayout renders the journal with a page list sidebar.
func (m JournalModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range journalPages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.page {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + p.Title()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the journal with page tabs above the table.
func (m JournalModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("52")).
		Padding(0, 1)

	tabs := make([]string, len(journalPages))
	for i, p := range journalPages {
		if i == m.page {
			tabs[i] = activeTabStyle.Render(p.Title())
		} else {
			tabs[i] = tabStyle.Render(" " + p.Title() + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current().Title())
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not read the journal:\n" + m.loadErr.Error())
	}
	if len(m.rows) == 0 {
		return emptyStyle.Render("Nothing written here yet.\nEnter Purgatory to fill these pages.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m JournalModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m JournalModel) IsQuitting() bool {
	return m.quitting
}

// RunJournal runs the journal screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunJournal(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	model := NewJournalModel(store, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(JournalModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
