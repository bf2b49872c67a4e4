package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bear-tower/internal/games/tower"
	"github.com/vovakirdan/bear-tower/internal/i18n"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/storage"
)

// maxRuns is the number of runs loaded per stage.
const maxRuns = 100

// ScoreboardKeyMap defines the key bindings for the records board.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextStage key.Binding
	PrevStage key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextStage, k.PrevStage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextStage, k.PrevStage},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextStage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next stage"),
		),
		PrevStage: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev stage"),
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

// ScoreboardModel is the Bubble Tea model for the records board.
type ScoreboardModel struct {
	stages    []registry.GameInfo
	cursor    int
	store     *storage.Store
	runs      []storage.Run
	stats     *storage.StageStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	text      *i18n.Printer
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a records board. A nil store shows no runs.
func NewScoreboardModel(store *storage.Store, lang string, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		stages: registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		text:   i18n.New(lang),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(m.stages) > 0 {
		m.loadRuns(m.stages[0].ID)
	}
	return m
}

// createTable creates the run table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Height", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Falls", Width: 6},
		{Title: "Clear", Width: 6},
		{Title: "Level", Width: 7},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}
	if m.width < 80 {
		// Drop player and date on narrow terminals.
		columns = columns[:6]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// loadRuns loads records and stats for a stage.
func (m *ScoreboardModel) loadRuns(stageID string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(stageID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(stageID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows refreshes the table from the loaded runs.
func (m *ScoreboardModel) updateTableRows() {
	wide := len(m.table.Columns()) > 6
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		mark := ""
		if r.Cleared {
			mark = "★"
		}
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0fm", r.MaxHeight/tower.UnitsPerMetre),
			formatDuration(r.Duration),
			fmt.Sprintf("%d", r.Falls),
			mark,
			r.Difficulty,
		}
		if wide {
			row = append(row, r.Player, r.CreatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the records board.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records board.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextStage):
			if len(m.stages) > 0 {
				m.cursor = (m.cursor + 1) % len(m.stages)
				m.loadRuns(m.stages[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevStage):
			if len(m.stages) > 0 {
				m.cursor = (m.cursor - 1 + len(m.stages)) % len(m.stages)
				m.loadRuns(m.stages[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records board.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.text.T(i18n.Records)), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.stages))
	for i, s := range m.stages {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(s.Title)
		} else {
			tabs[i] = tabStyle.Render(s.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")

	if st := m.stats; st != nil && st.Runs > 0 {
		line := fmt.Sprintf("%d runs · %d clears · %s",
			st.Runs, st.Clears, m.text.T(i18n.Best, st.BestHeight/tower.UnitsPerMetre))
		if st.BestClear > 0 {
			line += " · " + formatDuration(st.BestClear)
		}
		b.WriteString(centerText(helpStyle.Render(line), m.width))
	}
	b.WriteString("\n")

	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or the empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render(m.text.T(i18n.NoRecords))
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// formatDuration renders seconds as mm:ss.t.
func formatDuration(secs float64) string {
	tenths := int(secs * 10)
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
