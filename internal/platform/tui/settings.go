package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/i18n"
)

// volumeStep is the change per left/right press.
const volumeStep = 10

var difficulties = []string{
	string(config.DifficultyEasy),
	string(config.DifficultyNormal),
	string(config.DifficultyHard),
}

type settingsRow int

const (
	rowBGM settingsRow = iota
	rowSE
	rowLanguage
	rowDifficulty
	rowDebug
	rowBack
	rowCount
)

// SettingsKeyMap defines the key bindings of the settings screen.
type SettingsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Back  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Left, k.Right}, {k.Back}}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←", "decrease")),
		Right: key.NewBinding(key.WithKeys("right", "l", "d", "enter", " "), key.WithHelp("→/enter", "change")),
		Back:  key.NewBinding(key.WithKeys("esc", "b", "q"), key.WithHelp("esc", "back")),
	}
}

// SettingsModel edits player preferences. The host reads Settings after each
// update to persist and apply changes.
type SettingsModel struct {
	settings config.Settings
	cursor   settingsRow
	keys     SettingsKeyMap
	help     help.Model
	width    int
	height   int
	done     bool
}

// NewSettingsModel creates a settings screen for s.
func NewSettingsModel(s config.Settings, width, height int) SettingsModel {
	h := help.New()
	h.Width = width
	return SettingsModel{
		settings: s.Normalize(),
		keys:     DefaultSettingsKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd { return nil }

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.done = true
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < rowCount-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Left):
			m.adjust(-1)
		case key.Matches(msg, m.keys.Right):
			if m.cursor == rowBack {
				m.done = true
				break
			}
			m.adjust(1)
		}
	}
	return m, nil
}

// adjust changes the value under the cursor by one step in direction dir.
func (m *SettingsModel) adjust(dir int) {
	s := m.settings
	switch m.cursor {
	case rowBGM:
		s.BGMVolume += dir * volumeStep
	case rowSE:
		s.SEVolume += dir * volumeStep
	case rowLanguage:
		s.Language = cycle(i18n.Supported(), s.Language, dir)
	case rowDifficulty:
		s.Difficulty = cycle(difficulties, s.Difficulty, dir)
	case rowDebug:
		s.Debug = !s.Debug
	default:
		return
	}
	m.settings = s.Normalize()
}

// cycle returns the neighbour of cur in values, wrapping around.
// An unknown cur yields the first value.
func cycle(values []string, cur string, dir int) string {
	for i, v := range values {
		if v == cur {
			n := len(values)
			return values[((i+dir)%n+n)%n]
		}
	}
	return values[0]
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	text := i18n.New(m.settings.Language)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	rows := []string{
		fmt.Sprintf("%-14s %s", text.T(i18n.BGMVolume), volumeBar(m.settings.BGMVolume)),
		fmt.Sprintf("%-14s %s", text.T(i18n.SEVolume), volumeBar(m.settings.SEVolume)),
		fmt.Sprintf("%-14s < %s >", text.T(i18n.Language), m.settings.Language),
		fmt.Sprintf("%-14s < %s >", text.T(i18n.Difficulty), m.settings.Difficulty),
		fmt.Sprintf("%-14s < %t >", "Debug", m.settings.Debug),
		text.T(i18n.Back),
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(text.T(i18n.Settings)), m.width))
	b.WriteString("\n\n")
	for i, r := range rows {
		if settingsRow(i) == m.cursor {
			r = selStyle.Render("> " + r)
		} else {
			r = "  " + r
		}
		b.WriteString(centerText(r, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func volumeBar(v int) string {
	filled := v / volumeStep
	return fmt.Sprintf("[%s%s] %3d", strings.Repeat("■", filled), strings.Repeat("·", 10-filled), v)
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() config.Settings { return m.settings }

// Done reports whether the player left the screen.
func (m SettingsModel) Done() bool { return m.done }
