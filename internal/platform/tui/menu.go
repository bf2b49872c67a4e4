package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/i18n"
	"github.com/vovakirdan/bear-tower/internal/registry"
)

// MenuChoice is what the main menu hands back to its host.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceRecords
	ChoiceSettings
	ChoiceQuit
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	Label  string
	Choice MenuChoice
	GameID string // Set for ChoicePlay
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	text      *i18n.Printer
	keyMapper *KeyMapper
	chosen    *MenuItem
}

// NewMenuModel builds the menu in the given language. The debug map is
// listed only when debug is on.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	text := i18n.New(cfg.Language)
	items := []MenuItem{{Label: text.T(i18n.Start), Choice: ChoicePlay, GameID: "tower"}}
	if cfg.Debug {
		for _, g := range registry.List() {
			if g.ID != "tower" {
				items = append(items, MenuItem{Label: g.Title, Choice: ChoicePlay, GameID: g.ID})
			}
		}
	}
	items = append(items,
		MenuItem{Label: text.T(i18n.Records), Choice: ChoiceRecords},
		MenuItem{Label: text.T(i18n.Settings), Choice: ChoiceSettings},
		MenuItem{Label: text.T(i18n.Quit), Choice: ChoiceQuit},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		text:      text,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.chosen = &MenuItem{Choice: ChoiceQuit}

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		m.chosen = &item
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	top := max((m.height-len(m.items)-6)/2, 0)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText(titleStyle.Render(m.text.T(i18n.Title)), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label + "  "
		if i == m.cursor {
			line = selStyle.Render(fmt.Sprintf("> %s <", item.Label))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render("↑/↓  Enter  Q"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected item, or nil while the menu is open.
func (m MenuModel) Chosen() *MenuItem {
	return m.chosen
}

// centerText centers every line of text within the given width.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
