package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bear-tower/internal/config"
)

func press(m SettingsModel, msgs ...tea.KeyMsg) SettingsModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SettingsModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

func TestSettingsVolume(t *testing.T) {
	m := NewSettingsModel(config.DefaultSettings(), 80, 24)

	m = press(m, keyRight)
	if got := m.Settings().BGMVolume; got != 80 {
		t.Errorf("BGMVolume = %d, expected 80", got)
	}

	m = press(m, keyRight, keyRight, keyRight, keyRight)
	if got := m.Settings().BGMVolume; got != 100 {
		t.Errorf("BGMVolume = %d, expected clamp to 100", got)
	}

	m = press(m, keyDown, keyLeft, keyLeft)
	if got := m.Settings().SEVolume; got != 50 {
		t.Errorf("SEVolume = %d, expected 50", got)
	}
}

func TestSettingsCycle(t *testing.T) {
	s := config.DefaultSettings()
	s.Language = "en"
	m := NewSettingsModel(s, 80, 24)

	// Language row.
	m = press(m, keyDown, keyDown)
	m = press(m, keyRight)
	if got := m.Settings().Language; got != "ko" {
		t.Errorf("Language = %q, expected ko", got)
	}
	m = press(m, keyLeft, keyLeft)
	if got := m.Settings().Language; got != "ja" {
		t.Errorf("Language = %q, expected wrap to ja", got)
	}

	m = press(m, keyDown, keyRight)
	if got := m.Settings().Difficulty; got != "hard" {
		t.Errorf("Difficulty = %q, expected hard", got)
	}

	m = press(m, keyDown, keyRight)
	if !m.Settings().Debug {
		t.Error("Debug should be toggled on")
	}
	if m.Done() {
		t.Error("editing should not leave the screen")
	}
}

func TestSettingsLeave(t *testing.T) {
	m := NewSettingsModel(config.DefaultSettings(), 80, 24)
	if !press(m, keyEsc).Done() {
		t.Error("esc should leave settings")
	}

	// Enter on the last row leaves too.
	m = press(m, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown, keyEnter)
	if !m.Done() {
		t.Error("enter on Back should leave settings")
	}
	if m.Settings() != config.DefaultSettings() {
		t.Errorf("Settings() = %+v, expected unchanged", m.Settings())
	}
}

func TestCycle(t *testing.T) {
	values := []string{"a", "b", "c"}

	tests := []struct {
		cur      string
		dir      int
		expected string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"zz", 1, "a"},
	}

	for _, tt := range tests {
		if got := cycle(values, tt.cur, tt.dir); got != tt.expected {
			t.Errorf("cycle(%q, %d) = %q, expected %q", tt.cur, tt.dir, got, tt.expected)
		}
	}
}
