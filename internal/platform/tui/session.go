package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/audio"
	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/storage"
)

// Deps are the collaborators of a session.
type Deps struct {
	Env          registry.Env    // Base game environment; the settings' difficulty is applied per game
	Store        *storage.Store  // Nil disables run records
	Settings     config.Settings // Initial preferences
	SettingsPath string          // Empty keeps settings in memory only
	Audio        *audio.Manager  // Nil when there is no local speaker
	Logger       *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenRecords
	screenSettings
)

// SessionModel manages the full flow: menu, stage, records and settings.
// It is the top-level model for both the local menu and SSH sessions.
type SessionModel struct {
	deps     Deps
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	records  ScoreboardModel
	settings SettingsModel
	quitting bool
}

// NewSessionModel creates a session starting at the main menu.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	deps.Settings = deps.Settings.Normalize()
	cfg = applySettings(cfg, deps.Settings)

	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// applySettings copies the preferences the games read into cfg.
func applySettings(cfg core.RuntimeConfig, s config.Settings) core.RuntimeConfig {
	cfg.Language = s.Language
	cfg.Debug = s.Debug
	cfg.Difficulty = s.Difficulty
	return cfg
}

// GameEnv returns env with the difficulty preset of s applied.
func GameEnv(env registry.Env, s config.Settings) registry.Env {
	env = env.WithDefaults()
	if preset, err := config.ParseDifficultyPreset(s.Difficulty); err == nil {
		config.ApplyTowerPreset(&env.Config, preset)
	}
	return env
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	chosen := m.menu.Chosen()
	if chosen == nil {
		return m, cmd
	}

	switch chosen.Choice {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceRecords:
		m.records = NewScoreboardModel(m.deps.Store, m.config.Language, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRecords
		return m, m.records.Init()

	case ChoiceSettings:
		m.settings = NewSettingsModel(m.deps.Settings, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSettings
		return m, m.settings.Init()

	case ChoicePlay:
		game, err := registry.Create(chosen.GameID, GameEnv(m.deps.Env, m.deps.Settings))
		if err != nil {
			m.deps.Logger.Error("cannot create game", "game", chosen.GameID, "err", err)
			return m.toMenu()
		}
		gm := NewGameModel(game, m.deps.Store, m.config, m.deps.Logger)
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}
	return m, cmd
}

// updateGame handles updates when a stage is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

// updateRecords handles updates on the records board.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.records = sb
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.records.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateSettings handles updates on the settings screen and applies every
// change immediately.
func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.settings.Update(msg)
	if sm, ok := newModel.(SettingsModel); ok {
		m.settings = sm
	}

	if s := m.settings.Settings(); s != m.deps.Settings {
		m.deps.Settings = s
		m.config = applySettings(m.config, s)
		m.persistSettings()
	}
	if m.settings.Done() {
		return m.toMenu()
	}
	return m, cmd
}

// persistSettings saves settings and pushes volumes to the speaker.
func (m SessionModel) persistSettings() {
	s := m.deps.Settings
	if a := m.deps.Audio; a != nil {
		a.SetVolumes(s.SEVolume, s.BGMVolume)
		a.StartMusic()
	}
	if m.deps.SettingsPath == "" {
		return
	}
	if err := config.SaveSettings(m.deps.SettingsPath, s); err != nil {
		m.deps.Logger.Warn("could not save settings", "err", err)
	}
}

// toMenu rebuilds the menu so language and debug changes show up.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenRecords:
		return m.records.View()
	case screenSettings:
		return m.settings.View()
	default:
		return m.menu.View()
	}
}

// Settings returns the current preferences.
func (m SessionModel) Settings() config.Settings { return m.deps.Settings }

// RunSession runs the menu flow in the local terminal.
func RunSession(deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(deps, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
