package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/storage"
)

// Hold windows for keys. Terminals never report releases, so a held key
// stays down until its auto-repeat stops arriving.
const (
	holdInitial = 550 * time.Millisecond
	holdRepeat  = 120 * time.Millisecond
)

// GameModel is the Bubble Tea model for one running stage.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	held      *core.HeldKeys
	pending   core.InputFrame // One-shot commands since the last tick
	gameState core.GameState
	logger    *log.Logger

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool
}

// NewGameModel creates a model for a game. A nil store disables run records.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.Default()
	}
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		held:      core.NewHeldKeys(holdInitial, holdRepeat),
		pending:   core.NewInputFrame(),
		logger:    logger,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, held := m.keyMapper.MapKey(msg)
	switch {
	case action == core.ActionNone:
		return m, nil

	case action == core.ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if !m.gameState.Paused && !m.gameState.GameOver {
			return m, nil
		}
		m.saveRun()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case held:
		m.held.Press(action, now)

	default:
		if action == core.ActionRestart {
			m.saveRun()
			m.runSaved = false
			m.held.Reset()
		}
		m.pending.Set(action)
	}
	return m, nil
}

// handleTick steps the game with the held keys and queued commands.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	in := m.held.Frame(now)
	for a, on := range m.pending.Actions {
		if on {
			in.Set(a)
		}
	}
	m.pending.Clear()

	result := m.game.Step(in, now)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run once. Runs without progress are skipped.
func (m *GameModel) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	st := m.gameState
	if st.Score <= 0 && !st.GameOver {
		return
	}
	m.runSaved = true

	run := storage.Run{
		StageID:    m.game.ID(),
		Player:     m.config.Player,
		Difficulty: m.config.Difficulty,
		MaxHeight:  float64(st.Score),
		Duration:   st.Elapsed,
		Falls:      st.Falls,
		Cleared:    st.GameOver,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "stage", run.StageID, "err", err)
		return
	}
	m.logger.Info("run saved", "stage", run.StageID, "height", run.MaxHeight, "cleared", run.Cleared)
}

// saveScreenshot writes the current screen as text to ~/.bear-tower/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot dir", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState { return m.gameState }

// Run plays a single game in the terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
