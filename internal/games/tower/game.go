// Package tower hosts the climbing simulation as a registry game.
// It owns the clock and the world of one stage and turns the world snapshot
// into terminal cells with a localized HUD.
package tower

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/i18n"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/sim"
	"github.com/vovakirdan/bear-tower/internal/stage"
)

// UnitsPerMetre converts world units to the metres shown on the HUD.
const UnitsPerMetre = 50.0

// Game runs one stage of the tower.
type Game struct {
	id      string
	title   string
	stageID string

	cfg    config.TowerConfig
	stages *stage.Loader
	logger *log.Logger
	sound  sim.SoundSink

	rt      core.RuntimeConfig
	clock   *core.Clock
	world   *sim.World
	layout  sim.Layout
	text    *i18n.Printer
	debug   bool
	loadErr error
}

// New creates a game for a stage of the catalogue. The world is built on Reset.
func New(id, title, stageID string, env registry.Env) *Game {
	env = env.WithDefaults()
	return &Game{
		id:      id,
		title:   title,
		stageID: stageID,
		cfg:     env.Config,
		stages:  env.Stages,
		logger:  env.Logger.WithPrefix(id),
		sound:   env.Sound,
		clock:   core.NewClock(env.Config.Clock.MaxDelta),
		text:    i18n.New(""),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.title }

// Reset composes the stage and places the player at its spawn.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rt = cfg
	g.debug = cfg.Debug
	g.text = i18n.New(cfg.Language)

	layout, meta, err := g.stages.Build(g.stageID, g.cfg, g.logger)
	if err != nil {
		g.logger.Error("cannot build stage", "stage", g.stageID, "err", err)
		g.loadErr = err
		g.world = nil
		return
	}
	if meta.Title != "" {
		g.title = meta.Title
	}
	g.loadErr = nil
	g.layout = layout
	g.restart()
}

// restart rebuilds the world from the composed layout without reloading data.
func (g *Game) restart() {
	g.clock.Reset()
	if g.cfg.Clock.TimeScale > 0 {
		g.clock.SetTimeScale(g.cfg.Clock.TimeScale)
	}
	g.world = sim.NewWorld(g.cfg, g.layout, sim.Options{Logger: g.logger, Sound: g.sound})
	g.logger.Info("stage started", "stage", g.stageID, "segments", len(g.layout.Segments))
}

// Step applies one-shot commands, advances the clock and steps the world.
// A cleared stage stops simulating until it is restarted.
func (g *Game) Step(in core.InputFrame, now time.Time) core.StepResult {
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) {
		g.restart()
	}
	if in.Has(core.ActionPause) && !g.world.Cleared() {
		g.clock.SetPaused(!g.clock.Paused())
	}

	dt := g.clock.Tick(now)
	if !g.world.Cleared() {
		g.world.Step(dt, in)
		if g.world.Cleared() {
			g.logger.Info("stage cleared", "stage", g.stageID,
				"time", g.world.Elapsed(), "falls", g.world.Falls())
		}
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    int(g.world.MaxHeight()),
		GameOver: g.world.Cleared(),
		Paused:   g.clock.Paused(),
		Elapsed:  g.world.Elapsed(),
		Falls:    g.world.Falls(),
	}
}

// Debug reports whether the debug overlay is visible.
func (g *Game) Debug() bool { return g.debug }

// Snapshot exposes the world for tests and tooling. It is empty when the
// stage failed to load.
func (g *Game) Snapshot() sim.Snapshot {
	if g.world == nil {
		return sim.Snapshot{}
	}
	return g.world.Snapshot()
}

func init() {
	registry.Register("tower", func(env registry.Env) registry.Game {
		return New("tower", "Bear Tower", "tower", env)
	})
	registry.Register("debug", func(env registry.Env) registry.Game {
		return New("debug", "Debug Map", "debug", env)
	})
}
