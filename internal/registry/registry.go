// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-tower/internal/config"
	"github.com/vovakirdan/bear-tower/internal/core"
	"github.com/vovakirdan/bear-tower/internal/sim"
	"github.com/vovakirdan/bear-tower/internal/stage"
)

// Game is the interface every playable mode implements.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing and drawing.
type Game interface {
	// ID returns a unique identifier, used for CLI commands and run records.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds or rebuilds the game for the given screen and language.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game for the host timestamp now.
	// Held movement and one-shot commands arrive together in the frame.
	Step(in core.InputFrame, now time.Time) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Env carries what a factory needs to build a game. Zero fields mean
// defaults: the hardcoded tower config, the embedded stages, the default
// logger and no sound.
type Env struct {
	Config config.TowerConfig
	Stages *stage.Loader
	Logger *log.Logger
	Sound  sim.SoundSink
}

// WithDefaults fills unset fields.
func (e Env) WithDefaults() Env {
	if e.Config.Physics.Gravity == 0 {
		e.Config = config.DefaultTowerConfig()
	}
	if e.Stages == nil {
		e.Stages = stage.Embedded()
	}
	if e.Logger == nil {
		e.Logger = log.Default()
	}
	if e.Sound == nil {
		e.Sound = sim.NopSound{}
	}
	return e
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Factories must be cheap: the title comes from a throwaway instance.
	titles[id] = f(Env{}.WithDefaults()).Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(env.WithDefaults()), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
