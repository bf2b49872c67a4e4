package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and tick pacing.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Host ticks per second (default 60)
	Debug      bool   // Start with the debug overlay visible
	Language   string // HUD language tag ("en", "ko", "ja")
	Difficulty string // Preset name recorded with runs
	Player     string // Local user or SSH session name
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Language:   "ko",
		Difficulty: "normal",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Highest climb reached, in world units
	GameOver bool    // Whether the run has ended (goal reached)
	Paused   bool    // Whether the game is paused
	Elapsed  float64 // Unpaused play time in seconds
	Falls    int     // Times the player dropped out and respawned
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
