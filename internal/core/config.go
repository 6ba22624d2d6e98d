package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform (default 60)
	Seed     int64 // RNG seed, 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
	Level    string // Id of the level being played, if the game has levels
	Ticks    int    // Engine ticks committed in the current level
	Moves    int    // Player inputs applied in the current level
	Solved   bool   // Whether the current level is solved
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	// Events lists notable things that happened during the frame.
	// Platforms use them for persistence and logs.
	Events []Event
}

// Event names something a game reports from a frame.
type Event string

// Events understood by the platform.
const (
	EventLevelSolved   Event = "level_solved"   // the current level was just solved
	EventLevelStarted  Event = "level_started"  // a level was (re)started
	EventLevelReloaded Event = "level_reloaded" // the level file changed and was reloaded
	EventGameOver      Event = "game_over"      // the last level was solved
)

// Has reports whether the result contains the event.
func (r StepResult) Has(e Event) bool {
	for _, got := range r.Events {
		if got == e {
			return true
		}
	}
	return false
}
