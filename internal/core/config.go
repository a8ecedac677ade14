package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Presentation frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the game for the platform layer.
type GameState struct {
	Score     int    // Current score (levels reached)
	BestScore int    // Best score known to the game
	GameOver  bool   // Whether the round has ended
	Paused    bool   // Whether the game is paused
	Phase     string // waiting, playing or gameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
// Events must be drained by collaborators after the tick completes.
type StepResult struct {
	State  GameState
	Events []Event
}
