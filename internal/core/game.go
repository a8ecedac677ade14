package core

// Game is the interface a simulation exposes to the front ends.
// Implementations contain pure logic with no terminal or window dependencies.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Returns the result of this tick including emitted events.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}
