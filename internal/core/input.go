package core

import "math/bits"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - launch the player
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R, Enter - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame collects edge-triggered actions between two simulation ticks.
// A key pressed several times before the next tick still counts once.
// The zero value is an empty frame.
type InputFrame struct {
	actions uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a > ActionPause {
		return
	}
	f.actions |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && f.actions&(1<<a) != 0
}

// Len returns how many distinct actions were triggered.
func (f InputFrame) Len() int {
	return bits.OnesCount16(f.actions)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = 0
}
