package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w":
		return core.ActionJump, false
	case "r", "enter":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in the frame. Back is a
// presentation action and is not recorded.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionBack && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. When typing is
// true, letter keys belong to a text field and only navigation keys map.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg, typing bool) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return MenuActionQuit
	case "up", "shift+tab":
		return MenuActionUp
	case "down", "tab":
		return MenuActionDown
	case "enter":
		return MenuActionSelect
	case "esc":
		return MenuActionBack
	}
	if typing {
		return MenuActionNone
	}

	switch key {
	case "q":
		return MenuActionQuit
	case "w", "k": // vim-style k for up
		return MenuActionUp
	case "s", "j": // vim-style j for down
		return MenuActionDown
	case "left", "h", "a":
		return MenuActionLeft
	case "right", "l", "d":
		return MenuActionRight
	case " ":
		return MenuActionSelect
	case "b":
		return MenuActionBack
	}

	return MenuActionNone
}
