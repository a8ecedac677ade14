package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cloudhop/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w jumps", runeKey('w'), core.ActionJump, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"enter restarts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"b goes back", runeKey('b'), core.ActionBack, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x is ignored", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('w'), &frame) {
		t.Fatal("jump reported as quit")
	}
	km.MapKeyToFrame(runeKey('b'), &frame)
	if !frame.Has(core.ActionJump) {
		t.Error("jump not recorded")
	}
	if frame.Has(core.ActionBack) {
		t.Error("back must not reach the simulation frame")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q not reported as quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit must not reach the simulation frame")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		typing bool
		want   MenuAction
	}{
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, false, MenuActionDown},
		{"tab while typing", tea.KeyMsg{Type: tea.KeyTab}, true, MenuActionDown},
		{"j navigates", runeKey('j'), false, MenuActionDown},
		{"j types", runeKey('j'), true, MenuActionNone},
		{"q quits", runeKey('q'), false, MenuActionQuit},
		{"q types", runeKey('q'), true, MenuActionNone},
		{"ctrl+c always quits", tea.KeyMsg{Type: tea.KeyCtrlC}, true, MenuActionQuit},
		{"left cycles", tea.KeyMsg{Type: tea.KeyLeft}, false, MenuActionLeft},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, true, MenuActionSelect},
		{"esc backs", tea.KeyMsg{Type: tea.KeyEsc}, false, MenuActionBack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg, tt.typing); got != tt.want {
				t.Errorf("MapKeyToMenuAction(%q, %v) = %v, expected %v", tt.msg.String(), tt.typing, got, tt.want)
			}
		})
	}
}
