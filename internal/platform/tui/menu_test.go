package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/skins"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

type memSelector struct {
	id string
}

func (s *memSelector) SelectedSkin() (string, error) { return s.id, nil }
func (s *memSelector) SelectSkin(id string) error    { s.id = id; return nil }

func menuKey(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		mm, ok := next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = mm
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

func TestValidateNickname(t *testing.T) {
	tests := []struct {
		nick string
		want error
	}{
		{"", ErrNicknameShort},
		{"ab", ErrNicknameShort},
		{"  ab  ", ErrNicknameShort},
		{"abc", nil},
		{"twelve_chars", nil},
		{"thirteen_char", ErrNicknameLong},
		{"облако", nil},
	}

	for _, tt := range tests {
		if err := ValidateNickname(tt.nick); !errors.Is(err, tt.want) {
			t.Errorf("ValidateNickname(%q) = %v, expected %v", tt.nick, err, tt.want)
		}
	}
}

func TestMenuRequiresValidNickname(t *testing.T) {
	m := NewMenuModel(testRuntime(), MenuOptions{}, nil)
	if !m.typing() {
		t.Fatal("menu without a nickname must start on the nickname field")
	}

	m = menuKey(t, m, runeKey('a'), runeKey('b'), keyEnter, keyDown, keyEnter)
	if m.Choice() != ChoiceNone {
		t.Fatalf("choice = %v with a short nickname", m.Choice())
	}
	if !errors.Is(m.Err(), ErrNicknameShort) {
		t.Errorf("err = %v, expected ErrNicknameShort", m.Err())
	}
	if !m.typing() {
		t.Error("invalid nickname must return focus to the field")
	}

	m = menuKey(t, m, runeKey('c'), keyEnter, keyDown, keyEnter)
	if m.Choice() != ChoicePlay {
		t.Fatalf("choice = %v, expected play", m.Choice())
	}
	if m.Nickname() != "abc" {
		t.Errorf("nickname = %q, expected abc", m.Nickname())
	}
}

func TestMenuTypingDoesNotQuit(t *testing.T) {
	m := NewMenuModel(testRuntime(), MenuOptions{}, nil)
	m = menuKey(t, m, runeKey('q'))
	if m.Choice() == ChoiceQuit {
		t.Error("q typed into the nickname quit the menu")
	}
	if m.Nickname() != "q" {
		t.Errorf("nickname = %q, expected q", m.Nickname())
	}
}

func TestMenuSkinCycling(t *testing.T) {
	sel := &memSelector{}
	m := NewMenuModel(testRuntime(), MenuOptions{Nickname: "alice", Skins: sel, Best: 10}, nil)
	if m.SelectedSkin().ID != skins.DefaultID {
		t.Fatalf("initial skin = %q", m.SelectedSkin().ID)
	}

	// Play row is first; the skin row sits above it.
	m = menuKey(t, m, keyUp, keyRight)
	if m.SelectedSkin().ID != "cloud" || sel.id != "cloud" {
		t.Errorf("skin = %q, persisted %q; expected cloud", m.SelectedSkin().ID, sel.id)
	}

	// Star unlocks at 10, rocket does not.
	m = menuKey(t, m, keyRight, keyRight)
	if m.SelectedSkin().ID != "rocket" || sel.id != "star" {
		t.Errorf("skin = %q, persisted %q; expected rocket shown, star kept", m.SelectedSkin().ID, sel.id)
	}

	m = menuKey(t, m, keyDown, keyEnter)
	if m.Choice() != ChoicePlay {
		if !errors.Is(m.Err(), skins.ErrLocked) {
			t.Errorf("err = %v, expected ErrLocked", m.Err())
		}
	} else {
		t.Error("played with a locked skin")
	}

	m = menuKey(t, m, keyUp, keyLeft, keyDown, keyEnter)
	if m.Choice() != ChoicePlay {
		t.Errorf("choice = %v after picking an unlocked skin", m.Choice())
	}
}

func TestMenuRemembersSelectedSkin(t *testing.T) {
	sel := &memSelector{id: "star"}
	m := NewMenuModel(testRuntime(), MenuOptions{Nickname: "alice", Skins: sel, Best: 50}, nil)
	if m.SelectedSkin().ID != "star" {
		t.Errorf("skin = %q, expected star", m.SelectedSkin().ID)
	}
}

func TestMenuLockedNickname(t *testing.T) {
	m := NewMenuModel(testRuntime(), MenuOptions{Nickname: "bob", LockNickname: true}, nil)
	m = menuKey(t, m, keyUp, keyUp)
	if m.typing() {
		t.Error("locked nickname must not be editable")
	}
	if !strings.Contains(m.View(), "bob") {
		t.Error("view is missing the player name")
	}

	m = menuKey(t, m, runeKey('q'))
	if m.Choice() != ChoiceQuit {
		t.Error("q must quit outside the text field")
	}
}

func TestMenuLeaderboardChoice(t *testing.T) {
	m := NewMenuModel(testRuntime(), MenuOptions{Nickname: "alice"}, nil)
	m = menuKey(t, m, keyDown, keyEnter)
	if m.Choice() != ChoiceLeaderboard {
		t.Errorf("choice = %v, expected leaderboard", m.Choice())
	}
}

type fakeLeaderboard struct {
	entries []storage.ScoreEntry
	limits  []int
}

func (f *fakeLeaderboard) TopScores(_ string, limit int) ([]storage.ScoreEntry, error) {
	f.limits = append(f.limits, limit)
	return f.entries[:min(limit, len(f.entries))], nil
}

func (f *fakeLeaderboard) PlayerBest(_ string, nick string) (int, error) {
	for _, e := range f.entries {
		if e.Nickname == nick {
			return e.Score, nil
		}
	}
	return 0, storage.ErrNotFound
}

func (f *fakeLeaderboard) PlayerRank(_ string, nick string) (int, error) {
	for i, e := range f.entries {
		if e.Nickname == nick {
			return i + 1, nil
		}
	}
	return 0, storage.ErrNotFound
}

func TestScoreboardShowsStanding(t *testing.T) {
	lb := &fakeLeaderboard{entries: []storage.ScoreEntry{
		{Nickname: "ann", Score: 12},
		{Nickname: "bob", Score: 8},
	}}

	m := NewScoreboardModel(lb, "bob", 80, 24, nil)
	view := m.View()
	for _, want := range []string{"TOP 10", "Best: 8", "Rank: #2", "ann"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if got := lb.limits[len(lb.limits)-1]; got != maxScores {
		t.Errorf("expanded limit = %d, expected %d", got, maxScores)
	}

	next, _ = m.Update(runeKey('b'))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("b must return to the menu")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 80, 24, nil)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty leaderboard message missing")
	}
}
