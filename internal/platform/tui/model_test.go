package tui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/dispatch"
	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
)

type savedScore struct {
	game, nick string
	score      int
}

type fakeScores struct {
	saved []savedScore
	err   error
}

func (f *fakeScores) SaveScore(gameID, nickname string, score int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, savedScore{gameID, nickname, score})
	return int64(len(f.saved)), nil
}

func newTestGameModel(t *testing.T, opts GameOptions) (GameModel, *clock) {
	t.Helper()
	game := cloudhop.New(config.Default())
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, opts)
	m.Init()
	t.Cleanup(m.Close)
	return m, &clock{now: time.Unix(1_700_000_000, 0)}
}

// clock hands out tick times one simulation step apart.
type clock struct {
	now time.Time
}

func (c *clock) tick() TickMsg {
	c.now = c.now.Add(time.Second / 60)
	return TickMsg(c.now)
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelJumpStartsRound(t *testing.T) {
	m, clk := newTestGameModel(t, GameOptions{})

	m, _ = send(t, m, clk.tick())
	if m.State().Phase != cloudhop.PhaseWaiting.String() {
		t.Fatalf("phase = %q before any input", m.State().Phase)
	}

	m, _ = send(t, m, runeKey(' '))
	m, cmd := send(t, m, clk.tick())
	if m.State().Phase != cloudhop.PhasePlaying.String() {
		t.Errorf("phase = %q after jump, expected playing", m.State().Phase)
	}
	if cmd == nil {
		t.Error("tick must schedule the next tick")
	}
}

func TestGameModelBackOnlyOutsideRound(t *testing.T) {
	m, clk := newTestGameModel(t, GameOptions{AllowBack: true})
	m, _ = send(t, m, clk.tick())

	// Mid-round, back is ignored.
	m, _ = send(t, m, runeKey('w'))
	m, _ = send(t, m, clk.tick())
	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back accepted mid-round")
	}

	// Paused, back returns to the menu.
	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, clk.tick())
	if !m.State().Paused {
		t.Fatal("expected paused state")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back refused while paused")
	}

	if _, cmd := send(t, m, clk.tick()); cmd != nil {
		t.Error("ticks must stop after leaving the game")
	}
}

func TestGameModelBackDisabled(t *testing.T) {
	m, clk := newTestGameModel(t, GameOptions{})
	m, _ = send(t, m, clk.tick())
	m, _ = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back accepted without AllowBack")
	}
}

func TestGameModelQuit(t *testing.T) {
	m, _ := newTestGameModel(t, GameOptions{})
	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q must quit")
	}
	if m.View() != "" {
		t.Error("quitting view must be empty")
	}
}

func TestGameModelViewAndResize(t *testing.T) {
	m, clk := newTestGameModel(t, GameOptions{})
	m, _ = send(t, m, clk.tick())

	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("view is missing the score HUD")
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if lines := strings.Count(m.View(), "\n") + 1; lines != 30 {
		t.Errorf("view has %d lines after resize, expected 30", lines)
	}
	if m.State().Phase != cloudhop.PhaseWaiting.String() {
		t.Error("resize must not disturb the round")
	}
}

func TestGameModelConfigReloadWaitsForNextRound(t *testing.T) {
	updates := make(chan config.Config, 1)
	m, clk := newTestGameModel(t, GameOptions{Updates: updates})

	cfg := config.Default()
	cfg.Difficulty.BaseSpeed = 9
	m, cmd := send(t, m, configMsg(cfg))
	if cmd == nil {
		t.Error("reload must keep listening for updates")
	}
	if m.game.Config().Difficulty.BaseSpeed == 9 {
		t.Error("tuning applied before the next round")
	}

	m.game.Reset(m.config)
	m, _ = send(t, m, clk.tick())
	if m.game.Config().Difficulty.BaseSpeed != 9 {
		t.Error("tuning not applied at reset")
	}
}

func TestRoundRecorderSavesOncePerRound(t *testing.T) {
	scores := &fakeScores{}
	r := &roundRecorder{scores: scores, nickname: "alice", logger: log.New(io.Discard)}

	r.gameOver(5)
	r.gameOver(5)
	if len(scores.saved) != 1 {
		t.Fatalf("saved %d times, expected once", len(scores.saved))
	}
	if got := scores.saved[0]; got.game != cloudhop.GameID || got.nick != "alice" || got.score != 5 {
		t.Errorf("saved %+v", got)
	}

	r.rearm()
	r.gameOver(0)
	if len(scores.saved) != 1 {
		t.Error("a zero score must not be recorded")
	}

	r.rearm()
	scores.err = errors.New("locked")
	r.gameOver(3)
	if len(scores.saved) != 1 {
		t.Error("failed save must not be recorded")
	}
}

func TestRoundRecorderWritesOffTheTickLoop(t *testing.T) {
	scores := &fakeScores{}
	d := dispatch.New(dispatch.Options{Logger: log.New(io.Discard)})
	r := &roundRecorder{scores: scores, nickname: "alice", logger: log.New(io.Discard), async: d.Go}

	r.gameOver(7)
	r.gameOver(7)
	d.Close()

	if len(scores.saved) != 1 || scores.saved[0].score != 7 {
		t.Errorf("saved %+v, expected one score of 7", scores.saved)
	}

	r.rearm()
	r.gameOver(9)
	if len(scores.saved) != 1 {
		t.Error("a score queued after close must be skipped")
	}
}
