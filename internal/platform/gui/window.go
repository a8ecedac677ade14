// Package gui runs cloudhop in a desktop window with Ebitengine.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	_ "image/png" // skin images
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/dispatch"
	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
)

// Debug font cell size used to lay out HUD text.
const (
	charWidth  = 6
	charHeight = 16
)

// ScoreRecorder saves finished rounds to the leaderboard.
type ScoreRecorder interface {
	SaveScore(gameID, nickname string, score int) (int64, error)
}

// Options wires the window to its collaborators. All fields are optional.
type Options struct {
	Nickname  string
	Scale     float64 // Window pixels per world pixel, 1 when unset
	Seed      int64   // 0 picks a fresh seed per round
	Scores    ScoreRecorder
	Audio     dispatch.AudioSink
	BestSaver dispatch.BestScoreSaver
	Updates   <-chan config.Config // Tuning reloads, applied at the next round
	Logger    *log.Logger
}

// Window adapts a cloudhop game to ebiten.Game. The window runs at the
// game's tick rate, so every Update is exactly one simulation tick.
type Window struct {
	game       *cloudhop.Game
	runtime    core.RuntimeConfig
	randomSeed bool
	scale      float64
	dispatcher *dispatch.Dispatcher
	scores     ScoreRecorder
	nickname   string
	recorded   bool
	updates    <-chan config.Config
	logger     *log.Logger
	state      core.GameState
	playerImg  *ebiten.Image
}

// NewWindow prepares a window around game and resets it for the first round.
func NewWindow(game *cloudhop.Game, opts Options) *Window {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	w := &Window{
		game:       game,
		randomSeed: opts.Seed == 0,
		scale:      scale,
		scores:     opts.Scores,
		nickname:   opts.Nickname,
		updates:    opts.Updates,
		logger:     logger,
	}
	w.dispatcher = dispatch.New(dispatch.Options{
		Audio:      opts.Audio,
		Saver:      opts.BestSaver,
		OnGameOver: w.record,
		Logger:     logger,
	})

	world := game.Config().World
	w.runtime = core.RuntimeConfig{
		ScreenW:  int(world.Width * scale),
		ScreenH:  int(world.Height * scale),
		TickRate: game.Config().Timing.TickRate,
		Seed:     opts.Seed,
	}
	if w.randomSeed {
		w.runtime.Seed = time.Now().UnixNano()
	}
	game.Reset(w.runtime)
	w.state = game.State()
	return w
}

// loadSkin loads the skin image, if any. A missing or broken image keeps
// the flat colored box.
func (w *Window) loadSkin() {
	path := w.game.Appearance().ImagePath
	if path == "" {
		return
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		w.logger.Warn("could not load skin image, using a box", "path", path, "err", err)
		return
	}
	w.playerImg = img
}

// record stores a finished round once. The write runs on the dispatcher's
// worker so the tick never waits on the database.
func (w *Window) record(score int) {
	if w.recorded {
		return
	}
	w.recorded = true
	if w.scores == nil || score <= 0 {
		return
	}
	if !w.dispatcher.Go(func() { w.save(score) }) {
		w.logger.Warn("could not queue score", "nickname", w.nickname, "score", score)
	}
}

func (w *Window) save(score int) {
	if _, err := w.scores.SaveScore(cloudhop.GameID, w.nickname, score); err != nil {
		w.logger.Warn("could not save score", "nickname", w.nickname, "score", score, "err", err)
		return
	}
	w.logger.Info("round recorded", "nickname", w.nickname, "score", score)
}

// Update reads fresh key presses and advances one tick.
func (w *Window) Update() error {
	frame, quit := readFrame(justPressed)
	if quit {
		return ebiten.Termination
	}
	w.step(frame)
	return nil
}

// step runs one simulation tick with the given input.
func (w *Window) step(frame core.InputFrame) {
	select {
	case cfg, ok := <-w.updates:
		if ok {
			w.game.SetConfig(cfg)
			w.logger.Info("tuning reloaded, applies next round")
		}
	default:
	}

	if frame.Has(core.ActionRestart) && w.state.GameOver && w.randomSeed {
		w.runtime.Seed = time.Now().UnixNano()
		w.game.Reset(w.runtime)
		w.state = w.game.State()
	} else {
		result := w.game.Step(frame)
		w.state = result.State
		w.dispatcher.Dispatch(result.Events)
	}
	if !w.state.GameOver {
		w.recorded = false
	}
}

// Draw paints the world, the player and the HUD.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	snap := w.game.Snapshot()
	h := w.runtime.ScreenH

	fill := func(r rect, c color.Color) {
		if r.visible(h) {
			vector.FillRect(screen, r.X, r.Y, r.W, r.H, c, false)
		}
	}

	fill(project(snap.Start, snap.CameraY, w.scale), startColor)
	for _, p := range snap.Platforms {
		fill(project(p, snap.CameraY, w.scale), cloudColor)
	}

	player := project(snap.Player, snap.CameraY, w.scale)
	if w.playerImg != nil {
		b := w.playerImg.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(player.W)/float64(b.Dx()), float64(player.H)/float64(b.Dy()))
		op.GeoM.Translate(float64(player.X), float64(player.Y))
		screen.DrawImage(w.playerImg, op)
	} else {
		fill(player, rgba(w.game.Appearance().Color))
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 8, 4)
	best := fmt.Sprintf("Best: %d", snap.Best)
	ebitenutil.DebugPrintAt(screen, best, w.runtime.ScreenW-len(best)*charWidth-8, 4)

	switch {
	case snap.Phase == cloudhop.PhaseWaiting:
		w.drawCentered(screen, h-3*charHeight, "Press SPACE to start")
	case snap.Phase == cloudhop.PhaseGameOver:
		w.drawOverlay(screen, "GAME OVER", fmt.Sprintf("Score: %d  Best: %d  |  R to restart", snap.Score, snap.Best))
	case snap.Paused:
		w.drawOverlay(screen, "PAUSED", "Press P to resume")
	}
}

func (w *Window) drawOverlay(screen *ebiten.Image, title, subtitle string) {
	vector.FillRect(screen, 0, 0, float32(w.runtime.ScreenW), float32(w.runtime.ScreenH), overlayColor, false)
	mid := w.runtime.ScreenH / 2
	w.drawCentered(screen, mid-charHeight, title)
	w.drawCentered(screen, mid+charHeight/2, subtitle)
}

func (w *Window) drawCentered(screen *ebiten.Image, y int, s string) {
	x := (w.runtime.ScreenW - len(s)*charWidth) / 2
	ebitenutil.DebugPrintAt(screen, s, max(0, x), y)
}

// Layout keeps the logical screen at the scaled world size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.runtime.ScreenW, w.runtime.ScreenH
}

// State returns the last observed game state.
func (w *Window) State() core.GameState {
	return w.state
}

// Close flushes pending persistence.
func (w *Window) Close() {
	w.dispatcher.Close()
}

// Run opens the window and blocks until it is closed.
func Run(game *cloudhop.Game, opts Options) error {
	w := NewWindow(game, opts)
	defer w.Close()
	w.loadSkin()

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(w.runtime.ScreenW, w.runtime.ScreenH)
	ebiten.SetTPS(w.runtime.TickRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

var ebitenKeys = map[key]ebiten.Key{
	keySpace:  ebiten.KeySpace,
	keyUp:     ebiten.KeyArrowUp,
	keyW:      ebiten.KeyW,
	keyR:      ebiten.KeyR,
	keyEnter:  ebiten.KeyEnter,
	keyP:      ebiten.KeyP,
	keyEscape: ebiten.KeyEscape,
	keyQ:      ebiten.KeyQ,
}

func justPressed(k key) bool {
	return inpututil.IsKeyJustPressed(ebitenKeys[k])
}
