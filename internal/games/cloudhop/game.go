// Package cloudhop implements a platform-timing jump game.
// Clouds drift across the screen one level above the player, who must
// time a jump to land on each before it leaves the view.
package cloudhop

import (
	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/skins"
)

// GameID is used for score storage.
const GameID = "cloudhop"

var _ core.Game = (*Game)(nil)

// Game implements the cloudhop simulation.
type Game struct {
	cfg     config.Config
	pending *config.Config // Applied at the next Reset
	rules   collisionRules
	runtime core.RuntimeConfig

	gen       *Generator
	player    Player
	start     core.Box
	platforms []*Platform
	camera    Camera

	phase     Phase
	score     int
	best      int
	paused    bool
	tickCount int

	events []core.Event
	skin   skins.Appearance
}

// New creates a game with the given tuning. Call Reset before stepping.
func New(cfg config.Config) *Game {
	g := &Game{
		cfg:  cfg,
		skin: skins.AppearanceOf(skins.DefaultID),
	}
	g.applyConfig()
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cloudhop"
}

// SetConfig schedules new tuning. It takes effect at the next Reset so a
// running round is never changed mid-flight.
func (g *Game) SetConfig(cfg config.Config) {
	g.pending = &cfg
}

// Config returns the tuning in use.
func (g *Game) Config() config.Config {
	return g.cfg
}

// SetAppearance sets the player's drawable handle.
func (g *Game) SetAppearance(a skins.Appearance) {
	g.skin = a
}

// SetBest sets the known best score. Negative values count as zero.
func (g *Game) SetBest(best int) {
	g.best = max(0, best)
}

// LoadBest reads the best score from store. A failing store or a corrupt
// value yields zero.
func (g *Game) LoadBest(store BestScoreStore) {
	best, err := store.BestScore()
	if err != nil {
		best = 0
	}
	g.SetBest(best)
}

func (g *Game) applyConfig() {
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}
	c := g.cfg.Collision
	g.rules = collisionRules{
		LandingWindow:    c.LandingWindow,
		LandingTolerance: c.LandingTolerance,
		HeadTolerance:    c.HeadTolerance,
		SideRatio:        c.SideRatio,
	}
}

// Reset starts a new round: score zero, player seated on the start platform,
// camera zeroed, no moving platforms, phase waiting. Safe from any phase.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.applyConfig()

	w := g.cfg.World
	sp := g.cfg.StartPlatform
	g.start = core.Box{
		X: w.Width/2 - sp.Width/2,
		Y: w.Height - sp.BottomOffset,
		W: sp.Width,
		H: sp.Height,
	}

	pl := g.cfg.Player
	g.player = Player{
		Box:        core.Box{X: w.Width/2 - pl.Width/2, W: pl.Width, H: pl.Height},
		OnPlatform: true,
	}
	g.player.Y = g.start.Y - g.player.H

	g.camera.Smoothing = g.cfg.Camera.Smoothing
	g.camera.Reset()

	clear(g.platforms)
	g.platforms = g.platforms[:0]

	// Rebuilt every round since the tuning may have changed.
	g.gen = NewGenerator(cfg.Seed, g.cfg, g.start.Y)

	g.phase = PhaseWaiting
	g.score = 0
	g.paused = false
	g.tickCount = 0
	g.events = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.phase == PhaseGameOver && in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State(), Events: g.Drain()}
	}

	// Handle pause toggle
	if g.phase == PhasePlaying && in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.HandleJump()
	}
	g.Tick()

	return core.StepResult{State: g.State(), Events: g.Drain()}
}

// HandleJump processes one jump press. The first press starts the round;
// a grounded player is launched. Airborne presses and presses after game
// over are ignored.
func (g *Game) HandleJump() {
	if g.phase == PhaseGameOver || g.paused {
		return
	}

	if g.phase == PhaseWaiting {
		g.phase = PhasePlaying
		g.emit(core.EventMusicStart, 0)
		g.spawnNext()
	}

	p := &g.player
	if !p.OnPlatform || p.Jumping {
		return
	}

	p.Y = g.supportY() - p.H
	p.Jumping = true
	p.OnPlatform = false
	p.VelY = -g.cfg.Physics.JumpSpeed
	p.JumpStartY = p.Y
	g.emit(core.EventJump, 0)
}

// Tick runs one fixed-order simulation update: player, platforms, camera,
// collisions, then the fall check. Only the player moves outside of play.
func (g *Game) Tick() {
	g.tickCount++
	g.integratePlayer()

	if g.phase != PhasePlaying {
		return
	}

	g.advancePlatforms()

	level := 0
	if g.player.platform != nil {
		level = g.levelOf(g.player.platform)
	}
	g.camera.Update(cameraTarget(g.cfg.Platforms.LevelHeight, level, g.player.platform != nil))

	if g.player.Jumping {
		g.resolveCollisions()
	}

	if g.phase == PhasePlaying && g.player.Y > g.cfg.World.Height+g.cfg.World.FallMargin {
		g.endRound()
	}
}

// endRound switches to game over and signals it once.
func (g *Game) endRound() {
	if g.phase == PhaseGameOver {
		return
	}
	g.phase = PhaseGameOver
	g.emit(core.EventGameOver, g.score)
	g.emit(core.EventMusicStop, 0)
}

// spawnNext appends the generator's next platform.
func (g *Game) spawnNext() {
	g.platforms = append(g.platforms, g.gen.Next(g.score))
}

func (g *Game) emit(kind core.EventKind, score int) {
	g.events = append(g.events, core.Event{Kind: kind, Score: score})
}

// Drain returns the events emitted since the last drain and forgets them.
func (g *Game) Drain() []core.Event {
	events := g.events
	g.events = nil
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		BestScore: g.best,
		GameOver:  g.phase == PhaseGameOver,
		Paused:    g.paused,
		Phase:     g.phase.String(),
	}
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Player returns a copy of the player.
func (g *Game) Player() Player {
	return g.player
}

// Platforms returns the live platforms. Callers must not modify them.
func (g *Game) Platforms() []*Platform {
	return g.platforms
}

// Camera returns a copy of the camera.
func (g *Game) Camera() Camera {
	return g.camera
}

// Snapshot copies the world geometry for drawing.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     g.phase,
		Score:     g.score,
		Best:      g.best,
		Paused:    g.paused,
		WorldW:    g.cfg.World.Width,
		WorldH:    g.cfg.World.Height,
		CameraY:   g.camera.Y,
		Player:    g.player.Box,
		Start:     g.start,
		Platforms: make([]core.Box, 0, len(g.platforms)),
	}
	for _, p := range g.platforms {
		if p.Active {
			s.Platforms = append(s.Platforms, p.Box)
		}
	}
	return s
}

// Appearance returns the player's drawable handle.
func (g *Game) Appearance() skins.Appearance {
	return g.skin
}
