package cloudhop

import (
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
)

func TestGeneratorAlternatesSides(t *testing.T) {
	cfg := config.Default()
	gen := NewGenerator(99, cfg, 480)

	prev := gen.Next(0)
	for i := 0; i < 10; i++ {
		next := gen.Next(0)
		if next.Direction != -prev.Direction {
			t.Fatalf("spawn %d: direction %d follows %d", i, next.Direction, prev.Direction)
		}
		prev = next
	}
	if gen.Spawned() != 11 {
		t.Errorf("Spawned() = %d, expected 11", gen.Spawned())
	}
}

func TestGeneratorPlacement(t *testing.T) {
	cfg := config.Default()
	gen := NewGenerator(1, cfg, 480)

	for score := 0; score < 6; score++ {
		p := gen.Next(score)

		wantY := 480 - cfg.Platforms.LevelHeight*float64(score+1)
		if p.Y != wantY {
			t.Errorf("score %d: y = %v, expected %v", score, p.Y, wantY)
		}
		if p.Level != score+1 {
			t.Errorf("score %d: level = %d", score, p.Level)
		}
		wantSpeed := cfg.Difficulty.BaseSpeed + float64(score)*cfg.Difficulty.SpeedStep
		if p.Speed != wantSpeed {
			t.Errorf("score %d: speed = %v, expected %v", score, p.Speed, wantSpeed)
		}

		switch p.Direction {
		case 1:
			if p.X != -p.W-cfg.Platforms.SpawnOffset {
				t.Errorf("left spawn x = %v", p.X)
			}
		case -1:
			if p.X != cfg.World.Width+cfg.Platforms.SpawnOffset {
				t.Errorf("right spawn x = %v", p.X)
			}
		default:
			t.Fatalf("bad direction %d", p.Direction)
		}

		if p.ReachMin != 150 || p.ReachMax != 250 {
			t.Errorf("reachable zone = [%v, %v]", p.ReachMin, p.ReachMax)
		}
		if !p.Active || p.Stopped {
			t.Errorf("new platform should be active and moving: %+v", p)
		}
	}
}

func TestGeneratorFirstSideIsSeeded(t *testing.T) {
	cfg := config.Default()
	a := NewGenerator(5, cfg, 480).Next(0)
	b := NewGenerator(5, cfg, 480).Next(0)
	if a.Direction != b.Direction {
		t.Error("same seed should pick the same first side")
	}

	seen := map[int]bool{}
	for seed := int64(0); seed < 50; seed++ {
		seen[NewGenerator(seed, cfg, 480).Next(0).Direction] = true
	}
	if !seen[1] || !seen[-1] {
		t.Error("first side should vary across seeds")
	}
}

func TestCameraConverges(t *testing.T) {
	tests := []struct {
		name      string
		smoothing float64
		start     float64
		target    float64
	}{
		{"default up", 0.05, 0, 120},
		{"fast up", 0.5, 0, 300},
		{"near snap", 0.99, 10, 70},
		{"down", 0.05, 180, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Camera{Y: tc.start, Smoothing: tc.smoothing}
			dist := math.Abs(tc.target - c.Y)
			for i := 0; i < 200 && dist > 1e-9; i++ {
				c.Update(tc.target)
				d := math.Abs(tc.target - c.Y)
				if d >= dist {
					t.Fatalf("tick %d: distance %v did not shrink from %v", i, d, dist)
				}
				if (tc.target > tc.start && c.Y > tc.target) || (tc.target < tc.start && c.Y < tc.target) {
					t.Fatalf("tick %d: overshoot to %v", i, c.Y)
				}
				dist = d
			}
		})
	}
}

func TestCameraTarget(t *testing.T) {
	if cameraTarget(60, 3, false) != 0 {
		t.Error("off moving platforms the target is zero")
	}
	if cameraTarget(60, 1, true) != 0 {
		t.Error("level 1 keeps the camera at zero")
	}
	if cameraTarget(60, 3, true) != 120 {
		t.Errorf("level 3 target = %v, expected 120", cameraTarget(60, 3, true))
	}
}

func TestClassify(t *testing.T) {
	rules := collisionRules{LandingWindow: 25, LandingTolerance: 10, HeadTolerance: 5, SideRatio: 0.7}
	plat := core.Box{X: 100, Y: 200, W: 100, H: 20}

	player := func(x, y, vel float64) Player {
		return Player{Box: core.Box{X: x, Y: y, W: 30, H: 30}, VelY: vel, Jumping: true}
	}

	tests := []struct {
		name   string
		player Player
		want   Contact
	}{
		{"apart", player(0, 0, 3), ContactNone},
		{"touching edge only", player(135, 170, 3), ContactNone},
		{"landing centered", player(135, 175, 3), ContactLanding},
		{"landing near edge", player(80, 178, 2), ContactLanding},
		{"descending too deep", player(135, 185, 3), ContactPassing},
		{"head bump", player(135, 205, -4), ContactHead},
		{"side hit descending", player(75, 195, 3), ContactSide},
		{"side hit level", player(195, 195, 0), ContactSide},
		{"ascending above top", player(135, 172, -1), ContactPassing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.player, plat, rules)
			if got != tc.want {
				t.Errorf("classify() = %v, expected %v", got, tc.want)
			}
			if got == ContactLanding && got.Fatal() {
				t.Error("landing must not be fatal")
			}
		})
	}
}

func TestResolveCollisionsAcrossPlatforms(t *testing.T) {
	box := func(x, dy, w float64) core.Box { return core.Box{X: x, Y: dy, W: w, H: 20} }

	tests := []struct {
		name      string
		player    core.Box // Y relative to the first level
		platforms []core.Box
		wantPhase Phase
		wantScore int
		wantOver  int
		seated    int // Index of the platform the player lands on, -1 for none
	}{
		{
			name:      "passing then side hit",
			player:    core.Box{X: 75, Y: -5, W: 30, H: 30},
			platforms: []core.Box{box(40, -10, 100), box(100, 0, 100)},
			wantPhase: PhaseGameOver,
			wantOver:  1,
			seated:    -1,
		},
		{
			name:      "landing then overlapping side hit",
			player:    core.Box{X: 135, Y: -25, W: 30, H: 30},
			platforms: []core.Box{box(100, 0, 100), box(160, -20, 100)},
			wantPhase: PhasePlaying,
			wantScore: 1,
			seated:    0,
		},
		{
			name:      "two landable platforms",
			player:    core.Box{X: 135, Y: -25, W: 30, H: 30},
			platforms: []core.Box{box(100, 0, 100), box(110, 2, 100)},
			wantPhase: PhasePlaying,
			wantScore: 1,
			seated:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, 1)
			g.HandleJump()
			g.Drain()
			g.rules = collisionRules{LandingWindow: 25, LandingTolerance: 10, HeadTolerance: 5, SideRatio: 0.7}

			levelY := g.start.Y - g.cfg.Platforms.LevelHeight
			g.platforms = g.platforms[:0]
			for _, b := range tc.platforms {
				b.Y += levelY
				g.platforms = append(g.platforms, &Platform{Box: b, Active: true})
			}
			plats := slices.Clone(g.platforms)

			g.player.Box = tc.player
			g.player.Y += levelY
			g.player.VelY = 3
			g.player.Jumping = true
			g.player.OnPlatform = false

			g.resolveCollisions()
			events := g.Drain()

			if g.phase != tc.wantPhase {
				t.Errorf("phase = %v, expected %v", g.phase, tc.wantPhase)
			}
			if g.score != tc.wantScore {
				t.Errorf("score = %d, expected %d", g.score, tc.wantScore)
			}
			if n := countEvents(events, core.EventGameOver); n != tc.wantOver {
				t.Errorf("GameOver emitted %d times, expected %d", n, tc.wantOver)
			}
			if n := countEvents(events, core.EventMusicStop); n != tc.wantOver {
				t.Errorf("MusicStop emitted %d times, expected %d", n, tc.wantOver)
			}
			if n := countEvents(events, core.EventLanding); n != min(1, tc.seated+1) {
				t.Errorf("Landing emitted %d times", n)
			}

			for i, p := range plats {
				if p.Stopped != (i == tc.seated) {
					t.Errorf("platform %d stopped = %v", i, p.Stopped)
				}
			}
			if tc.seated >= 0 && g.player.platform != plats[tc.seated] {
				t.Errorf("player seated on the wrong platform")
			}
		})
	}
}
