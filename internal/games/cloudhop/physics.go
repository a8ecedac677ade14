package cloudhop

import (
	"math"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// integratePlayer advances the player's vertical state by one tick.
// While airborne gravity applies; otherwise the player is pinned to its support.
func (g *Game) integratePlayer() {
	p := &g.player

	if !p.Jumping {
		p.Y = g.supportY() - p.H
		p.VelY = 0
		p.OnPlatform = true
		return
	}

	p.VelY += g.cfg.Physics.Gravity
	p.Y += p.VelY

	// Jump height budget: stop rising once it is spent.
	if p.JumpStartY-p.Y >= g.cfg.Physics.JumpHeight && p.VelY < 0 {
		p.VelY = 0
	}

	if p.VelY > 0 {
		g.landOnStart()
	}
}

// supportY returns the top edge of whatever the player stands on.
func (g *Game) supportY() float64 {
	if g.player.platform != nil {
		return g.player.platform.Y
	}
	return g.start.Y
}

// landOnStart seats a descending player on the start platform when close enough.
func (g *Game) landOnStart() {
	p := &g.player
	if p.VelY <= 0 {
		return
	}

	maxX := (p.W + g.start.W) / 2
	if math.Abs(p.CenterX()-g.start.CenterX()) >= maxX {
		return
	}
	if math.Abs(p.Bottom()-g.start.Y) >= g.cfg.Collision.StartLandingWindow {
		return
	}

	p.Y = g.start.Y - p.H
	p.VelY = 0
	p.Jumping = false
	p.OnPlatform = true
	p.platform = nil
	if g.phase == PhasePlaying {
		g.emit(core.EventLanding, 0)
	}
}

// advancePlatforms moves every active platform and handles those that left
// the screen. An occupied platform is clamped on screen and stopped instead of
// being removed; an unoccupied platform that was never landed on counts as a
// miss and is replaced.
func (g *Game) advancePlatforms() {
	pc := g.cfg.Platforms
	worldW := g.cfg.World.Width

	kept := g.platforms[:0]
	missed := 0
	for _, plat := range g.platforms {
		if !plat.Active {
			kept = append(kept, plat)
			continue
		}
		if plat.Direction != 1 && plat.Direction != -1 {
			panic("cloudhop: platform direction must be +1 or -1")
		}

		if !plat.Stopped {
			plat.X += float64(plat.Direction) * plat.Speed
		}

		exited := (plat.Direction == 1 && plat.X > worldW+pc.ExitMargin) ||
			(plat.Direction == -1 && plat.X < -plat.W-pc.ExitMargin)
		if !exited {
			kept = append(kept, plat)
			continue
		}

		if g.player.platform == plat {
			if plat.Direction == 1 {
				plat.X = worldW - plat.W - pc.SafeInset
			} else {
				plat.X = pc.SafeInset
			}
			plat.Stopped = true
			kept = append(kept, plat)
			continue
		}

		if !plat.Stopped && g.phase == PhasePlaying {
			missed++
		}
	}

	// Clear dropped tail entries so removed platforms can be collected.
	for i := len(kept); i < len(g.platforms); i++ {
		g.platforms[i] = nil
	}
	g.platforms = kept

	for range missed {
		g.spawnNext()
	}
}
