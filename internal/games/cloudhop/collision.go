package cloudhop

import (
	"math"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// Contact classifies one player/platform overlap.
type Contact int

const (
	ContactNone    Contact = iota // No overlap
	ContactLanding                // Descending onto the top edge
	ContactPassing                // Harmless overlap, e.g. flying under
	ContactHead                   // Ascending into the underside, fatal
	ContactSide                   // Hitting an edge, fatal
)

// Fatal reports whether the contact ends the round.
func (c Contact) Fatal() bool {
	return c == ContactHead || c == ContactSide
}

// classify decides what an overlap between player and platform means.
// Landing takes priority, so a landing is never also fatal.
func classify(p Player, plat core.Box, col collisionRules) Contact {
	if !p.Overlaps(plat) {
		return ContactNone
	}

	xDist := math.Abs(p.CenterX() - plat.CenterX())
	maxX := (p.W + plat.W) / 2
	bottom := p.Bottom()

	if p.VelY > 0 &&
		xDist < maxX &&
		math.Abs(bottom-plat.Y) < col.LandingWindow &&
		bottom <= plat.Y+col.LandingTolerance {
		return ContactLanding
	}

	if p.VelY < 0 && p.Y >= plat.Y-col.HeadTolerance {
		return ContactHead
	}
	if xDist > maxX*col.SideRatio {
		return ContactSide
	}
	return ContactPassing
}

// collisionRules holds the thresholds used by classify.
type collisionRules struct {
	LandingWindow    float64
	LandingTolerance float64
	HeadTolerance    float64
	SideRatio        float64
}

// resolveCollisions checks the airborne player against every active platform.
// At most one landing resolves per tick and a fatal contact stops the scan.
// Calling it for a grounded player is a state machine bug and panics.
func (g *Game) resolveCollisions() {
	if !g.player.Jumping {
		panic("cloudhop: resolveCollisions called while player is not airborne")
	}
	if g.phase != PhasePlaying {
		return
	}

	for _, plat := range g.platforms {
		if !plat.Active {
			continue
		}

		switch contact := classify(g.player, plat.Box, g.rules); {
		case contact == ContactLanding:
			g.land(plat)
			return
		case contact.Fatal():
			g.endRound()
			return
		}
	}
}

// land seats the player on plat, freezes it and scores a new level.
func (g *Game) land(plat *Platform) {
	p := &g.player
	p.Y = plat.Y - p.H
	p.VelY = 0
	p.Jumping = false
	p.OnPlatform = true
	p.platform = plat
	g.emit(core.EventLanding, 0)

	plat.Speed = 0
	plat.Stopped = true

	level := g.levelOf(plat)
	if level <= g.score {
		return
	}

	g.score = level
	g.emit(core.EventScoreChanged, g.score)
	if g.score > g.best {
		g.best = g.score
		g.emit(core.EventNewBest, g.best)
	}
	g.spawnNext()
}

// levelOf returns the height tier of a platform above the start platform.
func (g *Game) levelOf(plat *Platform) int {
	return int(math.Round((g.start.Y - plat.Y) / g.cfg.Platforms.LevelHeight))
}
