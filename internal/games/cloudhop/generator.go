package cloudhop

import (
	"math/rand"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
)

// Generator produces the next platform from game progress.
// It uses a seeded RNG for deterministic behavior.
type Generator struct {
	rng        *rand.Rand
	cfg        config.Config
	difficulty *config.DifficultyManager
	startY     float64
	lastDir    int // Direction of the previous spawn, 0 before the first
	spawned    int
}

// NewGenerator creates a generator for platforms above the start platform at startY.
func NewGenerator(seed int64, cfg config.Config, startY float64) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		startY:     startY,
	}
}

// Next returns a platform one level above the given score.
// It enters from the side opposite to the previous platform's travel,
// or from a random side for the first one.
func (g *Generator) Next(score int) *Platform {
	var fromLeft bool
	switch g.lastDir {
	case 1:
		fromLeft = false
	case -1:
		fromLeft = true
	default:
		fromLeft = g.rng.Float64() > 0.5
	}

	pc := g.cfg.Platforms
	worldW := g.cfg.World.Width
	level := score + 1

	x := worldW + pc.SpawnOffset
	dir := -1
	if fromLeft {
		x = -pc.Width - pc.SpawnOffset
		dir = 1
	}

	g.lastDir = dir
	g.spawned++

	return &Platform{
		Box:       core.Box{X: x, Y: g.startY - pc.LevelHeight*float64(level), W: pc.Width, H: pc.Height},
		Direction: dir,
		Speed:     g.difficulty.Speed(score),
		Active:    true,
		ReachMin:  pc.ReachableMargin,
		ReachMax:  worldW - pc.ReachableMargin,
		Level:     level,
	}
}

// Spawned returns how many platforms this generator has produced.
func (g *Generator) Spawned() int {
	return g.spawned
}
