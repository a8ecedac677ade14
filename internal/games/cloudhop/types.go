package cloudhop

import (
	"github.com/vovakirdan/cloudhop/internal/core"
)

// Phase is the round lifecycle.
type Phase int

const (
	PhaseWaiting  Phase = iota // Standing on the start platform, nothing moves
	PhasePlaying               // Platforms spawn and drift
	PhaseGameOver              // Terminal until Reset
)

// String returns the phase name reported in core.GameState.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Player is the controllable box. Only its vertical state changes.
type Player struct {
	core.Box
	VelY       float64 // Positive is downward
	Jumping    bool    // Airborne since the last launch
	OnPlatform bool    // Seated on the start platform or a moving one
	JumpStartY float64 // Y at launch, for the jump height budget

	// platform is the moving platform the player was last seated on, or nil
	// for the start platform. The live platform list owns it.
	platform *Platform
}

// Platform is a moving cloud.
type Platform struct {
	core.Box
	Direction int     // +1 moves right, -1 moves left
	Speed     float64 // Pixels per tick, never negative
	Active    bool
	Stopped   bool    // Frozen after a landing or when clamped on screen
	ReachMin  float64 // Reachable zone, left bound
	ReachMax  float64 // Reachable zone, right bound
	Level     int     // Level this platform was generated for
}

// BestScoreStore is the external best-score persistence.
type BestScoreStore interface {
	BestScore() (int, error)
	SetBestScore(score int) error
}

// Snapshot is a read-only copy of the world geometry for front ends.
type Snapshot struct {
	Phase     Phase
	Score     int
	Best      int
	Paused    bool
	WorldW    float64
	WorldH    float64
	CameraY   float64
	Player    core.Box
	Start     core.Box
	Platforms []core.Box
}
