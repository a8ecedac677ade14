// Package config provides YAML-based tuning configuration loading and
// difficulty management for the game.
package config

// Config contains all tuning values for the simulation.
type Config struct {
	World         World            `yaml:"world"`
	Physics       Physics          `yaml:"physics"`
	Player        Player           `yaml:"player"`
	StartPlatform StartPlatform    `yaml:"start_platform"`
	Platforms     Platforms        `yaml:"platforms"`
	Collision     Collision        `yaml:"collision"`
	Camera        Camera           `yaml:"camera"`
	Timing        Timing           `yaml:"timing"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// World defines the visible play area in world pixels.
type World struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FallMargin float64 `yaml:"fall_margin"` // How far below the viewport a fall is fatal
}

// Physics defines the vertical integrator parameters.
type Physics struct {
	Gravity    float64 `yaml:"gravity"`     // Added to velocity every airborne tick
	JumpSpeed  float64 `yaml:"jump_speed"`  // Launch speed; applied upward
	JumpHeight float64 `yaml:"jump_height"` // Upward travel cap per jump
}

// Player defines the player hitbox.
type Player struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// StartPlatform defines the stationary origin platform.
type StartPlatform struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from world bottom to its top edge
}

// Platforms defines moving platform geometry and spawn bounds.
type Platforms struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	LevelHeight     float64 `yaml:"level_height"`
	SpawnOffset     float64 `yaml:"spawn_offset"`     // Spawn distance beyond the screen edge
	ExitMargin      float64 `yaml:"exit_margin"`      // Distance past the edge before removal
	SafeInset       float64 `yaml:"safe_inset"`       // Clamp inset for occupied platforms
	ReachableMargin float64 `yaml:"reachable_margin"` // Reachable zone inset from each edge
}

// Collision defines the classification thresholds.
type Collision struct {
	LandingWindow      float64 `yaml:"landing_window"`
	LandingTolerance   float64 `yaml:"landing_tolerance"`
	StartLandingWindow float64 `yaml:"start_landing_window"`
	HeadTolerance      float64 `yaml:"head_tolerance"`
	SideRatio          float64 `yaml:"side_ratio"`
}

// Camera defines scroll smoothing.
type Camera struct {
	Smoothing float64 `yaml:"smoothing"` // Fraction of remaining distance per tick, (0,1]
}

// Timing defines the fixed simulation rate.
type Timing struct {
	TickRate int `yaml:"tick_rate"`
}

// DifficultyConfig defines platform speed progression.
type DifficultyConfig struct {
	Preset    DifficultyPreset `yaml:"preset"`
	BaseSpeed float64          `yaml:"base_speed"`
	SpeedStep float64          `yaml:"speed_step"` // Added per level reached
	MaxSpeed  float64          `yaml:"max_speed"`  // 0 = uncapped
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}
