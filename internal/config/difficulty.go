package config

// DifficultyManager calculates platform speed from progress.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Speed returns the platform speed for the given score.
// It never decreases as the score grows.
func (d *DifficultyManager) Speed(score int) float64 {
	if score < 0 {
		score = 0
	}
	speed := d.cfg.BaseSpeed + float64(score)*d.cfg.SpeedStep
	if d.cfg.MaxSpeed > 0 && speed > d.cfg.MaxSpeed {
		speed = d.cfg.MaxSpeed
	}
	return speed
}

// IsProgressive reports whether speed grows with score.
func (d *DifficultyManager) IsProgressive() bool {
	return d.cfg.SpeedStep > 0
}
