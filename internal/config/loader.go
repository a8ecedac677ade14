package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "cloudhop.yaml"

// ErrInvalid is returned when a config fails validation.
var ErrInvalid = errors.New("invalid config")

// Load loads the tuning configuration.
// Search order: customPath -> ~/.cloudhop/configs/cloudhop.yaml -> ./configs/cloudhop.yaml -> embedded default.
// Only a failing customPath is an error; broken files in the search
// directories are skipped.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range SearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result,
// so partial files only override what they mention.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// SearchPaths returns the non-custom lookup locations in priority order.
func SearchPaths() []string {
	paths := make([]string, 0, 2)
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cloudhop", "configs", filename)
}

// Validate checks that tuning values keep the simulation well-defined.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.jump_speed", c.Physics.JumpSpeed)
	positive("physics.jump_height", c.Physics.JumpHeight)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("start_platform.width", c.StartPlatform.Width)
	positive("start_platform.height", c.StartPlatform.Height)
	positive("platforms.width", c.Platforms.Width)
	positive("platforms.height", c.Platforms.Height)
	positive("platforms.level_height", c.Platforms.LevelHeight)

	if c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1 {
		errs = append(errs, fmt.Errorf("camera.smoothing must be in (0,1], got %v", c.Camera.Smoothing))
	}
	if c.Collision.SideRatio <= 0 || c.Collision.SideRatio > 1 {
		errs = append(errs, fmt.Errorf("collision.side_ratio must be in (0,1], got %v", c.Collision.SideRatio))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Difficulty.BaseSpeed < 0 || c.Difficulty.SpeedStep < 0 || c.Difficulty.MaxSpeed < 0 {
		errs = append(errs, errors.New("difficulty speeds must not be negative"))
	}
	if _, ok := ParsePreset(string(c.Difficulty.Preset)); !ok {
		errs = append(errs, fmt.Errorf("unknown difficulty preset %q", c.Difficulty.Preset))
	}
	if c.StartPlatform.BottomOffset >= c.World.Height {
		errs = append(errs, errors.New("start_platform.bottom_offset must be inside the world"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// ApplyPreset scales the configured speed progression for a difficulty preset.
// Normal keeps the configured values as they are.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.BaseSpeed *= 0.8
		cfg.Difficulty.SpeedStep *= 0.7
	case DifficultyHard:
		cfg.Difficulty.BaseSpeed *= 1.3
		cfg.Difficulty.SpeedStep *= 1.4
	case DifficultyFixed:
		cfg.Difficulty.SpeedStep = 0
	}
}
