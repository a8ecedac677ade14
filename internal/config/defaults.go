package config

import (
	_ "embed"
)

//go:embed defaults/cloudhop.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		World: World{
			Width:      400,
			Height:     600,
			FallMargin: 100,
		},
		Physics: Physics{
			Gravity:    0.5,
			JumpSpeed:  10,
			JumpHeight: 70,
		},
		Player: Player{
			Width:  30,
			Height: 30,
		},
		StartPlatform: StartPlatform{
			Width:        120,
			Height:       20,
			BottomOffset: 120,
		},
		Platforms: Platforms{
			Width:           100,
			Height:          20,
			LevelHeight:     60,
			SpawnOffset:     20,
			ExitMargin:      50,
			SafeInset:       10,
			ReachableMargin: 150,
		},
		Collision: Collision{
			LandingWindow:      25,
			LandingTolerance:   10,
			StartLandingWindow: 20,
			HeadTolerance:      5,
			SideRatio:          0.7,
		},
		Camera: Camera{
			Smoothing: 0.05,
		},
		Timing: Timing{
			TickRate: 60,
		},
		Difficulty: DifficultyConfig{
			Preset:    DifficultyNormal,
			BaseSpeed: 3,
			SpeedStep: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
