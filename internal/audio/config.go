// Package audio plays the game's synthesised sound effects and music.
// Every call is fire-and-forget: requests are queued to a worker and
// dropped when the queue is full, so the simulation never waits on sound.
package audio

import (
	"os"
	"strconv"
)

// Config controls audio output.
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SFXVolume    float64 // 0.0-1.0, effects relative to master
	MusicVolume  float64 // 0.0-1.0, music relative to master
	SampleRate   int
}

// DefaultConfig returns the built-in audio settings.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.7,
		SFXVolume:    0.7,
		MusicVolume:  0.3,
		SampleRate:   44100,
	}
}

// LoadConfig loads audio configuration from environment variables.
// Volumes are given as 0-100. Unparsable values keep the defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("CLOUDHOP_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	cfg.MasterVolume = envVolume("CLOUDHOP_MASTER_VOLUME", cfg.MasterVolume)
	cfg.SFXVolume = envVolume("CLOUDHOP_SFX_VOLUME", cfg.SFXVolume)
	cfg.MusicVolume = envVolume("CLOUDHOP_MUSIC_VOLUME", cfg.MusicVolume)

	if sampleRate := os.Getenv("CLOUDHOP_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func envVolume(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return min(max(float64(val)/100.0, 0), 1)
}
