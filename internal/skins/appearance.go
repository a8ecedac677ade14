package skins

import (
	"github.com/vovakirdan/cloudhop/internal/core"
)

// Placeholder values used when no skin can be resolved.
const (
	PlaceholderGlyph = '■'
	PlaceholderFill  = '█'
)

// Appearance is the drawable handle for the player.
// Terminal front ends use Glyph, Fill and Color; the window front end
// tries ImagePath first and falls back to a flat box in Color.
type Appearance struct {
	SkinID      string
	Glyph       rune
	Fill        rune
	Color       core.Color
	ImagePath   string
	Placeholder bool // True when the skin could not be resolved
}

// PlaceholderAppearance returns the flat box used when a skin is missing.
func PlaceholderAppearance() Appearance {
	return Appearance{
		Glyph:       PlaceholderGlyph,
		Fill:        PlaceholderFill,
		Color:       core.ColorBrightBlue,
		Placeholder: true,
	}
}

// AppearanceOf resolves a skin ID into an appearance.
// Unknown skins degrade to the placeholder.
func AppearanceOf(id string) Appearance {
	s, err := Get(id)
	if err != nil {
		return PlaceholderAppearance()
	}
	return s.Appearance()
}

// Appearance converts the skin into its drawable handle.
func (s Skin) Appearance() Appearance {
	a := Appearance{
		SkinID:    s.ID,
		Glyph:     firstRune(s.Glyph, PlaceholderGlyph),
		Fill:      firstRune(s.Fill, firstRune(s.Glyph, PlaceholderFill)),
		ImagePath: s.ImagePath,
	}
	a.Color, _ = ParseColor(s.Color)
	return a
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
