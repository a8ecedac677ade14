// Package skins provides the player appearance catalog.
// Built-in skins register themselves in init() functions, user packs are
// loaded from TOML files, and the front ends only ever see an Appearance.
package skins

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// DefaultID is the skin every player owns from the start.
const DefaultID = "default"

var (
	// ErrUnknownSkin is returned when a skin ID is not in the catalog.
	ErrUnknownSkin = errors.New("unknown skin")
	// ErrLocked is returned when selecting a skin whose unlock score is not reached.
	ErrLocked = errors.New("skin is locked")
)

// Skin describes one player appearance.
type Skin struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Glyph       string `toml:"glyph"`        // Single rune drawn for the player in the terminal
	Fill        string `toml:"fill"`         // Optional rune for the rest of the hitbox
	Color       string `toml:"color"`        // Colour name, see ParseColor
	ImagePath   string `toml:"image"`        // Optional image for the window front end
	UnlockScore int    `toml:"unlock_score"` // Best score needed to select this skin
}

// Validate checks that a skin can be drawn.
func (s Skin) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("skins: empty id")
	}
	if utf8.RuneCountInString(s.Glyph) != 1 {
		return fmt.Errorf("skins: %s: glyph must be a single character, got %q", s.ID, s.Glyph)
	}
	if s.Fill != "" && utf8.RuneCountInString(s.Fill) != 1 {
		return fmt.Errorf("skins: %s: fill must be a single character, got %q", s.ID, s.Fill)
	}
	if _, ok := ParseColor(s.Color); !ok {
		return fmt.Errorf("skins: %s: unknown color %q", s.ID, s.Color)
	}
	if s.UnlockScore < 0 {
		return fmt.Errorf("skins: %s: negative unlock score", s.ID)
	}
	return nil
}

// Unlocked reports whether the skin is available for the given best score.
func (s Skin) Unlocked(best int) bool {
	return best >= s.UnlockScore
}

var (
	catalog = make(map[string]Skin)
	mu      sync.RWMutex
)

// Register adds a built-in skin to the catalog.
// Typically called from an init() function.
// Panics if the skin is invalid or already registered.
func Register(s Skin) {
	if err := Add(s); err != nil {
		panic(err)
	}
}

// Add adds a skin to the catalog.
func Add(s Skin) error {
	if err := s.Validate(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := catalog[s.ID]; exists {
		return fmt.Errorf("skins: skin %q already registered", s.ID)
	}
	if s.Name == "" {
		s.Name = s.ID
	}
	catalog[s.ID] = s
	return nil
}

// List returns all skins, cheapest first and then by ID.
func List() []Skin {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Skin, 0, len(catalog))
	for _, s := range catalog {
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].UnlockScore != result[j].UnlockScore {
			return result[i].UnlockScore < result[j].UnlockScore
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get looks up a skin by ID.
func Get(id string) (Skin, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := catalog[id]
	if !ok {
		return Skin{}, fmt.Errorf("skins: %w %q", ErrUnknownSkin, id)
	}
	return s, nil
}

// Exists checks if a skin with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := catalog[id]
	return ok
}

// Available returns the skins unlocked by the given best score.
func Available(best int) []Skin {
	all := List()
	result := all[:0]
	for _, s := range all {
		if s.Unlocked(best) {
			result = append(result, s)
		}
	}
	return result
}

// CheckSelectable returns the skin if it exists and is unlocked.
func CheckSelectable(id string, best int) (Skin, error) {
	s, err := Get(id)
	if err != nil {
		return Skin{}, err
	}
	if !s.Unlocked(best) {
		return Skin{}, fmt.Errorf("skins: %w: %q needs a best score of %d", ErrLocked, id, s.UnlockScore)
	}
	return s, nil
}

// Selector persists the chosen skin ID.
type Selector interface {
	SelectedSkin() (string, error)
	SelectSkin(id string) error
}

// Select validates and persists a skin choice.
func Select(store Selector, id string, best int) error {
	if _, err := CheckSelectable(id, best); err != nil {
		return err
	}
	if err := store.SelectSkin(id); err != nil {
		return fmt.Errorf("skins: cannot save selection: %w", err)
	}
	return nil
}

// Current returns the appearance of the persisted selection.
// A missing, unknown or no longer unlocked selection falls back to the default skin.
func Current(store Selector, best int) Appearance {
	id, err := store.SelectedSkin()
	if err != nil || id == "" {
		return AppearanceOf(DefaultID)
	}
	if _, err := CheckSelectable(id, best); err != nil {
		return AppearanceOf(DefaultID)
	}
	return AppearanceOf(id)
}

// ParseColor maps a colour name to a terminal colour.
// The empty string is the default colour.
func ParseColor(name string) (core.Color, bool) {
	return core.ParseColor(name)
}
