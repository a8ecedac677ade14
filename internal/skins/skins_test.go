package skins

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cloudhop/internal/core"
)

type memSelector struct {
	id  string
	err error
}

func (m *memSelector) SelectedSkin() (string, error) { return m.id, m.err }
func (m *memSelector) SelectSkin(id string) error {
	m.id = id
	return nil
}

func TestBuiltinCatalog(t *testing.T) {
	list := List()
	if len(list) < 2 {
		t.Fatalf("expected several built-in skins, got %d", len(list))
	}
	if list[0].ID != DefaultID || list[0].UnlockScore != 0 {
		t.Errorf("first skin = %+v, expected the free default", list[0])
	}
	for i := 1; i < len(list); i++ {
		if list[i].UnlockScore < list[i-1].UnlockScore {
			t.Errorf("List() not ordered by unlock score at %d", i)
		}
	}
	for _, s := range list {
		if err := s.Validate(); err != nil {
			t.Errorf("built-in skin %s invalid: %v", s.ID, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		skin Skin
		ok   bool
	}{
		{"valid", Skin{ID: "a", Glyph: "@", Color: "green"}, true},
		{"empty id", Skin{Glyph: "@"}, false},
		{"long glyph", Skin{ID: "b", Glyph: "ab"}, false},
		{"empty glyph", Skin{ID: "c"}, false},
		{"bad fill", Skin{ID: "d", Glyph: "@", Fill: "xx"}, false},
		{"bad color", Skin{ID: "e", Glyph: "@", Color: "plaid"}, false},
		{"negative unlock", Skin{ID: "f", Glyph: "@", UnlockScore: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.skin.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestAppearanceFallback(t *testing.T) {
	a := AppearanceOf("does-not-exist")
	if !a.Placeholder || a.Glyph != PlaceholderGlyph {
		t.Errorf("unknown skin should degrade to placeholder, got %+v", a)
	}

	d := AppearanceOf(DefaultID)
	if d.Placeholder || d.SkinID != DefaultID {
		t.Errorf("default appearance = %+v", d)
	}
	if d.Color != core.ColorBrightCyan {
		t.Errorf("default color = %v", d.Color)
	}
}

func TestSelectUnlocking(t *testing.T) {
	store := &memSelector{}

	if err := Select(store, "star", 3); !errors.Is(err, ErrLocked) {
		t.Errorf("Select(locked) = %v, expected ErrLocked", err)
	}
	if err := Select(store, "nope", 100); !errors.Is(err, ErrUnknownSkin) {
		t.Errorf("Select(unknown) = %v, expected ErrUnknownSkin", err)
	}
	if err := Select(store, "star", 10); err != nil {
		t.Fatalf("Select(unlocked) failed: %v", err)
	}
	if store.id != "star" {
		t.Errorf("selection not persisted, got %q", store.id)
	}

	if a := Current(store, 10); a.SkinID != "star" {
		t.Errorf("Current() = %q, expected star", a.SkinID)
	}
	// A selection that is no longer unlocked falls back to the default.
	if a := Current(store, 0); a.SkinID != DefaultID {
		t.Errorf("Current() with low best = %q, expected default", a.SkinID)
	}
	if a := Current(&memSelector{err: errors.New("db gone")}, 50); a.SkinID != DefaultID {
		t.Errorf("Current() on store error = %q, expected default", a.SkinID)
	}
}

func TestAvailable(t *testing.T) {
	for _, s := range Available(0) {
		if s.UnlockScore > 0 {
			t.Errorf("Available(0) contains locked skin %s", s.ID)
		}
	}
	if len(Available(1000)) != len(List()) {
		t.Error("a huge best score should unlock every skin")
	}
}

func TestLoadPacks(t *testing.T) {
	dir := t.TempDir()
	good := `
[[skin]]
id = "pack-frog"
name = "Frog"
glyph = "@"
color = "green"
unlock_score = 3
image = "frog.png"

[[skin]]
id = "pack-bad"
glyph = "toolong"
`
	if err := os.WriteFile(filepath.Join(dir, "frog.toml"), []byte(good), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("[[skin]\nid="), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	added, err := LoadPacks(dir)
	if added != 1 {
		t.Errorf("LoadPacks() added %d skins, expected 1", added)
	}
	if err == nil {
		t.Error("LoadPacks() should report the broken file and invalid skin")
	}

	frog, err := Get("pack-frog")
	if err != nil {
		t.Fatalf("Get(pack-frog) failed: %v", err)
	}
	if frog.ImagePath != filepath.Join(dir, "frog.png") {
		t.Errorf("image path = %q, expected it resolved against the pack dir", frog.ImagePath)
	}
	if Exists("pack-bad") {
		t.Error("invalid skin should not be registered")
	}
}

func TestLoadPacksMissingDir(t *testing.T) {
	added, err := LoadPacks(filepath.Join(t.TempDir(), "none"))
	if added != 0 || err != nil {
		t.Errorf("LoadPacks(missing) = %d, %v", added, err)
	}
}

func TestWritePackRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "starter.toml")
	in := Pack{Skins: []Skin{{ID: "starter", Name: "Starter", Glyph: "&", Color: "red", UnlockScore: 2}}}

	if err := WritePack(path, in); err != nil {
		t.Fatalf("WritePack() failed: %v", err)
	}
	out, err := DecodePack(path)
	if err != nil {
		t.Fatalf("DecodePack() failed: %v", err)
	}
	if len(out.Skins) != 1 || out.Skins[0] != in.Skins[0] {
		t.Errorf("round trip = %+v, expected %+v", out.Skins, in.Skins)
	}
}

func TestAddDuplicate(t *testing.T) {
	if err := Add(Skin{ID: DefaultID, Glyph: "x"}); err == nil {
		t.Error("adding a duplicate id should fail")
	}
}
