package skins

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Pack is a TOML file holding one or more user skins:
//
//	[[skin]]
//	id = "frog"
//	name = "Frog"
//	glyph = "@"
//	color = "green"
//	unlock_score = 3
type Pack struct {
	Skins []Skin `toml:"skin"`
}

// PacksDir returns ~/.cloudhop/skins, or empty if home is unavailable.
func PacksDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cloudhop", "skins")
}

// DecodePack reads one pack file.
// Relative image paths are resolved against the pack's directory.
func DecodePack(path string) (Pack, error) {
	var p Pack
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Pack{}, fmt.Errorf("skins: cannot decode %s: %w", path, err)
	}
	for i := range p.Skins {
		img := p.Skins[i].ImagePath
		if img != "" && !filepath.IsAbs(img) {
			p.Skins[i].ImagePath = filepath.Join(filepath.Dir(path), img)
		}
	}
	return p, nil
}

// LoadPacks adds every skin from the *.toml files in dir to the catalog.
// A missing directory is not an error. Broken files and invalid skins are
// skipped and reported together; valid skins are still added.
func LoadPacks(dir string) (int, error) {
	if dir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("skins: cannot read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".toml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	added := 0
	var errs []error
	for _, name := range names {
		p, err := DecodePack(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, s := range p.Skins {
			if err := Add(s); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			added++
		}
	}
	return added, errors.Join(errs...)
}

// WritePack encodes a pack to path, used to export a starter file.
func WritePack(path string, p Pack) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("skins: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("skins: cannot create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("skins: cannot encode %s: %w", path, err)
	}
	return nil
}
