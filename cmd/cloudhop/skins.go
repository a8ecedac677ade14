package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cloudhop/internal/skins"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "List or select player skins",
	Long: `Manage player skins.

Skins unlock once your best score reaches their unlock score. User
skins are read from *.toml packs in ~/.cloudhop/skins.

Examples:
  cloudhop skins list
  cloudhop skins use star
  cloudhop skins init`,
}

var skinsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skins and whether they are unlocked",
	Args:  cobra.NoArgs,
	RunE:  runSkinsList,
}

var skinsUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select a skin for the next games",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkinsUse,
}

var skinsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example skin pack to ~/.cloudhop/skins",
	Args:  cobra.NoArgs,
	RunE:  runSkinsInit,
}

func init() {
	skinsCmd.AddCommand(skinsListCmd)
	skinsCmd.AddCommand(skinsUseCmd)
	skinsCmd.AddCommand(skinsInitCmd)
}

// openSkinStore loads user packs and opens the database for the best
// score and the current selection.
func openSkinStore() (*storage.Store, int, error) {
	if _, err := skins.LoadPacks(skins.PacksDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errNoStore, err)
	}
	best, err := store.BestScore()
	if err != nil {
		best = 0
	}
	return store, best, nil
}

func runSkinsList(cmd *cobra.Command, _ []string) error {
	store, best, err := openSkinStore()
	if err != nil {
		return err
	}
	defer store.Close()

	current := skins.Current(store, best).SkinID
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Skins (best score: %d)\n\n", best)
	fmt.Fprintf(w, "    %-10s  %-12s  %-5s  %s\n", "ID", "Name", "Glyph", "Unlock")
	fmt.Fprintf(w, "    %-10s  %-12s  %-5s  %s\n", "--", "----", "-----", "------")
	for _, s := range skins.List() {
		marker := "  "
		if s.ID == current {
			marker = "* "
		}
		status := "unlocked"
		if !s.Unlocked(best) {
			status = fmt.Sprintf("at %d", s.UnlockScore)
		}
		fmt.Fprintf(w, "  %s%-10s  %-12s  %-5s  %s\n", marker, s.ID, s.Name, s.Glyph, status)
	}
	return nil
}

func runSkinsUse(cmd *cobra.Command, args []string) error {
	store, best, err := openSkinStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id := args[0]
	if err := skins.Select(store, id, best); err != nil {
		if errors.Is(err, skins.ErrLocked) {
			s, _ := skins.Get(id)
			return fmt.Errorf("%w: reach %d to unlock %s", err, s.UnlockScore, id)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Selected skin %q.\n", id)
	return nil
}

func runSkinsInit(cmd *cobra.Command, _ []string) error {
	dir := skins.PacksDir()
	if dir == "" {
		return errors.New("cannot find home directory")
	}
	path := filepath.Join(dir, "example.toml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	pack := skins.Pack{Skins: []skins.Skin{
		{ID: "frog", Name: "Frog", Glyph: "@", Fill: "▓", Color: "green", UnlockScore: 3},
		{ID: "ember", Name: "Ember", Glyph: "♦", Color: "red", UnlockScore: 15},
	}}
	if err := skins.WritePack(path, pack); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
