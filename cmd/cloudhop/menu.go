package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cloudhop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the menu",
	Long: `Start cloudhop in interactive menu mode.

Enter a nickname, pick an unlocked skin, then play or browse the
leaderboard. After a round, B returns to the menu.

Controls:
  Up/Down/Tab  - Navigate menu
  Left/Right   - Cycle skins
  Enter        - Select
  Esc/Q        - Quit

Examples:
  cloudhop menu
  cloudhop menu --fps 30
  cloudhop menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addTuningFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newFileLogger()
	defer closeLog()

	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	loadSkinPacks(logger)

	opts := tui.SessionOptions{
		Tuning: tuning,
		Logger: logger,
	}
	if store := openStore(logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	out := openAudio(logger)
	defer out.Close()
	opts.Audio = out

	updates, stopWatch := watchTuning(logger)
	defer stopWatch()
	opts.Updates = updates

	if err := tui.RunSession(terminalRuntime(), opts); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}
