package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
	"github.com/vovakirdan/cloudhop/internal/platform/gui"
	"github.com/vovakirdan/cloudhop/internal/skins"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play there. Uses the same scores,
best score and skin selection as the terminal.

Controls:
  Space/Up/W  - Jump
  P           - Pause
  R/Enter     - Restart (after game over)
  Esc/Q       - Quit

Examples:
  cloudhop window
  cloudhop window --scale 1.5 --name alice`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	addTuningFlags(windowCmd)
	windowCmd.Flags().StringVar(&flagName, "name", "", "Nickname for the leaderboard (3-12 characters)")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per world pixel")
}

func runWindow(_ *cobra.Command, _ []string) error {
	logger, closeLog := newFileLogger()
	defer closeLog()

	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	loadSkinPacks(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	nickname, err := resolveNickname(store)
	if err != nil {
		return err
	}

	game := cloudhop.New(tuning)
	opts := gui.Options{
		Nickname: nickname,
		Scale:    flagScale,
		Seed:     flagSeed,
		Logger:   logger,
	}
	if store != nil {
		game.LoadBest(store)
		game.SetAppearance(skins.Current(store, game.State().BestScore))
		opts.Scores = store
		opts.BestSaver = store
	}

	out := openAudio(logger)
	defer out.Close()
	opts.Audio = out

	updates, stopWatch := watchTuning(logger)
	defer stopWatch()
	opts.Updates = updates

	logger.Info("opening window", "nickname", nickname)
	if err := gui.Run(game, opts); err != nil {
		return fmt.Errorf("error running window: %w", err)
	}
	return nil
}
