package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cloudhop/internal/audio"
	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
	"github.com/vovakirdan/cloudhop/internal/platform/tui"
	"github.com/vovakirdan/cloudhop/internal/skins"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

const defaultNickname = "player"

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagWatch      bool
	flagNoAudio    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single game",
	Long: `Start a game straight away, without the menu.

Controls:
  Space/Up/W  - Jump (the first jump starts the round)
  P           - Pause
  R/Enter     - Restart (after game over)
  Q/Ctrl+C    - Quit
  Ctrl+S      - Save a text screenshot

Difficulty options:
  easy   - Slower clouds, gentle speed-up
  normal - Configured speeds
  hard   - Faster clouds, steep speed-up
  fixed  - Clouds never speed up

Examples:
  cloudhop play
  cloudhop play --difficulty easy
  cloudhop play --name alice --no-audio
  cloudhop play --config ./cloudhop.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

// addTuningFlags registers the flags shared by every command that runs a game.
func addTuningFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config on change, applied at the next round")
	cmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound")
}

func init() {
	addTuningFlags(playCmd)
	playCmd.Flags().StringVar(&flagName, "name", "", "Nickname for the leaderboard (3-12 characters)")
}

func runPlay(_ *cobra.Command, _ []string) error {
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
	opts := tui.GameOptions{
		Nickname: nickname,
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

	logger.Info("starting game", "nickname", nickname, "difficulty", tuning.Difficulty.Preset)
	if err := tui.Run(game, terminalRuntime(), opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// resolveNickname picks --name, then the remembered nickname, then a default.
func resolveNickname(store *storage.Store) (string, error) {
	if flagName != "" {
		if err := tui.ValidateNickname(flagName); err != nil {
			return "", fmt.Errorf("invalid --name: %w", err)
		}
		if store != nil {
			_ = store.SetNickname(flagName)
		}
		return flagName, nil
	}
	if store != nil {
		if nick, err := store.Nickname(); err == nil && tui.ValidateNickname(nick) == nil {
			return nick, nil
		}
	}
	return defaultNickname, nil
}

// loadTuning loads the tuning and applies the difficulty preset.
// --difficulty overrides the preset named in the file.
func loadTuning() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	return withPreset(cfg)
}

func withPreset(cfg config.Config) (config.Config, error) {
	preset := cfg.Difficulty.Preset
	if flagDifficulty != "" {
		p, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return config.Config{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		preset = p
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// watchTuning follows --config when --watch is set. Reloads carry the
// same preset as the initial load.
func watchTuning(logger *log.Logger) (<-chan config.Config, func()) {
	if !flagWatch {
		return nil, func() {}
	}
	if flagConfig == "" {
		logger.Warn("--watch needs --config, not watching")
		return nil, func() {}
	}

	w, err := config.Watch(flagConfig)
	if err != nil {
		logger.Warn("could not watch tuning", "err", err)
		return nil, func() {}
	}

	out := make(chan config.Config, 1)
	go func() {
		defer close(out)
		errs := w.Errors()
		for {
			select {
			case cfg, ok := <-w.Updates():
				if !ok {
					return
				}
				cfg, err := withPreset(cfg)
				if err != nil {
					continue
				}
				logger.Info("tuning file changed", "path", w.Path())
				select {
				case <-out:
				default:
				}
				out <- cfg
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Warn("tuning reload failed", "err", err)
			}
		}
	}()
	return out, func() { _ = w.Close() }
}

// openAudio opens the speaker unless --no-audio is set.
func openAudio(logger *log.Logger) audio.Output {
	if flagNoAudio {
		return audio.Silent{}
	}
	return audio.Open(audio.LoadConfig(), logger.WithPrefix("audio"))
}

// terminalRuntime sizes the game to the current terminal.
func terminalRuntime() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

var errNoStore = errors.New("scores database is unavailable")
