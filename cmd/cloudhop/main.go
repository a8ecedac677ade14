// cloudhop is a platform-timing jump game for the terminal, SSH and a
// desktop window.
//
// Usage:
//
//	cloudhop play            - Play a single game
//	cloudhop menu            - Menu with nickname, skins and leaderboard
//	cloudhop serve           - Start SSH server for remote play
//	cloudhop scores          - Show the leaderboard
//	cloudhop skins           - List or select player skins
//	cloudhop window          - Play in a desktop window
//	cloudhop config          - Print the effective tuning
//
// Global flags:
//
//	--fps <rate>         - Set presentation rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.cloudhop/scores.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cloudhop/internal/skins"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cloudhop",
	Short: "Cloudhop - hop between drifting clouds",
	Long: `Cloudhop is a platform-timing jump game. Clouds slide in from the
sides; jump at the right moment to land on them and climb higher.

Available commands:
  play     - Play a single game
  menu     - Menu with nickname, skins and leaderboard
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  skins    - List or select player skins
  window   - Play in a desktop window
  config   - Print the effective tuning

Examples:
  cloudhop play
  cloudhop play --difficulty hard --name alice
  cloudhop menu
  cloudhop serve --ssh :2222
  cloudhop scores --player alice`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Presentation rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}

// logLevel parses --log-level, falling back to info.
func logLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// newFileLogger logs to ~/.cloudhop/cloudhop.log, since the terminal
// belongs to the game. Without a writable home it discards output.
func newFileLogger() (*log.Logger, func()) {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "cloudhop",
		Level:           logLevel(),
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	dir := filepath.Join(home, ".cloudhop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "cloudhop.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}

// newStderrLogger is used by commands that do not own the terminal.
func newStderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel(),
	})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// openStore opens the scores database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// loadSkinPacks adds user skins from ~/.cloudhop/skins.
func loadSkinPacks(logger *log.Logger) {
	n, err := skins.LoadPacks(skins.PacksDir())
	if err != nil {
		logger.Warn("some skin packs were skipped", "err", err)
	}
	if n > 0 {
		logger.Debug("skin packs loaded", "skins", n)
	}
}
