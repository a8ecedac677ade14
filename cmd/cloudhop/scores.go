package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

var (
	flagLimit  int
	flagPlayer string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores, newest first among equal scores.

With --player, also shows that player's best score, rank and recent
rounds. --clear deletes every recorded round.

Examples:
  cloudhop scores
  cloudhop scores --limit 25
  cloudhop scores --player alice
  cloudhop scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show this player's best and rank")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(cloudhop.GameID); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard cleared.")
		return nil
	}
	return printScores(cmd.OutOrStdout(), store, flagLimit, flagPlayer)
}

// printScores writes the leaderboard table and, if player is set, the
// player's standing.
func printScores(w io.Writer, store *storage.Store, limit int, player string) error {
	scores, err := store.TopScores(cloudhop.GameID, max(1, limit))
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintln(w, "High Scores - Cloudhop")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'cloudhop play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-12s  %-8d  %s\n", i+1, entry.Nickname, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(cloudhop.GameID); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Rounds: %d | Players: %d | Average: %.1f | Last played: %s\n",
			stats.GamesCount, stats.Players, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if player == "" {
		return nil
	}

	fmt.Fprintln(w)
	best, err := store.PlayerBest(cloudhop.GameID, player)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(w, "%s has no scores yet.\n", player)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error retrieving player best: %w", err)
	}
	rank, err := store.PlayerRank(cloudhop.GameID, player)
	if err != nil {
		return fmt.Errorf("error retrieving player rank: %w", err)
	}
	fmt.Fprintf(w, "%s | Best: %d | Rank: #%d\n", player, best, rank)

	recent, err := store.PlayerScores(cloudhop.GameID, player, 5)
	if err != nil {
		return fmt.Errorf("error retrieving recent rounds: %w", err)
	}
	fmt.Fprint(w, "Recent:")
	for _, e := range recent {
		fmt.Fprintf(w, " %d", e.Score)
	}
	fmt.Fprintln(w)
	return nil
}
