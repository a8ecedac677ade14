package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		game, nick string
		score      int
	}{
		{"cloudhop", "alice", 4},
		{"cloudhop", "bob", 9},
		{"cloudhop", "alice", 7},
		{"other", "carol", 50},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(s.game, s.nick, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("cloudhop", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}

	want := []struct {
		nick  string
		score int
	}{{"bob", 9}, {"alice", 7}, {"alice", 4}}
	for i, w := range want {
		if scores[i].Nickname != w.nick || scores[i].Score != w.score {
			t.Errorf("scores[%d] = %s/%d, expected %s/%d", i, scores[i].Nickname, scores[i].Score, w.nick, w.score)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("cloudhop", "p", i); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("cloudhop", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 || scores[0].Score != 19 {
		t.Errorf("TopScores(5) = %d entries, first %d", len(scores), scores[0].Score)
	}

	// Zero limit falls back to the default top 10.
	scores, _ = store.TopScores("cloudhop", 0)
	if len(scores) != 10 {
		t.Errorf("TopScores(0) = %d entries, expected 10", len(scores))
	}

	all, err := store.AllScores("cloudhop")
	if err != nil || len(all) != 20 {
		t.Errorf("AllScores() = %d entries, %v", len(all), err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("cloudhop")
	if err != nil || high != 0 {
		t.Errorf("HighScore() on empty = %d, %v", high, err)
	}

	store.SaveScore("cloudhop", "a", 3)
	store.SaveScore("cloudhop", "b", 8)

	high, err = store.HighScore("cloudhop")
	if err != nil || high != 8 {
		t.Errorf("HighScore() = %d, %v; expected 8", high, err)
	}
}

func TestStorePlayerBestAndRank(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		nick  string
		score int
	}{{"ann", 12}, {"ben", 5}, {"ann", 3}, {"cid", 8}, {"ben", 8}} {
		store.SaveScore("cloudhop", s.nick, s.score)
	}

	tests := []struct {
		nick string
		best int
		rank int
	}{
		{"ann", 12, 1},
		{"ben", 8, 2},
		{"cid", 8, 2},
	}
	for _, tc := range tests {
		best, err := store.PlayerBest("cloudhop", tc.nick)
		if err != nil || best != tc.best {
			t.Errorf("PlayerBest(%s) = %d, %v; expected %d", tc.nick, best, err, tc.best)
		}
		rank, err := store.PlayerRank("cloudhop", tc.nick)
		if err != nil || rank != tc.rank {
			t.Errorf("PlayerRank(%s) = %d, %v; expected %d", tc.nick, rank, err, tc.rank)
		}
	}

	if _, err := store.PlayerBest("cloudhop", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("PlayerBest(nobody) = %v, expected ErrNotFound", err)
	}
	if _, err := store.PlayerRank("cloudhop", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("PlayerRank(nobody) = %v, expected ErrNotFound", err)
	}

	recent, err := store.PlayerScores("cloudhop", "ann", 10)
	if err != nil || len(recent) != 2 || recent[0].Score != 3 {
		t.Errorf("PlayerScores(ann) = %+v, %v", recent, err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("cloudhop", "a", 1)
	store.SaveScore("other", "a", 2)

	if err := store.ClearScores("cloudhop"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("cloudhop", 10)
	if len(scores) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Error("clearing one game must not touch another")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("cloudhop")
	if err != nil {
		t.Fatalf("GetGameStats() on empty failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("cloudhop", "a", 2)
	store.SaveScore("cloudhop", "b", 4)
	store.SaveScore("cloudhop", "a", 6)

	stats, err = store.GetGameStats("cloudhop")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 6 || stats.AvgScore != 4 || stats.TotalScore != 12 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore()
	if err != nil || best != 0 {
		t.Errorf("BestScore() on empty = %d, %v", best, err)
	}

	if err := store.SetBestScore(5); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	// Lower values never regress the stored best.
	if err := store.SetBestScore(3); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if best, _ := store.BestScore(); best != 5 {
		t.Errorf("BestScore() = %d, expected 5", best)
	}

	if err := store.SetBestScore(11); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if best, _ := store.BestScore(); best != 11 {
		t.Errorf("BestScore() = %d, expected 11", best)
	}
}

func TestStoreCorruptBestScoreReadsZero(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetSetting(keyBestScore, "not-a-number"); err != nil {
		t.Fatal(err)
	}
	best, err := store.BestScore()
	if err != nil || best != 0 {
		t.Errorf("BestScore() with corrupt value = %d, %v", best, err)
	}

	// A new best replaces the corrupt value.
	if err := store.SetBestScore(2); err != nil {
		t.Fatal(err)
	}
	if best, _ := store.BestScore(); best != 2 {
		t.Errorf("BestScore() = %d, expected 2", best)
	}
}

func TestStoreSkinSelection(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SelectedSkin()
	if err != nil || id != "" {
		t.Errorf("SelectedSkin() on empty = %q, %v", id, err)
	}

	store.SelectSkin("star")
	store.SelectSkin("rocket")

	id, err = store.SelectedSkin()
	if err != nil || id != "rocket" {
		t.Errorf("SelectedSkin() = %q, %v; expected rocket", id, err)
	}

	if nick, err := store.Nickname(); err != nil || nick != "" {
		t.Errorf("Nickname() on empty = %q, %v", nick, err)
	}
	store.SetNickname("alice")
	if nick, _ := store.Nickname(); nick != "alice" {
		t.Errorf("Nickname() = %q, expected alice", nick)
	}

	if _, err := store.Setting("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Setting(missing) = %v, expected ErrNotFound", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.cloudhop-test/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".cloudhop-test", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
