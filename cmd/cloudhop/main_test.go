package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

func TestWithPreset(t *testing.T) {
	defer func() { flagDifficulty = "" }()

	tests := []struct {
		flag     string
		wantStep float64
		wantErr  bool
	}{
		{"", 0.5, false},
		{"fixed", 0, false},
		{"hard", 0.5 * 1.4, false},
		{"brutal", 0, true},
	}

	for _, tt := range tests {
		flagDifficulty = tt.flag
		cfg, err := withPreset(config.Default())
		if (err != nil) != tt.wantErr {
			t.Errorf("withPreset(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && cfg.Difficulty.SpeedStep != tt.wantStep {
			t.Errorf("withPreset(%q) step = %v, expected %v", tt.flag, cfg.Difficulty.SpeedStep, tt.wantStep)
		}
	}
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printScores(&buf, store, 10, ""); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet") {
		t.Error("empty leaderboard message missing")
	}

	for _, s := range []struct {
		nick  string
		score int
	}{{"ann", 12}, {"bob", 8}, {"bob", 3}} {
		if _, err := store.SaveScore(cloudhop.GameID, s.nick, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	buf.Reset()
	if err := printScores(&buf, store, 10, "bob"); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ann", "Rounds: 3 | Players: 2", "bob | Best: 8 | Rank: #2", "Recent: 3 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := printScores(&buf, store, 10, "zoe"); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "zoe has no scores yet") {
		t.Error("unknown player message missing")
	}
}
