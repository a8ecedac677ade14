package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Setting keys.
const (
	keyBestScore = "best_score"
	keySkin      = "skin"
	keyNickname  = "nickname"
)

// Setting returns a stored value, or ErrNotFound.
func (s *Store) Setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: setting %q", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %q: %w", key, err)
	}
	return nil
}

// BestScore returns the persisted best score.
// A missing or corrupt value reads as 0.
func (s *Store) BestScore() (int, error) {
	value, err := s.Setting(keyBestScore)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	best, err := strconv.Atoi(value)
	if err != nil || best < 0 {
		return 0, nil
	}
	return best, nil
}

// SetBestScore persists the best score. Values not above the stored one
// are ignored so concurrent sessions cannot regress it; a corrupt stored
// value counts as 0.
func (s *Store) SetBestScore(score int) error {
	if score < 0 {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(settings.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		keyBestScore, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// SelectedSkin returns the chosen skin ID, or "" if none was chosen.
func (s *Store) SelectedSkin() (string, error) {
	id, err := s.Setting(keySkin)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return id, err
}

// SelectSkin persists the chosen skin ID.
func (s *Store) SelectSkin(id string) error {
	return s.SetSetting(keySkin, id)
}

// Nickname returns the last used nickname, or "" if none was saved.
func (s *Store) Nickname() (string, error) {
	nick, err := s.Setting(keyNickname)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return nick, err
}

// SetNickname remembers the nickname for the next session.
func (s *Store) SetNickname(nick string) error {
	return s.SetSetting(keyNickname, nick)
}
