package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/memocart/internal/game"
)

const keyTutorialFinished = "tutorialFinished"

// Setting returns the value stored under key and whether it exists.
func (s *Store) Setting(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return v, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// TutorialFinished reports whether the tutorial was completed once.
// A read error counts as not finished.
func (s *Store) TutorialFinished() bool {
	v, ok, err := s.Setting(keyTutorialFinished)
	return err == nil && ok && v == "1"
}

// MarkTutorialFinished remembers that the tutorial was completed.
func (s *Store) MarkTutorialFinished() error {
	return s.SetSetting(keyTutorialFinished, "1")
}

var _ game.TutorialMemory = (*Store)(nil)

// TutorialMemoryFor scopes the tutorial flag to one player, for shared
// stores such as the SSH server's. An empty username uses the global flag.
func (s *Store) TutorialMemoryFor(username string) game.TutorialMemory {
	if username == "" {
		return s
	}
	return userMemory{store: s, key: keyTutorialFinished + ":" + username}
}

type userMemory struct {
	store *Store
	key   string
}

func (m userMemory) TutorialFinished() bool {
	v, ok, err := m.store.Setting(m.key)
	return err == nil && ok && v == "1"
}

func (m userMemory) MarkTutorialFinished() error {
	return m.store.SetSetting(m.key, "1")
}
