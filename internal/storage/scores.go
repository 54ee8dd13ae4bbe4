package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/memocart/internal/game"
)

// ScoreEntry is one highscore row: the best level a player reached on a seed.
type ScoreEntry struct {
	ID        int64
	Seed      string
	Username  string
	Level     int
	CreatedAt time.Time
}

// RecordScore stores a reached level. Each (seed, username) pair keeps only
// its best level; a lower or equal level leaves the row untouched.
func (s *Store) RecordScore(score game.HighScore) error {
	if score.Username == "" || score.Seed == "" {
		return fmt.Errorf("storage: score needs a username and a seed")
	}
	date := score.Date
	if date.IsZero() {
		date = s.now()
	}
	_, err := s.db.Exec(
		`INSERT INTO scores (seed, username, level, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(seed, username) DO UPDATE SET
			level = excluded.level,
			created_at = excluded.created_at
		 WHERE excluded.level > scores.level`,
		score.Seed, score.Username, score.Level, date.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record score: %w", err)
	}
	return nil
}

// TopScores retrieves the best limit players on a seed, highest level first.
// Ties go to whoever got there first.
func (s *Store) TopScores(seed string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.Query(
		`SELECT id, seed, username, level, created_at
		 FROM scores
		 WHERE seed = ?
		 ORDER BY level DESC, created_at ASC, id ASC
		 LIMIT ?`,
		seed, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.Username, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = scanTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestLevel returns the best level username reached on seed, 0 if none.
func (s *Store) BestLevel(seed, username string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(level), 0) FROM scores WHERE seed = ? AND username = ?",
		seed, username,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}
	return level, nil
}

// ClearScores deletes all scores for a seed.
func (s *Store) ClearScores(seed string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE seed = ?", seed)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SeedSummary aggregates the scores of one seed.
type SeedSummary struct {
	Seed       string
	Players    int
	BestLevel  int
	LastPlayed time.Time
}

// Seeds lists the seeds that have scores, most recently played first.
func (s *Store) Seeds(limit int) ([]SeedSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT seed, COUNT(*), MAX(level), MAX(created_at)
		 FROM scores
		 GROUP BY seed
		 ORDER BY MAX(created_at) DESC, seed
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list seeds: %w", err)
	}
	defer rows.Close()

	var seeds []SeedSummary
	for rows.Next() {
		var sum SeedSummary
		var lastPlayed any
		if err := rows.Scan(&sum.Seed, &sum.Players, &sum.BestLevel, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan seed row: %w", err)
		}
		sum.LastPlayed = scanTime(lastPlayed)
		seeds = append(seeds, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return seeds, nil
}
