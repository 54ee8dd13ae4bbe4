package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stats outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// StatsEntry is one telemetry row.
type StatsEntry struct {
	ID        int64
	RunID     string
	Outcome   string
	Config    json.RawMessage
	Payload   json.RawMessage
	CreatedAt time.Time
}

// NewRunID returns a fresh identifier grouping the telemetry of one session.
func NewRunID() string {
	return uuid.NewString()
}

// RecordSuccess stores the config and stats of a session that started fine.
func (s *Store) RecordSuccess(runID string, config, stats any) error {
	return s.recordStats(runID, OutcomeSuccess, config, stats)
}

// RecordFailure stores the config of a session that failed, with the error.
func (s *Store) RecordFailure(runID string, config any, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.recordStats(runID, OutcomeFailure, config, map[string]string{"error": msg})
}

func (s *Store) recordStats(runID, outcome string, config, payload any) error {
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("storage: invalid run id %q: %w", runID, err)
	}
	cfg, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("storage: cannot encode config: %w", err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stats: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO stats (run_id, outcome, config, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		runID, outcome, string(cfg), string(body), s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record stats: %w", err)
	}
	return nil
}

// StatsForRun returns the telemetry rows of one run, oldest first.
func (s *Store) StatsForRun(runID string) ([]StatsEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, outcome, config, payload, created_at
		 FROM stats WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var entries []StatsEntry
	for rows.Next() {
		var e StatsEntry
		var cfg, body string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Outcome, &cfg, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Config = json.RawMessage(cfg)
		e.Payload = json.RawMessage(body)
		e.CreatedAt = scanTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// OutcomeCounts returns how many sessions succeeded and failed.
func (s *Store) OutcomeCounts() (map[string]int, error) {
	rows, err := s.db.Query("SELECT outcome, COUNT(*) FROM stats GROUP BY outcome")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}
