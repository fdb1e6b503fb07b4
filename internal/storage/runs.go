package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/moonrunner/internal/core"
)

// RunEntry is one finished run in the history table.
type RunEntry struct {
	ID     int64
	GameID string
	core.RunRecord
	CreatedAt time.Time
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(gameID string, r core.RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, seed, score, elapsed_secs, distance, encounters, cause)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, r.Seed, r.Score, r.Elapsed, r.Distance, r.Encounters, r.Cause,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, score, elapsed_secs, distance, encounters, cause, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Seed, &e.Score, &e.Elapsed,
			&e.Distance, &e.Encounters, &e.Cause, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// CauseCounts returns how many runs of a game ended with each cause.
func (s *Store) CauseCounts(gameID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT cause, COUNT(*) FROM runs WHERE game_id = ? GROUP BY cause`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count causes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cause string
		var n int
		if err := rows.Scan(&cause, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan cause: %w", err)
		}
		counts[cause] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}
