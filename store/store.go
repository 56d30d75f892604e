package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createResultsTableSQL = `
CREATE TABLE IF NOT EXISTS Results (
    SessionID TEXT PRIMARY KEY,
    Length INTEGER,
    Apples INTEGER,
    Ticks INTEGER,
    StartedAt TIMESTAMP,
    EndedAt TIMESTAMP
);
`

const createResultsIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_results_ended ON Results (EndedAt);
`

// Result is the outcome of one finished session.
type Result struct {
	SessionID string    `json:"session_id"`
	Length    int       `json:"length"`
	Apples    int       `json:"apples"`
	Ticks     int       `json:"ticks"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Duration is the wall-clock length of the session.
func (r Result) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Summary aggregates every recorded result.
type Summary struct {
	Games         int     `json:"games"`
	HighScore     int     `json:"high_score"`
	AverageLength float64 `json:"average_length"`
	MedianLength  float64 `json:"median_length"`
	LongestGame   float64 `json:"longest_game"` // seconds
}

// Store is the SQLite ledger of finished sessions.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results db: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	for _, stmt := range []string{createResultsTableSQL, createResultsIndexSQL} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores r, replacing any earlier row for the same session.
func (s *Store) Record(ctx context.Context, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO Results (SessionID, Length, Apples, Ticks, StartedAt, EndedAt) VALUES (?, ?, ?, ?, ?, ?)",
		r.SessionID, r.Length, r.Apples, r.Ticks, r.StartedAt.UTC(), r.EndedAt.UTC())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record session %s: %w", r.SessionID, err)
	}

	return tx.Commit()
}

// Recent returns up to limit results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT SessionID, Length, Apples, Ticks, StartedAt, EndedAt FROM Results ORDER BY EndedAt DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.SessionID, &r.Length, &r.Apples, &r.Ticks, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Summary computes aggregate statistics over all results.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT Length, StartedAt, EndedAt FROM Results")
	if err != nil {
		return Summary{}, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var lengths []int
	var longest time.Duration
	for rows.Next() {
		var length int
		var started, ended time.Time
		if err := rows.Scan(&length, &started, &ended); err != nil {
			return Summary{}, fmt.Errorf("failed to scan result: %w", err)
		}
		lengths = append(lengths, length)
		if d := ended.Sub(started); d > longest {
			longest = d
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	sum := summarize(lengths)
	sum.LongestGame = longest.Seconds()
	return sum, nil
}

func summarize(lengths []int) Summary {
	if len(lengths) == 0 {
		return Summary{}
	}

	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)

	total := 0
	for _, l := range sorted {
		total += l
	}

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		median = float64(sorted[mid])
	}

	return Summary{
		Games:         len(sorted),
		HighScore:     sorted[len(sorted)-1],
		AverageLength: float64(total) / float64(len(sorted)),
		MedianLength:  median,
	}
}
