package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

// Store persists benchmark runs and single simulations.
type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// InsertRun stores a benchmark report and its histogram.
func (s *Store) InsertRun(ctx context.Context, r *bench.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs
            (id, first_guess, hard_mode, rule, words, solved, mean_rounds, max_rounds, elapsed_ms, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.First, r.HardMode, r.Rule, r.Words, r.Solved, r.Mean, r.Max,
		r.Elapsed.Milliseconds(), r.StartedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, rounds := range r.Rounds() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_histogram (run_id, rounds, words) VALUES (?, ?, ?)`,
			r.ID, rounds, r.Histogram[rounds],
		); err != nil {
			return fmt.Errorf("insert histogram: %w", err)
		}
	}
	return tx.Commit()
}

// RunRow is a stored run summary.
type RunRow struct {
	ID         string  `json:"id"`
	FirstGuess string  `json:"firstGuess"`
	HardMode   bool    `json:"hardMode"`
	Rule       string  `json:"rule"`
	Words      int     `json:"words"`
	Solved     int     `json:"solved"`
	MeanRounds float64 `json:"meanRounds"`
	MaxRounds  int     `json:"maxRounds"`
	CreatedAt  string  `json:"createdAt"`
}

// Leaderboard returns the best stored runs.
//
//   - Ordered by mean rounds ASC, then solved DESC, then created_at ASC.
//   - Default limit is 20 if not specified.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, first_guess, hard_mode, rule, words, solved, mean_rounds, max_rounds, created_at
        FROM runs
        ORDER BY mean_rounds ASC, solved DESC, created_at ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RunRow, 0, limit)
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.FirstGuess, &r.HardMode, &r.Rule, &r.Words, &r.Solved,
			&r.MeanRounds, &r.MaxRounds, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Histogram returns rounds → words for a stored run.
func (s *Store) Histogram(ctx context.Context, runID string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rounds, words FROM run_histogram WHERE run_id=? ORDER BY rounds`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int]int)
	for rows.Next() {
		var rounds, n int
		if err := rows.Scan(&rounds, &n); err != nil {
			return nil, err
		}
		out[rounds] = n
	}
	return out, rows.Err()
}

// Simulation is one simulated game. Date is set for daily simulations.
type Simulation struct {
	Hidden     string `json:"hidden"`
	FirstGuess string `json:"firstGuess"`
	HardMode   bool   `json:"hardMode"`
	Rule       string `json:"rule"`
	Rounds     int    `json:"rounds"`
	Solved     bool   `json:"solved"`
	Date       string `json:"date,omitempty"`
}

// InsertSimulation stores a simulation. A daily simulation already stored
// for the same date and strategy is ignored (no error).
func (s *Store) InsertSimulation(ctx context.Context, sim Simulation) error {
	var date any
	if sim.Date != "" {
		date = sim.Date
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO simulations
            (hidden, first_guess, hard_mode, rule, rounds, solved, date, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sim.Hidden, sim.FirstGuess, sim.HardMode, sim.Rule, sim.Rounds, sim.Solved, date,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DailySimulated reports whether the daily word for date was already
// simulated with the given strategy.
func (s *Store) DailySimulated(ctx context.Context, date, first string, hard bool, rule string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM simulations WHERE date=? AND first_guess=? AND hard_mode=? AND rule=?`,
		date, first, hard, rule,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}
