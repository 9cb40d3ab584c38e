// Package store persists benchmark results in SQLite so runs can be
// compared after the fact.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/weiihann/sortbench/harness"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite database of benchmark runs.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Run records the results of one benchmark run.
type Run struct {
	db *sql.DB
	id uuid.UUID
}

// StartRun registers id as a new run. Reusing an ID is an error.
func (s *Store) StartRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (run_id, started_at) VALUES (?, ?)",
		id.String(), time.Now().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("register run %s: %w", id, err)
	}

	return &Run{db: s.db, id: id}, nil
}

// ID identifies the run.
func (r *Run) ID() uuid.UUID { return r.id }

// Record appends res to the run.
func (r *Run) Record(ctx context.Context, res harness.Result) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO results (
			run_id, algo, distribution, size, iterations,
			mean_seconds, t_generate, t_verify, correct, failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id.String(), res.Algo, res.Name, res.Size, res.Iterations,
		res.Time, res.TGenerate, res.TVerify,
		boolToInt(res.Correct), boolToInt(res.Failed),
	)
	if err != nil {
		return fmt.Errorf("insert result %s/%s/%d: %w",
			res.Algo, res.Name, res.Size, err)
	}

	return nil
}

// Results returns the results of run in the order they were recorded.
func (s *Store) Results(ctx context.Context, run uuid.UUID) ([]harness.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT algo, distribution, size, iterations,
		       mean_seconds, t_generate, t_verify, correct, failed
		FROM results
		WHERE run_id = ?
		ORDER BY seq`,
		run.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []harness.Result

	for rows.Next() {
		var (
			r               harness.Result
			correct, failed int
		)

		if err := rows.Scan(
			&r.Algo, &r.Name, &r.Size, &r.Iterations,
			&r.Time, &r.TGenerate, &r.TVerify, &correct, &failed,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}

		r.Correct = correct == 1
		r.Failed = failed == 1
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}

// Runs returns every recorded run ID, oldest first.
func (s *Store) Runs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id FROM runs ORDER BY started_at, run_id")
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []uuid.UUID

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", raw, err)
		}

		runs = append(runs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
