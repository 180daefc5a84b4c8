package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Anish-Chanda/textsearch-bench/internal/bench"
	"github.com/Anish-Chanda/textsearch-bench/internal/config"
)

// Client archives benchmark reports in Postgres.
type Client struct {
	db *sqlx.DB
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID       string    `db:"run_id" json:"run_id"`
	StartedAt   time.Time `db:"started_at" json:"started_at"`
	FinishedAt  time.Time `db:"finished_at" json:"finished_at"`
	Repetitions int       `db:"repetitions" json:"repetitions"`
	RealPattern string    `db:"real_pattern" json:"real_pattern"`
	FakePattern string    `db:"fake_pattern" json:"fake_pattern"`
}

// TimingRow is one row of the timings table.
type TimingRow struct {
	RunID      string `db:"run_id" json:"run_id"`
	Document   string `db:"document" json:"document"`
	Algorithm  string `db:"algorithm" json:"algorithm"`
	Kind       string `db:"kind" json:"kind"`
	MatchIndex int    `db:"match_index" json:"match_index"`
	ElapsedNS  int64  `db:"elapsed_ns" json:"elapsed_ns"`
}

// New connects to Postgres using TEXTBENCH_POSTGRES_DSN.
func New(cfg *config.Config) (*Client, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("PostgresDSN must be set")
	}
	db, err := sqlx.Connect("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Client{db: db}, nil
}

// Close the DB connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// SaveReport stores a run and all its timings in one transaction.
func (c *Client) SaveReport(ctx context.Context, r *bench.Report) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after Commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, repetitions, real_pattern, fake_pattern)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.RunID, r.Started, r.Finished, r.Repetitions, r.Patterns.Real, r.Patterns.Fake,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.RunID, err)
	}

	for _, t := range r.Timings {
		row := TimingRow{
			RunID:      r.RunID,
			Document:   t.Document,
			Algorithm:  t.Algorithm,
			Kind:       string(t.Kind),
			MatchIndex: t.Index,
			ElapsedNS:  t.Elapsed.Nanoseconds(),
		}
		_, err = tx.NamedExecContext(ctx,
			`INSERT INTO timings (run_id, document, algorithm, kind, match_index, elapsed_ns)
			 VALUES (:run_id, :document, :algorithm, :kind, :match_index, :elapsed_ns)`, row)
		if err != nil {
			return fmt.Errorf("insert timing %s/%s/%s: %w", t.Document, t.Algorithm, t.Kind, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	var runs []RunSummary
	err := c.db.SelectContext(ctx, &runs,
		`SELECT run_id, started_at, finished_at, repetitions, real_pattern, fake_pattern
		 FROM runs ORDER BY started_at DESC LIMIT $1`, limit)
	return runs, err
}

// GetTimings returns the timings recorded for a run.
func (c *Client) GetTimings(ctx context.Context, runID string) ([]TimingRow, error) {
	var rows []TimingRow
	err := c.db.SelectContext(ctx, &rows,
		`SELECT run_id, document, algorithm, kind, match_index, elapsed_ns
		 FROM timings WHERE run_id=$1 ORDER BY document, kind, algorithm`, runID)
	return rows, err
}
