package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hypotest/domain/core"
	"hypotest/domain/report"
	"hypotest/ports"
)

// runRepository implements the RunLedger interface on Postgres
type runRepository struct {
	db *sqlx.DB
}

// NewRunLedger creates a new Postgres-backed run ledger
func NewRunLedger(db *sqlx.DB) ports.RunLedger {
	return &runRepository{db: db}
}

// EnsureSchema creates the test_runs table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS test_runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		statistic DOUBLE PRECISION,
		p_value DOUBLE PRECISION,
		null_hypothesis TEXT NOT NULL,
		is_fitted BOOLEAN NOT NULL,
		sample_size_x INTEGER NOT NULL,
		sample_size_y INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create test_runs schema: %w", err)
	}
	return nil
}

// StoreRun inserts a run into the database
func (r *runRepository) StoreRun(ctx context.Context, run report.Run) error {
	query := `INSERT INTO test_runs (
		id, kind, name, statistic, p_value, null_hypothesis, is_fitted,
		sample_size_x, sample_size_y, error, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Kind, run.Name, run.Statistic, run.PValue, run.NullHypothesis,
		run.IsFitted, run.SampleSizeX, run.SampleSizeY, run.Error, run.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}
	return nil
}

// ListRuns retrieves the most recent runs, newest first
func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]report.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT
		id, kind, name, COALESCE(statistic, 'NaN'::float8) AS statistic,
		COALESCE(p_value, 'NaN'::float8) AS p_value, null_hypothesis, is_fitted,
		sample_size_x, sample_size_y, error, created_at
	FROM test_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []report.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a run by its ID
func (r *runRepository) GetRun(ctx context.Context, id core.ID) (*report.Run, error) {
	query := `SELECT
		id, kind, name, COALESCE(statistic, 'NaN'::float8) AS statistic,
		COALESCE(p_value, 'NaN'::float8) AS p_value, null_hypothesis, is_fitted,
		sample_size_x, sample_size_y, error, created_at
	FROM test_runs WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, err
	}
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (report.Run, error) {
	var run report.Run
	var createdAt sql.NullTime
	err := row.Scan(
		&run.ID, &run.Kind, &run.Name, &run.Statistic, &run.PValue,
		&run.NullHypothesis, &run.IsFitted, &run.SampleSizeX, &run.SampleSizeY,
		&run.Error, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report.Run{}, err
		}
		return report.Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	if createdAt.Valid {
		run.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	return run, nil
}
