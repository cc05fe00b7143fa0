// Package postgres persists executed test runs in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gomeans/domain/core"
	"gomeans/domain/means"
	"gomeans/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS test_runs (
    id UUID PRIMARY KEY,
    sweep_id TEXT,
    test TEXT NOT NULL,
    options JSONB NOT NULL,
    group_count INTEGER NOT NULL,
    sample_size INTEGER NOT NULL,
    result JSONB NOT NULL,
    statistic DOUBLE PRECISION NOT NULL,
    p_value DOUBLE PRECISION,
    reject BOOLEAN NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_test_runs_sweep_id ON test_runs (sweep_id);
CREATE INDEX IF NOT EXISTS idx_test_runs_created_at ON test_runs (created_at DESC);
`

// EnsureSchema creates the run tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create test_runs schema: %w", err)
	}
	return nil
}

// RunRepositoryImpl implements ports.RunRepository using PostgreSQL.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository.
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// runRow is the flat database shape of a ports.TestRun. Options and the
// full result travel as JSONB; statistic, p_value and reject are duplicated
// as plain columns so runs can be filtered without unpacking JSON.
type runRow struct {
	ID         string          `db:"id"`
	SweepID    sql.NullString  `db:"sweep_id"`
	Test       string          `db:"test"`
	Options    []byte          `db:"options"`
	GroupCount int             `db:"group_count"`
	SampleSize int             `db:"sample_size"`
	Result     []byte          `db:"result"`
	Statistic  float64         `db:"statistic"`
	PValue     sql.NullFloat64 `db:"p_value"`
	Reject     bool            `db:"reject"`
	CreatedAt  sql.NullTime    `db:"created_at"`
}

func newRunRow(run *ports.TestRun) (*runRow, error) {
	optionsJSON, err := json.Marshal(run.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	row := &runRow{
		ID:         run.ID.String(),
		Test:       string(run.Test),
		Options:    optionsJSON,
		GroupCount: run.GroupCount,
		SampleSize: run.SampleSize,
		Result:     resultJSON,
		Statistic:  run.Result.Statistic,
		Reject:     run.Result.Reject,
		CreatedAt:  sql.NullTime{Time: run.CreatedAt.Time(), Valid: true},
	}
	if run.SweepID != "" {
		row.SweepID = sql.NullString{String: run.SweepID, Valid: true}
	}
	if run.Result.PValue != nil {
		row.PValue = sql.NullFloat64{Float64: *run.Result.PValue, Valid: true}
	}
	return row, nil
}

func (row *runRow) toTestRun() (*ports.TestRun, error) {
	run := &ports.TestRun{
		ID:         core.RunID(row.ID),
		Test:       means.TestKind(row.Test),
		GroupCount: row.GroupCount,
		SampleSize: row.SampleSize,
	}
	if row.SweepID.Valid {
		run.SweepID = row.SweepID.String
	}
	if row.CreatedAt.Valid {
		run.CreatedAt = core.NewTimestamp(row.CreatedAt.Time)
	}
	if err := json.Unmarshal(row.Options, &run.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options for run %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Result, &run.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result for run %s: %w", row.ID, err)
	}
	return run, nil
}

// SaveRun inserts a test run, replacing any existing row with the same ID.
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *ports.TestRun) error {
	row, err := newRunRow(run)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO test_runs (
			id, sweep_id, test, options, group_count, sample_size,
			result, statistic, p_value, reject, created_at
		) VALUES (
			:id, :sweep_id, :test, :options, :group_count, :sample_size,
			:result, :statistic, :p_value, :reject, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			sweep_id = EXCLUDED.sweep_id,
			test = EXCLUDED.test,
			options = EXCLUDED.options,
			group_count = EXCLUDED.group_count,
			sample_size = EXCLUDED.sample_size,
			result = EXCLUDED.result,
			statistic = EXCLUDED.statistic,
			p_value = EXCLUDED.p_value,
			reject = EXCLUDED.reject`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*ports.TestRun, error) {
	var row runRow
	query := `
		SELECT id, sweep_id, test, options, group_count, sample_size,
		       result, statistic, p_value, reject, created_at
		FROM test_runs WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("run", id.String())
		}
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return row.toTestRun()
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*ports.TestRun, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []runRow
	query := `
		SELECT id, sweep_id, test, options, group_count, sample_size,
		       result, statistic, p_value, reject, created_at
		FROM test_runs ORDER BY created_at DESC LIMIT $1`

	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*ports.TestRun, 0, len(rows))
	for i := range rows {
		run, err := rows[i].toTestRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
