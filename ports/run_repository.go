package ports

import (
	"context"

	"gomeans/domain/core"
	"gomeans/domain/means"
)

// TestRun is a persisted record of one executed test: the options it ran
// with, a coarse shape of the input and the full result.
type TestRun struct {
	ID         core.RunID       `json:"id" db:"id"`
	SweepID    string           `json:"sweep_id,omitempty" db:"sweep_id"`
	Test       means.TestKind   `json:"test" db:"test"`
	Options    means.Options    `json:"options"`
	GroupCount int              `json:"group_count" db:"group_count"`
	SampleSize int              `json:"sample_size" db:"sample_size"`
	Result     means.TestResult `json:"result"`
	CreatedAt  core.Timestamp   `json:"created_at" db:"created_at"`
}

// RunRepository stores executed test runs.
type RunRepository interface {
	SaveRun(ctx context.Context, run *TestRun) error
	GetRun(ctx context.Context, id core.RunID) (*TestRun, error)
	ListRuns(ctx context.Context, limit int) ([]*TestRun, error)
}
