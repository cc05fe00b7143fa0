// Package app wires the test dispatcher to persistence and exposes the
// use cases the API and CLI call.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"gomeans/domain/core"
	"gomeans/domain/means"
	"gomeans/ports"
)

// RunRequest describes one test execution: the raw observations, the test
// selector and its options. SweepID is set when the run is part of a sweep.
type RunRequest struct {
	Scores  []float64
	Groups  []string
	Test    means.TestKind
	Options means.Options
	SweepID string
}

// MeansService executes mean-comparison tests and records the outcomes.
// The repository is optional; without one, runs are executed but not kept.
type MeansService struct {
	runs ports.RunRepository
	log  zerolog.Logger
}

func NewMeansService(runs ports.RunRepository, log zerolog.Logger) *MeansService {
	return &MeansService{runs: runs, log: log}
}

// Run executes a single test and persists the outcome when a repository is
// configured.
func (s *MeansService) Run(ctx context.Context, req RunRequest) (*ports.TestRun, error) {
	result, err := means.RunTest(req.Scores, req.Groups, req.Test, req.Options)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("test", string(req.Test)).
			Msg("test execution rejected")
		return nil, err
	}

	run := &ports.TestRun{
		ID:         core.RunID(core.NewID()),
		SweepID:    req.SweepID,
		Test:       req.Test,
		Options:    req.Options,
		GroupCount: countDistinct(req.Groups),
		SampleSize: len(req.Scores),
		Result:     *result,
		CreatedAt:  core.Now(),
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
	}

	s.log.Info().
		Str("run_id", run.ID.String()).
		Str("test", string(req.Test)).
		Float64("statistic", result.Statistic).
		Bool("reject", result.Reject).
		Msg("test executed")
	return run, nil
}

// GetRun looks up a persisted run.
func (s *MeansService) GetRun(ctx context.Context, id core.RunID) (*ports.TestRun, error) {
	if s.runs == nil {
		return nil, core.ErrRunNotFound
	}
	return s.runs.GetRun(ctx, id)
}

// ListRuns returns the most recent persisted runs.
func (s *MeansService) ListRuns(ctx context.Context, limit int) ([]*ports.TestRun, error) {
	if s.runs == nil {
		return []*ports.TestRun{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

func countDistinct(groups []string) int {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		seen[g] = struct{}{}
	}
	return len(seen)
}
