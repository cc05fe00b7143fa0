package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"gomeans/domain/core"
	"gomeans/domain/means"
	"gomeans/ports"
)

// SweepOutcome is the result of one test inside a sweep. Exactly one of Run
// and Err is populated: tests whose preconditions the data cannot meet fail
// individually without aborting the sweep.
type SweepOutcome struct {
	Test means.TestKind `json:"test"`
	Name string         `json:"name"`
	Run  *ports.TestRun `json:"run,omitempty"`
	Err  string         `json:"error,omitempty"`
}

// SweepResult aggregates one dataset run through every supported test.
type SweepResult struct {
	SweepID   string         `json:"sweep_id"`
	Outcomes  []SweepOutcome `json:"outcomes"`
	RuntimeMs int64          `json:"runtime_ms"`
}

// SweepService runs all supported tests against one dataset concurrently,
// bounded by a semaphore.
type SweepService struct {
	means *MeansService
	sem   *semaphore.Weighted
	log   zerolog.Logger
}

func NewSweepService(meansSvc *MeansService, maxConcurrent int64, log zerolog.Logger) *SweepService {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &SweepService{
		means: meansSvc,
		sem:   semaphore.NewWeighted(maxConcurrent),
		log:   log,
	}
}

// RunAll executes every test variant against the dataset. Options apply to
// all tests; per-test failures are captured in the outcome list.
func (s *SweepService) RunAll(ctx context.Context, scores []float64, groups []string, opts means.Options) (*SweepResult, error) {
	start := time.Now()
	sweepID := core.NewID().String()
	tests := means.AllTests()
	outcomes := make([]SweepOutcome, len(tests))

	var wg sync.WaitGroup
	for i, kind := range tests {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, kind means.TestKind) {
			defer wg.Done()
			defer s.sem.Release(1)

			outcome := SweepOutcome{Test: kind, Name: kind.DisplayName()}
			run, err := s.means.Run(ctx, RunRequest{
				Scores:  scores,
				Groups:  groups,
				Test:    kind,
				Options: opts,
				SweepID: sweepID,
			})
			if err != nil {
				outcome.Err = err.Error()
			} else {
				outcome.Run = run
			}
			outcomes[i] = outcome
		}(i, kind)
	}
	wg.Wait()

	result := &SweepResult{
		SweepID:   sweepID,
		Outcomes:  outcomes,
		RuntimeMs: time.Since(start).Milliseconds(),
	}
	s.log.Info().
		Str("sweep_id", sweepID).
		Int("tests", len(tests)).
		Int64("runtime_ms", result.RuntimeMs).
		Msg("sweep completed")
	return result, nil
}
