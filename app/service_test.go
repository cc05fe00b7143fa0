package app

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomeans/domain/core"
	"gomeans/domain/means"
	"gomeans/ports"
)

// memoryRunRepository is a map-backed ports.RunRepository for tests.
type memoryRunRepository struct {
	mu   sync.Mutex
	runs map[core.RunID]*ports.TestRun
	ids  []core.RunID
}

func newMemoryRunRepository() *memoryRunRepository {
	return &memoryRunRepository{runs: make(map[core.RunID]*ports.TestRun)}
}

func (m *memoryRunRepository) SaveRun(_ context.Context, run *ports.TestRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[run.ID]; !ok {
		m.ids = append(m.ids, run.ID)
	}
	m.runs[run.ID] = run
	return nil
}

func (m *memoryRunRepository) GetRun(_ context.Context, id core.RunID) (*ports.TestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, core.NewNotFoundError("run", id.String())
	}
	return run, nil
}

func (m *memoryRunRepository) ListRuns(_ context.Context, limit int) ([]*ports.TestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ports.TestRun, 0, len(m.ids))
	for i := len(m.ids) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[m.ids[i]])
	}
	return out, nil
}

// sampleData returns three groups of eight observations each, sized so every
// supported test variant accepts them.
func sampleData() ([]float64, []string) {
	var scores []float64
	var groups []string
	add := func(group string, values ...float64) {
		for _, v := range values {
			scores = append(scores, v)
			groups = append(groups, group)
		}
	}
	add("north", 9, 11, 8, 12, 10, 10, 7, 13)
	add("east", 14, 12, 15, 11, 13, 13, 16, 10)
	add("south", 10, 12, 11, 11, 9, 13, 12, 10)
	return scores, groups
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestMeansServiceRunPersists(t *testing.T) {
	repo := newMemoryRunRepository()
	svc := NewMeansService(repo, testLogger())
	scores, groups := sampleData()

	run, err := svc.Run(context.Background(), RunRequest{
		Scores:  scores,
		Groups:  groups,
		Test:    means.TestWelch,
		Options: means.DefaultOptions(),
	})
	require.NoError(t, err)

	assert.False(t, run.ID.String() == "")
	assert.Equal(t, 3, run.GroupCount)
	assert.Equal(t, 24, run.SampleSize)
	assert.Equal(t, means.TestWelch, run.Test)

	stored, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Result, stored.Result)
}

func TestMeansServiceRunWithoutRepository(t *testing.T) {
	svc := NewMeansService(nil, testLogger())
	scores, groups := sampleData()

	run, err := svc.Run(context.Background(), RunRequest{
		Scores:  scores,
		Groups:  groups,
		Test:    means.TestFisher,
		Options: means.DefaultOptions(),
	})
	require.NoError(t, err)
	assert.NotNil(t, run.Result.PValue)

	runs, err := svc.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestMeansServiceRunPropagatesDomainErrors(t *testing.T) {
	svc := NewMeansService(newMemoryRunRepository(), testLogger())
	scores, groups := sampleData()

	_, err := svc.Run(context.Background(), RunRequest{
		Scores:  scores,
		Groups:  groups,
		Test:    means.TestKind("kruskal"),
		Options: means.DefaultOptions(),
	})
	assert.ErrorIs(t, err, core.ErrUnknownTest)
}

func TestSweepServiceRunsEveryTest(t *testing.T) {
	repo := newMemoryRunRepository()
	svc := NewSweepService(NewMeansService(repo, testLogger()), 4, testLogger())
	scores, groups := sampleData()

	result, err := svc.RunAll(context.Background(), scores, groups, means.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Outcomes, len(means.AllTests()))
	assert.NotEmpty(t, result.SweepID)

	for i, kind := range means.AllTests() {
		outcome := result.Outcomes[i]
		assert.Equal(t, kind, outcome.Test, "outcome order must match AllTests")
		require.Empty(t, outcome.Err, "test %s failed: %s", kind, outcome.Err)
		require.NotNil(t, outcome.Run)
		assert.Equal(t, result.SweepID, outcome.Run.SweepID)
	}

	runs, err := repo.ListRuns(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, runs, len(means.AllTests()))
}

func TestSweepServiceCapturesPerTestFailures(t *testing.T) {
	svc := NewSweepService(NewMeansService(nil, testLogger()), 2, testLogger())

	// Two observations per group: scott-smith and second-order James need
	// three, so those outcomes carry errors while the rest succeed.
	scores := []float64{1, 2, 3, 5, 7, 11}
	groups := []string{"a", "a", "b", "b", "c", "c"}

	result, err := svc.RunAll(context.Background(), scores, groups, means.DefaultOptions())
	require.NoError(t, err)

	byTest := make(map[means.TestKind]SweepOutcome)
	for _, o := range result.Outcomes {
		byTest[o.Test] = o
	}

	assert.NotEmpty(t, byTest[means.TestScottSmith].Err)
	assert.NotEmpty(t, byTest[means.TestJames].Err)
	assert.Empty(t, byTest[means.TestFisher].Err)
	assert.Empty(t, byTest[means.TestWelch].Err)
	assert.NotNil(t, byTest[means.TestFisher].Run)
}
