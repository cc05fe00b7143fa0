package means

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomeans/domain/core"
)

// symmetricGroup builds n scores (n even) with exactly the requested mean
// and sample variance, using +-c pairs so both moments are hit without
// rounding games.
func symmetricGroup(mean, variance float64, n int) []float64 {
	c := math.Sqrt(variance * float64(n-1) / float64(n))
	out := make([]float64, 0, n)
	for i := 0; i < n/2; i++ {
		out = append(out, mean-c, mean+c)
	}
	return out
}

func appendObservations(scores []float64, groups []string, data []float64, label string) ([]float64, []string) {
	for _, v := range data {
		scores = append(scores, v)
		groups = append(groups, label)
	}
	return scores, groups
}

// fixture returns a healthy three-group dataset with unequal means,
// variances and sizes; every test's preconditions are satisfied.
func fixture() ([]float64, []string) {
	var scores []float64
	var groups []string
	scores, groups = appendObservations(scores, groups, symmetricGroup(10, 4, 8), "north")
	scores, groups = appendObservations(scores, groups, symmetricGroup(13, 9, 6), "east")
	scores, groups = appendObservations(scores, groups, symmetricGroup(11, 2, 10), "south")
	return scores, groups
}

func TestFisherTwoGroupScenario(t *testing.T) {
	// n = {10, 10}, means = {0, 5}, variances = {1, 1}: F must be 125 with
	// df1 = 1 and df2 = 18.
	var scores []float64
	var groups []string
	scores, groups = appendObservations(scores, groups, symmetricGroup(0, 1, 10), "a")
	scores, groups = appendObservations(scores, groups, symmetricGroup(5, 1, 10), "b")

	res, err := RunTest(scores, groups, TestFisher, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 125.0, res.Statistic, 1e-6)
	assert.Equal(t, 1.0, res.DF1)
	require.NotNil(t, res.DF2)
	assert.Equal(t, 18.0, *res.DF2)
	require.NotNil(t, res.PValue)
	assert.True(t, res.Reject)
}

func TestFisherEqualsSquaredPooledT(t *testing.T) {
	var scores []float64
	var groups []string
	g1 := symmetricGroup(3, 2.5, 8)
	g2 := symmetricGroup(5, 4, 12)
	scores, groups = appendObservations(scores, groups, g1, "a")
	scores, groups = appendObservations(scores, groups, g2, "b")

	res, err := RunTest(scores, groups, TestFisher, DefaultOptions())
	require.NoError(t, err)

	gs, err := Summarize(scores, groups)
	require.NoError(t, err)
	n1, n2 := float64(gs[0].N), float64(gs[1].N)
	pooled := ((n1-1)*gs[0].Variance + (n2-1)*gs[1].Variance) / (n1 + n2 - 2)
	tStat := (gs[0].Mean - gs[1].Mean) / math.Sqrt(pooled*(1/n1+1/n2))

	assert.InDelta(t, tStat*tStat, res.Statistic, 1e-9)
}

func TestWelchApproachesFisherWhenBalanced(t *testing.T) {
	// Balanced, homoscedastic groups: Welch's lambda adjustment shrinks
	// toward zero with n, so the two statistics converge. At sizes {6,6,6}
	// they already agree to within a few percent; at {40,40,40} the gap
	// must tighten further.
	small := func(n int) (float64, float64) {
		var scores []float64
		var groups []string
		scores, groups = appendObservations(scores, groups, symmetricGroup(10, 4, n), "a")
		scores, groups = appendObservations(scores, groups, symmetricGroup(12, 4, n), "b")
		scores, groups = appendObservations(scores, groups, symmetricGroup(14, 4, n), "c")

		fisher, err := RunTest(scores, groups, TestFisher, DefaultOptions())
		require.NoError(t, err)
		welch, err := RunTest(scores, groups, TestWelch, DefaultOptions())
		require.NoError(t, err)
		return fisher.Statistic, welch.Statistic
	}

	f6, w6 := small(6)
	assert.InEpsilon(t, f6, w6, 0.1)

	f40, w40 := small(40)
	assert.InEpsilon(t, f40, w40, 0.01)
	assert.Less(t, math.Abs(f40-w40)/f40, math.Abs(f6-w6)/f6)
}

func TestBrownForsytheCollapsesDF2TowardSmallGroup(t *testing.T) {
	// Strong heteroscedasticity with a tiny noisy group: Brown-Forsythe's
	// df2 collapses toward the small group's df while Fisher keeps n-k.
	var scores []float64
	var groups []string
	scores, groups = appendObservations(scores, groups, []float64{-10, 0, 10}, "noisy")
	scores, groups = appendObservations(scores, groups, symmetricGroup(1, 1, 30), "tight")

	fisher, err := RunTest(scores, groups, TestFisher, DefaultOptions())
	require.NoError(t, err)
	bf, err := RunTest(scores, groups, TestBrownForsythe, DefaultOptions())
	require.NoError(t, err)

	require.NotNil(t, fisher.DF2)
	require.NotNil(t, bf.DF2)
	assert.Equal(t, 31.0, *fisher.DF2)
	assert.Less(t, *bf.DF2, 5.0)
}

func TestCochranLabelOrderIndependence(t *testing.T) {
	scores, groups := fixture()
	first, err := RunTest(scores, groups, TestCochran, DefaultOptions())
	require.NoError(t, err)

	// Reverse the observation order so group first-appearance order flips.
	revScores := make([]float64, len(scores))
	revGroups := make([]string, len(groups))
	for i := range scores {
		revScores[len(scores)-1-i] = scores[i]
		revGroups[len(groups)-1-i] = groups[i]
	}
	second, err := RunTest(revScores, revGroups, TestCochran, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, first.Statistic, second.Statistic, 1e-9)
	assert.Equal(t, first.DF1, second.DF1)
	assert.InDelta(t, *first.PValue, *second.PValue, 1e-9)
}

func TestHartungAgacMakabiAltChangesWeights(t *testing.T) {
	// With unequal group sizes the two phi corrections must give different
	// statistics.
	scores, groups := fixture()

	def, err := RunTest(scores, groups, TestHartungAgacMakabi, DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Alt = true
	alt, err := RunTest(scores, groups, TestHartungAgacMakabi, opts)
	require.NoError(t, err)

	assert.Greater(t, math.Abs(def.Statistic-alt.Statistic), 1e-9)
}

func TestAllKernelsProduceWellFormedResults(t *testing.T) {
	scores, groups := fixture()

	for _, kind := range AllTests() {
		res, err := RunTest(scores, groups, kind, DefaultOptions())
		require.NoErrorf(t, err, "test %s", kind)

		assert.Positivef(t, res.DF1, "df1 for %s", kind)
		if res.DF2 != nil {
			assert.Positivef(t, *res.DF2, "df2 for %s", kind)
		}
		if res.PValue != nil {
			p := *res.PValue
			assert.GreaterOrEqualf(t, p, 0.0, "p for %s", kind)
			assert.LessOrEqualf(t, p, 1.0, "p for %s", kind)
			assert.Equalf(t, p < 0.05, res.Reject, "reject for %s", kind)
		} else {
			require.NotNilf(t, res.CriticalValue, "critical value for %s", kind)
		}
		assert.NotEmptyf(t, res.TestName, "name for %s", kind)
	}
}

func TestRunTestValidation(t *testing.T) {
	scores, groups := fixture()

	_, err := RunTest(scores, groups, TestKind("anova-9000"), DefaultOptions())
	assert.ErrorIs(t, err, core.ErrUnknownTest)

	_, err = RunTest(nil, nil, TestWelch, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = RunTest([]float64{1, 2}, []string{"a"}, TestWelch, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = RunTest([]float64{1, 2, 3}, []string{"a", "a", "a"}, TestWelch, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	badAlpha := DefaultOptions()
	badAlpha.Alpha = 0
	_, err = RunTest(scores, groups, TestWelch, badAlpha)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	badOrder := DefaultOptions()
	badOrder.Order = 3
	_, err = RunTest(scores, groups, TestJames, badOrder)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGroupSizePreconditions(t *testing.T) {
	// Two groups of two: enough for the variance but below Scott-Smith's
	// and second-order James' floors.
	scores := []float64{1, 2, 5, 7}
	groups := []string{"a", "a", "b", "b"}

	_, err := RunTest(scores, groups, TestScottSmith, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrDegenerateGroup)

	_, err = RunTest(scores, groups, TestJames, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrDegenerateGroup)

	// The alternate divisor v = n-1 lifts the James floor back to 2.
	altJames := DefaultOptions()
	altJames.Alt = true
	_, err = RunTest(scores, groups, TestJames, altJames)
	assert.NoError(t, err)

	altHAM := DefaultOptions()
	altHAM.Alt = true
	_, err = RunTest(scores, groups, TestHartungAgacMakabi, altHAM)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	// Default phi only needs n >= 2.
	_, err = RunTest(scores, groups, TestHartungAgacMakabi, DefaultOptions())
	assert.NoError(t, err)
}
