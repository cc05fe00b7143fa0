package means

import (
	"github.com/montanaflynn/stats"

	"gomeans/domain/core"
)

// Summarize partitions raw scores by group label and reduces each group to
// its sample size, mean and unbiased sample variance. Groups keep their
// first-appearance order so output is deterministic; the statistics
// themselves are label-order independent. Fails with ErrInsufficientData
// when any group has fewer than two observations.
func Summarize(scores []float64, groups []string) ([]GroupSummary, error) {
	if len(scores) == 0 {
		return nil, core.NewInputError("no observations supplied")
	}
	if len(scores) != len(groups) {
		return nil, core.NewInputError("scores and groups must have equal length")
	}

	byGroup := make(map[string][]float64)
	order := make([]string, 0)
	for i, g := range groups {
		if _, seen := byGroup[g]; !seen {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], scores[i])
	}

	summaries := make([]GroupSummary, 0, len(order))
	for _, g := range order {
		data := byGroup[g]
		if len(data) < 2 {
			return nil, core.NewInsufficientDataError(g, len(data))
		}

		mean, err := stats.Mean(data)
		if err != nil {
			return nil, core.NewInputError(err.Error())
		}
		variance, err := stats.SampleVariance(data)
		if err != nil {
			return nil, core.NewInputError(err.Error())
		}

		summaries = append(summaries, GroupSummary{
			Group:    g,
			N:        len(data),
			Mean:     mean,
			Variance: variance,
		})
	}

	return summaries, nil
}

// totalSize returns the pooled sample size n.
func totalSize(gs []GroupSummary) float64 {
	var n float64
	for _, g := range gs {
		n += float64(g.N)
	}
	return n
}

// grandMean returns the count-weighted overall mean.
func grandMean(gs []GroupSummary) float64 {
	var sum, n float64
	for _, g := range gs {
		sum += float64(g.N) * g.Mean
		n += float64(g.N)
	}
	return sum / n
}
