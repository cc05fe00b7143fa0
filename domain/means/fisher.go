package means

import (
	"github.com/montanaflynn/stats"

	"gomeans/internal/distrib"

	"gomeans/domain/core"
)

// fisherComponents holds the classic between/within decomposition shared by
// the Fisher test and its Box correction.
type fisherComponents struct {
	n    float64
	k    float64
	ssb  float64
	ssw  float64
	df1  float64
	df2  float64
	stat float64
}

func fisherDecompose(scores []float64, gs []GroupSummary) (fisherComponents, error) {
	n := totalSize(gs)
	k := float64(len(gs))
	mean := grandMean(gs)

	var ssb float64
	for _, g := range gs {
		d := g.Mean - mean
		ssb += float64(g.N) * d * d
	}

	// The within sum of squares is derived from the total sample variance
	// rather than accumulated per group.
	totalVar, err := stats.SampleVariance(scores)
	if err != nil {
		return fisherComponents{}, core.NewInputError(err.Error())
	}
	ssw := totalVar*(n-1) - ssb

	df1 := k - 1
	df2 := n - k
	return fisherComponents{
		n:    n,
		k:    k,
		ssb:  ssb,
		ssw:  ssw,
		df1:  df1,
		df2:  df2,
		stat: (ssb / df1) / (ssw / df2),
	}, nil
}

// fisherKernel is the classic one-way ANOVA: between/within mean-square
// ratio against F(k-1, n-k).
func fisherKernel(scores []float64, gs []GroupSummary, alpha float64) (*TestResult, error) {
	fc, err := fisherDecompose(scores, gs)
	if err != nil {
		return nil, err
	}

	pValue := distrib.FUpperTail(fc.stat, fc.df1, fc.df2)
	return newFResult(TestFisher, fc.stat, fc.df1, fc.df2, pValue, alpha, ""), nil
}

// boxKernel applies Box's correction to Fisher's F and re-derives both
// degrees of freedom from weighted-variance moment sums. The corrected df
// are generally non-integer.
func boxKernel(scores []float64, gs []GroupSummary, alpha float64) (*TestResult, error) {
	fc, err := fisherDecompose(scores, gs)
	if err != nil {
		return nil, err
	}
	n := fc.n
	k := fc.k

	var sumComplVar float64  // sum (n - n_i) var_i
	var sumNVar float64      // sum n_i var_i
	var sumComplVar2 float64 // sum (n - 2 n_i) var_i^2
	var sumDFVar float64     // sum (n_i - 1) var_i
	var sumDFVar2 float64    // sum (n_i - 1) var_i^2
	for _, g := range gs {
		ni := float64(g.N)
		v := g.Variance
		sumComplVar += (n - ni) * v
		sumNVar += ni * v
		sumComplVar2 += (n - 2*ni) * v * v
		sumDFVar += (ni - 1) * v
		sumDFVar2 += (ni - 1) * v * v
	}

	c := (n - k) / (n * (k - 1)) * sumComplVar / sumDFVar
	stat := fc.stat / c
	df1 := sumComplVar * sumComplVar / (sumNVar*sumNVar + n*sumComplVar2)
	df2 := sumDFVar * sumDFVar / sumDFVar2

	pValue := distrib.FUpperTail(stat, df1, df2)
	return newFResult(TestBox, stat, df1, df2, pValue, alpha, ""), nil
}
