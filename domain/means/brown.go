package means

import (
	"gomeans/internal/distrib"
)

// brownForsytheComponents computes the Brown-Forsythe statistic and its
// second degrees of freedom, both reused verbatim by Mehrotra's variant.
func brownForsytheComponents(gs []GroupSummary) (stat, df2 float64) {
	n := totalSize(gs)
	mean := grandMean(gs)

	var num float64     // sum n_i (mean_i - mean)^2
	var denom float64   // sum (1 - n_i/n) var_i
	var df2Denom float64
	for _, g := range gs {
		ni := float64(g.N)
		d := g.Mean - mean
		num += ni * d * d

		c := 1 - ni/n
		denom += c * g.Variance
		df2Denom += c * c * g.Variance * g.Variance / (ni - 1)
	}

	return num / denom, denom * denom / df2Denom
}

// brownForsytheKernel is the Brown-Forsythe means test: Fisher's numerator
// over a variance term that does not assume homoscedasticity.
func brownForsytheKernel(gs []GroupSummary, alpha float64) (*TestResult, error) {
	stat, df2 := brownForsytheComponents(gs)
	df1 := float64(len(gs) - 1)

	pValue := distrib.FUpperTail(stat, df1, df2)
	return newFResult(TestBrownForsythe, stat, df1, df2, pValue, alpha, ""), nil
}

// mehrotraKernel keeps the Brown-Forsythe statistic and df2 but replaces the
// first degrees of freedom with a moment-matched, generally non-integer value.
func mehrotraKernel(gs []GroupSummary, alpha float64) (*TestResult, error) {
	stat, df2 := brownForsytheComponents(gs)
	n := totalSize(gs)

	var sumVar, sumNVar, sumVar2, sumNVar2 float64
	for _, g := range gs {
		ni := float64(g.N)
		v := g.Variance
		sumVar += v
		sumNVar += ni * v
		sumVar2 += v * v
		sumNVar2 += ni * v * v
	}

	num := sumVar - sumNVar/n
	df1 := num * num / (sumVar2 + (sumNVar/n)*(sumNVar/n) - 2*sumNVar2/n)

	pValue := distrib.FUpperTail(stat, df1, df2)
	return newFResult(TestMehrotra, stat, df1, df2, pValue, alpha, ""), nil
}
