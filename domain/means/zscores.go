package means

import (
	"math"

	"gomeans/internal/distrib"
)

// tValues returns the per-group t statistics (mean_i - center) / sqrt(var_i/n_i).
// Scott-Smith centers on the count-weighted grand mean, Alexander-Govern and
// Ozdemir-Kurt on the inverse-variance weighted mean.
func tValues(gs []GroupSummary, center float64) []float64 {
	t := make([]float64, len(gs))
	for i, g := range gs {
		t[i] = (g.Mean - center) / math.Sqrt(g.Variance/float64(g.N))
	}
	return t
}

// scottSmithKernel sums squared shrunken t values against chi-square(k).
// Note df1 = k here, not k-1.
func scottSmithKernel(gs []GroupSummary, alpha float64) (*TestResult, error) {
	t := tValues(gs, grandMean(gs))

	var stat float64
	for i, g := range gs {
		ni := float64(g.N)
		z := t[i] * math.Sqrt((ni-3)/(ni-1))
		stat += z * z
	}

	df1 := float64(len(gs))
	pValue := distrib.ChiSquareUpperTail(stat, df1)
	return newChiSquareResult(TestScottSmith, stat, df1, pValue, alpha, ""), nil
}

// alexanderGovernKernel maps each t value to an approximate normal deviate
// through a Hill-type series and sums the squares against chi-square(k-1).
func alexanderGovernKernel(gs []GroupSummary, alpha float64) (*TestResult, error) {
	sq := NewSharedQuantities(gs)
	t := tValues(gs, sq.WeightedMean)

	var stat float64
	for i, g := range gs {
		ni := float64(g.N)
		a := ni - 1.5
		b := 48 * a * a
		c := math.Sqrt(a * math.Log(1+t[i]*t[i]/(ni-1)))
		c3 := c * c * c
		c4 := c3 * c
		c5 := c4 * c
		c7 := c5 * c * c
		z := c + (c3+3*c)/b - (4*c7+33*c5+240*c3+855*c)/(10*b*b+8*b*c4+1000*b)
		stat += z * z
	}

	df1 := float64(len(gs) - 1)
	pValue := distrib.ChiSquareUpperTail(stat, df1)
	return newChiSquareResult(TestAlexanderGovern, stat, df1, pValue, alpha, ""), nil
}

// ozdemirKurtStatistic computes the B2 statistic for a given tail
// probability: the normalizing constants c_i depend on the normal quantile
// at that probability, so the iterative mode re-evaluates the whole sum at
// every probe.
func ozdemirKurtStatistic(gs []GroupSummary, t []float64, tailProb float64) float64 {
	zCrit := distrib.NormalQuantile(1 - tailProb/2)

	var stat float64
	for i, g := range gs {
		v := float64(g.N - 1)
		c := (4*v*v + 5*(2*zCrit*zCrit+3)/24) / (4*v*v + v + (4*zCrit*zCrit+9)/12) * math.Sqrt(v)
		z := c * math.Sqrt(math.Log(1+t[i]*t[i]/v))
		stat += z * z
	}
	return stat
}

// ozdemirKurtKernel is the Özdemir-Kurt B2 test. Without iterations the
// alpha-based statistic is compared to the chi-square tail directly; with
// iterations a bisection search finds the tail probability at which the
// chi-square critical value meets the recomputed statistic.
func ozdemirKurtKernel(gs []GroupSummary, alpha float64, iters bool) (*TestResult, error) {
	sq := NewSharedQuantities(gs)
	t := tValues(gs, sq.WeightedMean)
	df1 := float64(len(gs) - 1)

	stat := ozdemirKurtStatistic(gs, t, alpha)

	if !iters {
		pValue := distrib.ChiSquareUpperTail(stat, df1)
		return newChiSquareResult(TestOzdemirKurt, stat, df1, pValue, alpha, ""), nil
	}

	pValue := Bisect(func(p float64) (float64, float64) {
		probeStat := ozdemirKurtStatistic(gs, t, p)
		crit := distrib.ChiSquareQuantile(1-p, df1)
		return crit, probeStat
	}, ozdemirKurtIterCap)

	comment := "using iterations for approximating p-value"
	return newChiSquareResult(TestOzdemirKurt, stat, df1, pValue, alpha, comment), nil
}
