// Package distrib provides unified access to the reference distributions the
// test kernels compare against. All degrees of freedom are real-valued; the
// corrected tests (Box, Mehrotra) produce non-integer df.
package distrib

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// FUpperTail computes the upper tail probability of F(df1, df2) at x.
func FUpperTail(x, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}

	fDist := distuv.F{D1: df1, D2: df2}
	return 1 - fDist.CDF(x)
}

// ChiSquareUpperTail computes the upper tail probability of chi-square(df) at x.
func ChiSquareUpperTail(x, df float64) float64 {
	if df <= 0 {
		return 1.0
	}

	chiDist := distuv.ChiSquared{K: df}
	return 1 - chiDist.CDF(x)
}

// ChiSquareQuantile computes the quantile function of chi-square(df) at p.
func ChiSquareQuantile(p, df float64) float64 {
	if df <= 0 {
		return 0
	}

	chiDist := distuv.ChiSquared{K: df}
	return chiDist.Quantile(p)
}

// NormalQuantile computes the quantile function for the standard normal (inverse CDF).
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// NormalCDF computes the cumulative distribution function for the standard normal.
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
