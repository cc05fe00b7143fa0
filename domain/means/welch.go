package means

import (
	"gomeans/internal/distrib"
)

// cochranKernel compares the shared Cochran statistic against chi-square(k-1).
func cochranKernel(gs []GroupSummary, alpha float64) (*TestResult, error) {
	sq := NewSharedQuantities(gs)
	df1 := float64(len(gs) - 1)

	pValue := distrib.ChiSquareUpperTail(sq.Cochran, df1)
	return newChiSquareResult(TestCochran, sq.Cochran, df1, pValue, alpha, ""), nil
}

// welchAdjusted divides the Cochran statistic by the Welch adjustment and
// pairs it with the lambda-derived second degrees of freedom. The same
// functional form serves Welch and Hartung-Agac-Makabi, which differ only
// in the weights feeding the shared quantities.
func welchAdjusted(kind TestKind, sq SharedQuantities, k, alpha float64) *TestResult {
	stat := sq.Cochran / (k - 1 + 2*(k-2)/(k+1)*sq.Lambda)
	df1 := k - 1
	df2 := (k*k - 1) / (3 * sq.Lambda)

	pValue := distrib.FUpperTail(stat, df1, df2)
	return newFResult(kind, stat, df1, df2, pValue, alpha, "")
}

// welchKernel is Welch's heteroscedasticity-robust one-way ANOVA.
func welchKernel(gs []GroupSummary, alpha float64) (*TestResult, error) {
	sq := NewSharedQuantities(gs)
	return welchAdjusted(TestWelch, sq, float64(len(gs)), alpha), nil
}

// hartungAgacMakabiKernel is the Welch form with phi-corrected weights.
func hartungAgacMakabiKernel(gs []GroupSummary, alpha float64, alt bool) (*TestResult, error) {
	sq := NewAdjustedSharedQuantities(gs, alt)
	return welchAdjusted(TestHartungAgacMakabi, sq, float64(len(gs)), alpha), nil
}
