package means

// Result assembly helpers. Every kernel funnels through one of these so the
// optional fields stay consistent: DF2 only for F-based tests, PValue or
// CriticalValue depending on the branch taken.

func floatPtr(v float64) *float64 { return &v }

// newChiSquareResult builds the record for chi-square distributed statistics.
func newChiSquareResult(kind TestKind, stat, df1, pValue, alpha float64, comment string) *TestResult {
	return &TestResult{
		Statistic: stat,
		DF1:       df1,
		PValue:    floatPtr(pValue),
		Reject:    pValue < alpha,
		TestName:  kind.DisplayName(),
		Comment:   comment,
	}
}

// newFResult builds the record for F distributed statistics.
func newFResult(kind TestKind, stat, df1, df2, pValue, alpha float64, comment string) *TestResult {
	return &TestResult{
		Statistic: stat,
		DF1:       df1,
		DF2:       floatPtr(df2),
		PValue:    floatPtr(pValue),
		Reject:    pValue < alpha,
		TestName:  kind.DisplayName(),
		Comment:   comment,
	}
}

// newCriticalResult builds the record for the non-iterative James branches,
// which compare the statistic against an inflated critical value instead of
// producing a p-value.
func newCriticalResult(kind TestKind, stat, df1, crit float64, comment string) *TestResult {
	return &TestResult{
		Statistic:     stat,
		DF1:           df1,
		CriticalValue: floatPtr(crit),
		Reject:        stat > crit,
		TestName:      kind.DisplayName(),
		Comment:       comment,
	}
}
