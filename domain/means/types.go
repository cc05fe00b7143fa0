// Package means implements one-way comparisons of independent group means.
// Eleven test variants are supported, differing in how they handle unequal
// group sizes and unequal variances.
package means

// Observation is one raw score tagged with its group membership.
type Observation struct {
	Score float64 `json:"score"`
	Group string  `json:"group"`
}

// GroupSummary holds the per-group reduction every kernel consumes:
// sample size, arithmetic mean and unbiased sample variance (divisor n-1).
type GroupSummary struct {
	Group    string  `json:"group"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// SharedQuantities are the cross-group aggregates several kernels reuse:
// inverse-variance weights, their normalized form, the weighted grand mean,
// the Cochran statistic and the lambda adjustment (divisor n-1).
// Recomputed per invocation, never cached.
type SharedQuantities struct {
	Weights      []float64 `json:"weights"`
	Normalized   []float64 `json:"normalized"`
	WeightedMean float64   `json:"weighted_mean"`
	Cochran      float64   `json:"cochran"`
	Lambda       float64   `json:"lambda"`
}

// Options carries the variant-specific knobs of the dispatcher.
type Options struct {
	// Alpha is the significance level for the reject decision.
	Alpha float64 `json:"alpha"`
	// Iters switches the James and Ozdemir-Kurt tests from a fixed-alpha
	// critical-value comparison to a bisection-approximated p-value.
	Iters bool `json:"iters"`
	// Order selects the James test variant: 0 large-sample, 1 first-order,
	// 2 second-order.
	Order int `json:"order"`
	// Alt selects the alternate divisor (James order 2: v = n-1) or the
	// alternate weight correction (Hartung-Agac-Makabi: phi = (n-1)/(n-3)).
	Alt bool `json:"alt"`
}

// DefaultOptions mirrors the reference defaults: alpha 0.05, second-order
// James, no iterative p-value search.
func DefaultOptions() Options {
	return Options{Alpha: 0.05, Order: 2}
}

// TestResult is the uniform record every kernel produces. DF2 is present
// only for F-based tests; PValue is absent exactly when the James test runs
// in critical-value mode, in which case CriticalValue is set instead.
type TestResult struct {
	Statistic     float64  `json:"statistic"`
	DF1           float64  `json:"df1"`
	DF2           *float64 `json:"df2,omitempty"`
	PValue        *float64 `json:"p_value,omitempty"`
	CriticalValue *float64 `json:"critical_value,omitempty"`
	Reject        bool     `json:"reject"`
	TestName      string   `json:"test_name"`
	Comment       string   `json:"comment,omitempty"`
}
