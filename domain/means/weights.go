package means

// NewSharedQuantities computes the cross-group aggregates from
// inverse-variance weights w_i = n_i / var_i: the normalized weights h_i,
// the weighted grand mean y_w, the Cochran statistic and lambda with the
// standard per-group divisor n_i - 1.
func NewSharedQuantities(gs []GroupSummary) SharedQuantities {
	weights := make([]float64, len(gs))
	for i, g := range gs {
		weights[i] = float64(g.N) / g.Variance
	}
	return newSharedFromWeights(gs, weights)
}

// NewAdjustedSharedQuantities computes the same aggregates with each weight
// divided by the Hartung-Agac-Makabi correction phi_i: (n_i+2)/(n_i+1) in
// the default mode, (n_i-1)/(n_i-3) in the alternate mode. The alternate
// divisor requires n_i > 3; the dispatcher guards that before calling.
func NewAdjustedSharedQuantities(gs []GroupSummary, alt bool) SharedQuantities {
	weights := make([]float64, len(gs))
	for i, g := range gs {
		n := float64(g.N)
		var phi float64
		if alt {
			phi = (n - 1) / (n - 3)
		} else {
			phi = (n + 2) / (n + 1)
		}
		weights[i] = n / g.Variance / phi
	}
	return newSharedFromWeights(gs, weights)
}

func newSharedFromWeights(gs []GroupSummary, weights []float64) SharedQuantities {
	var w float64
	for _, wi := range weights {
		w += wi
	}

	normalized := make([]float64, len(weights))
	for i, wi := range weights {
		normalized[i] = wi / w
	}

	var yw float64
	for i, g := range gs {
		yw += normalized[i] * g.Mean
	}

	var cochran float64
	for i, g := range gs {
		d := g.Mean - yw
		cochran += weights[i] * d * d
	}

	sq := SharedQuantities{
		Weights:      weights,
		Normalized:   normalized,
		WeightedMean: yw,
		Cochran:      cochran,
	}
	sq.Lambda = sq.LambdaWithOffset(gs, 1)
	return sq
}

// LambdaWithOffset computes lambda = sum (1-h_i)^2 / (n_i - offset). The
// Welch-family tests use offset 1; second-order James uses offset 2 (or 1
// in its alternate variant).
func (sq SharedQuantities) LambdaWithOffset(gs []GroupSummary, offset int) float64 {
	var lambda float64
	for i, g := range gs {
		d := 1 - sq.Normalized[i]
		lambda += d * d / float64(g.N-offset)
	}
	return lambda
}
