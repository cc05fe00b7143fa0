package means

import (
	"gomeans/internal/distrib"
)

// jamesKernel dispatches the three James test orders. The statistic J is
// always the Cochran statistic; the orders differ in how the critical value
// is approximated.
func jamesKernel(gs []GroupSummary, opts Options) (*TestResult, error) {
	sq := NewSharedQuantities(gs)
	k := float64(len(gs))
	df1 := k - 1
	j := sq.Cochran

	switch opts.Order {
	case 0:
		return jamesLargeSample(j, df1, opts.Alpha), nil
	case 1:
		return jamesFirstOrder(j, sq.Lambda, k, opts), nil
	default:
		return jamesSecondOrder(gs, sq, j, k, opts), nil
	}
}

// jamesLargeSample treats J as chi-square(k-1) outright.
func jamesLargeSample(j, df1, alpha float64) *TestResult {
	pValue := distrib.ChiSquareUpperTail(j, df1)
	return newChiSquareResult(TestJames, j, df1, pValue, alpha, "for large category sizes")
}

// jamesFirstOrder inflates the chi-square critical value by a lambda term.
func jamesFirstOrder(j, lambda, k float64, opts Options) *TestResult {
	df1 := k - 1
	critAt := func(p float64) float64 {
		cCrit := distrib.ChiSquareQuantile(1-p, df1)
		return cCrit * (1 + (3*cCrit+k+1)/(2*(k*k-1))*lambda)
	}

	if opts.Iters {
		pValue := Bisect(func(p float64) (float64, float64) {
			return critAt(p), j
		}, jamesFirstOrderIterCap)
		comment := "first-order with iterations for p-value approximation"
		return newChiSquareResult(TestJames, j, df1, pValue, opts.Alpha, comment)
	}

	return newCriticalResult(TestJames, j, df1, critAt(opts.Alpha), "first-order")
}

// jamesSecondOrder evaluates the high-order asymptotic expansion of the
// critical value. The polynomial below reproduces the reference expansion
// verbatim; it is not independently re-derivable from its pieces.
func jamesSecondOrder(gs []GroupSummary, sq SharedQuantities, j, k float64, opts Options) *TestResult {
	df1 := k - 1

	// Per-group divisor v_i: n_i-2 by default, n_i-1 in the alternate
	// variant. Lambda is recomputed on the same divisor.
	offset := 2
	comment := "second order"
	if opts.Alt {
		offset = 1
		comment = "second order with alternative v (v = n -1)"
	}
	lambda := sq.LambdaWithOffset(gs, offset)

	// Moment sums R_xy = sum h_i^y / v_i^x.
	var r10, r11, r12, r20, r21, r22, r23 float64
	for i, g := range gs {
		h := sq.Normalized[i]
		v := float64(g.N - offset)
		r10 += 1 / v
		r11 += h / v
		r12 += h * h / v
		r20 += 1 / (v * v)
		r21 += h / (v * v)
		r22 += h * h / (v * v)
		r23 += h * h * h / (v * v)
	}

	critAt := func(p float64) float64 {
		cCrit := distrib.ChiSquareQuantile(1-p, df1)

		// Scaled powers chi_{2m} = cCrit^m / prod_{i=1}^{m} (k + 2i - 3).
		c2 := cCrit / (k + 2*1 - 3)
		c4 := c2 * cCrit / (k + 2*2 - 3)
		c6 := c4 * cCrit / (k + 2*3 - 3)
		c8 := c6 * cCrit / (k + 2*4 - 3)

		return cCrit +
			1.0/2*(3*c4+c2)*lambda +
			1.0/16*(3*c4+c2)*(3*c4+c2)*(1-(k-3)/cCrit)*lambda*lambda +
			1.0/2*(3*c4+c2)*
				((8*r23-10*r22+4*r21-6*r12*r12+8*r12*r11-4*r11*r11)+
					(2*r23-4*r22+2*r21-2*r12*r12+4*r12*r11-2*r11*r11)*(c2-1)+
					1.0/4*(-r12*r12+4*r12*r11-2*r12*r10-4*r11*r11+4*r11*r10-r10*r10)*(3*c4-2*c2-1)) +
			(r23-3*r22+3*r21-r20)*(5*c6+2*c4+c2) +
			3.0/16*(r12*r12-4*r23+6*r22-4*r21+r20)*(35*c8+15*c6+9*c4+5*c2) +
			1.0/16*(-2*r22*r22+4*r21-r20+2*r12*r10-4*r11*r10+r10*r10)*(9*c8-3*c6-5*c4-c2) +
			1.0/4*(-r22+r11*r11)*(27*c8+3*c6+c4+c2) +
			1.0/4*(r23-r12*r11)*(45*c8+9*c6+7*c4+3*c2)
	}

	if opts.Iters {
		pValue := Bisect(func(p float64) (float64, float64) {
			return critAt(p), j
		}, jamesSecondOrderIterCap)
		comment += ", using iterations for p-value approximation"
		return newChiSquareResult(TestJames, j, df1, pValue, opts.Alpha, comment)
	}

	return newCriticalResult(TestJames, j, df1, critAt(opts.Alpha), comment)
}
