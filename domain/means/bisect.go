package means

// Iteration caps for the bisection search. Termination is bounded by
// iteration count alone, never by a tolerance, so the approximation error
// shrinks like 2^-iterations without ever being checked.
const (
	jamesFirstOrderIterCap  = 800
	jamesSecondOrderIterCap = 500
	ozdemirKurtIterCap      = 500
)

// BisectStep evaluates the forward map at tail probability p. It returns the
// critical value at p together with the observed statistic at p; the James
// tests hold the statistic fixed across probes, the Ozdemir-Kurt test
// recomputes it because its normalizing constants depend on p.
type BisectStep func(p float64) (crit, stat float64)

// Bisect searches (0, 1) for the tail probability at which the critical
// value equals the observed statistic. The forward map must be strictly
// decreasing in p: a larger tail probability gives a smaller critical value.
// The initial probe is 0.05. The exact-equality stop will almost never fire
// in floating point. Returns the last probe as the approximate p-value.
func Bisect(step BisectStep, maxIter int) float64 {
	pLow := 0.0
	pHigh := 1.0
	pVal := 0.05

	for nIter := 1; ; {
		crit, stat := step(pVal)

		if crit < stat {
			pHigh = pVal
			pVal = (pLow + pVal) / 2
		} else if crit > stat {
			pLow = pVal
			pVal = (pHigh + pVal) / 2
		}

		nIter++
		if crit == stat || nIter >= maxIter {
			return pVal
		}
	}
}
