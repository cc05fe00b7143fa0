package means

import (
	"fmt"

	"gomeans/domain/core"
)

// RunTest is the single entry point: it summarizes the raw observations,
// checks the selected test's preconditions and routes to the matching
// kernel. The whole computation is synchronous and stateless; it either
// fully succeeds or fails atomically before any partial result exists.
func RunTest(scores []float64, groups []string, kind TestKind, opts Options) (*TestResult, error) {
	if !kind.Valid() {
		return nil, core.NewUnknownTestError(string(kind))
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	gs, err := Summarize(scores, groups)
	if err != nil {
		return nil, err
	}
	if len(gs) < 2 {
		return nil, core.NewInputError("need at least 2 distinct groups")
	}
	if err := checkGroupSizes(gs, kind, opts); err != nil {
		return nil, err
	}

	switch kind {
	case TestFisher:
		return fisherKernel(scores, gs, opts.Alpha)
	case TestBox:
		return boxKernel(scores, gs, opts.Alpha)
	case TestCochran:
		return cochranKernel(gs, opts.Alpha)
	case TestWelch:
		return welchKernel(gs, opts.Alpha)
	case TestJames:
		return jamesKernel(gs, opts)
	case TestScottSmith:
		return scottSmithKernel(gs, opts.Alpha)
	case TestBrownForsythe:
		return brownForsytheKernel(gs, opts.Alpha)
	case TestAlexanderGovern:
		return alexanderGovernKernel(gs, opts.Alpha)
	case TestMehrotra:
		return mehrotraKernel(gs, opts.Alpha)
	case TestHartungAgacMakabi:
		return hartungAgacMakabiKernel(gs, opts.Alpha, opts.Alt)
	case TestOzdemirKurt:
		return ozdemirKurtKernel(gs, opts.Alpha, opts.Iters)
	default:
		return nil, core.NewUnknownTestError(string(kind))
	}
}

func validateOptions(opts Options) error {
	if opts.Alpha <= 0 || opts.Alpha >= 1 {
		return core.NewInputError(fmt.Sprintf("alpha must be in (0, 1), got %v", opts.Alpha))
	}
	if opts.Order < 0 || opts.Order > 2 {
		return core.NewInputError(fmt.Sprintf("order must be 0, 1 or 2, got %d", opts.Order))
	}
	return nil
}

// minimumGroupSize gives the per-test floor on n_i beyond the universal
// n_i >= 2 needed for the sample variance.
func minimumGroupSize(kind TestKind, opts Options) int {
	switch kind {
	case TestScottSmith:
		// sqrt((n-3)/(n-1)) needs n >= 3
		return 3
	case TestJames:
		// second-order divisor v = n-2 needs n >= 3
		if opts.Order == 2 && !opts.Alt {
			return 3
		}
	case TestHartungAgacMakabi:
		// alternate phi = (n-1)/(n-3) needs n > 3
		if opts.Alt {
			return 4
		}
	}
	return 2
}

func checkGroupSizes(gs []GroupSummary, kind TestKind, opts Options) error {
	min := minimumGroupSize(kind, opts)
	for _, g := range gs {
		if g.N >= min {
			continue
		}
		if kind == TestHartungAgacMakabi && opts.Alt {
			return core.NewConfigurationError(fmt.Sprintf(
				"alternate phi requires every group size > 3, group %q has %d", g.Group, g.N))
		}
		return core.NewDegenerateGroupError(g.Group, g.N, min)
	}
	return nil
}
