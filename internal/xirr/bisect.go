package xirr

import "math"

// bisect is the bracketing fallback for schedules where Newton leaves the
// valid domain or stalls.
func bisect(ts terms, cfg config) (float64, error) {
	const (
		maxIter = 200
		maxHi   = 1e4
	)

	// Find bracket [lo, hi] where NPV changes sign
	lo, hi := -0.999999, 10.0
	npvLo, _ := ts.npv(lo)
	npvHi, _ := ts.npv(hi)
	for !math.IsNaN(npvHi) && sameSign(npvLo, npvHi) && hi < maxHi {
		hi *= 4
		npvHi, _ = ts.npv(hi)
	}

	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || sameSign(npvLo, npvHi) {
		return 0, &ConvergenceError{Reason: ReasonNoBracket, Rate: hi}
	}

	for iter := 0; iter < maxIter; iter++ {
		mid := (lo + hi) / 2
		npvMid, _ := ts.npv(mid)
		if math.IsNaN(npvMid) {
			return 0, &ConvergenceError{Reason: ReasonNoBracket, Iterations: iter, Rate: mid}
		}
		if math.Abs(npvMid) < cfg.tolerance || (hi-lo)/2 < cfg.tolerance {
			return mid, nil
		}
		if sameSign(npvMid, npvLo) {
			lo = mid
			npvLo = npvMid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2, nil
}

func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
