package xirr

import (
	"fmt"

	"github.com/bobmcallan/xirr/internal/models"
)

// XNPV returns the net present value of the schedule at rate, discounting
// each payment from the schedule's earliest date.
func XNPV(rate float64, s models.Schedule, opts ...Option) (float64, error) {
	if rate <= -1 {
		return 0, fmt.Errorf("xnpv at %g: %w", rate, ErrInvalidRate)
	}
	cfg := newConfig(opts)
	f, _ := newTerms(s, cfg.dayCount).npv(rate)
	return f, nil
}

// MaxProfileSteps bounds the number of rates Profile will sample.
const MaxProfileSteps = 10000

// Profile samples NPV at steps evenly spaced rates across [lo, hi].
func Profile(s models.Schedule, lo, hi float64, steps int, opts ...Option) ([]models.ProfilePoint, error) {
	if lo <= -1 {
		return nil, fmt.Errorf("profile lower bound %g: %w", lo, ErrInvalidRate)
	}
	if hi <= lo {
		return nil, fmt.Errorf("profile upper bound %g must exceed lower bound %g: %w", hi, lo, ErrInvalidOption)
	}
	if steps < 2 {
		return nil, fmt.Errorf("profile needs at least 2 steps, got %d: %w", steps, ErrInvalidOption)
	}
	if steps > MaxProfileSteps {
		return nil, fmt.Errorf("profile steps %d exceeds %d: %w", steps, MaxProfileSteps, ErrInvalidOption)
	}

	cfg := newConfig(opts)
	ts := newTerms(s, cfg.dayCount)
	step := (hi - lo) / float64(steps-1)

	points := make([]models.ProfilePoint, steps)
	for i := range points {
		rate := lo + float64(i)*step
		if i == steps-1 {
			rate = hi
		}
		f, _ := ts.npv(rate)
		points[i] = models.ProfilePoint{Rate: rate, NPV: f}
	}
	return points, nil
}
