// Package xirr solves for the annualised internal rate of return of an
// irregularly dated cash-flow schedule.
package xirr

import (
	"math"

	"github.com/bobmcallan/xirr/internal/models"
	"github.com/bobmcallan/xirr/internal/payments"
)

// flatDerivative is the |NPV'| below which a Newton step is unstable.
const flatDerivative = 1e-12

// term is one discounted cash flow: amount at a year offset from day zero.
type term struct {
	amount float64
	years  float64
}

type terms []term

// newTerms anchors the schedule at its earliest date.
func newTerms(s models.Schedule, dc DayCount) terms {
	start := s.Start()
	ts := make(terms, len(s))
	for i, p := range s {
		ts[i] = term{amount: p.Amount, years: dc.YearFraction(start, p.Date)}
	}
	return ts
}

// npv returns NPV(rate) and its derivative with respect to rate.
// NPV(r) = sum of amount_i / (1 + r)^years_i
func (ts terms) npv(rate float64) (f, df float64) {
	base := 1 + rate
	for _, t := range ts {
		discount := math.Pow(base, t.years)
		f += t.amount / discount
		if t.years != 0 {
			df -= t.years * t.amount / (discount * base)
		}
	}
	return f, df
}

// Solve finds the rate r > -1 at which the schedule's NPV is zero, using
// Newton-Raphson from the configured guess. The schedule must contain both
// positive and negative amounts. The first root found is returned; when the
// cash flows admit several, which one depends on the guess.
//
// Solve is pure: repeated calls on the same schedule return identical results.
func Solve(s models.Schedule, opts ...Option) (float64, error) {
	if err := payments.ValidateSchedule(s); err != nil {
		return 0, err
	}
	cfg := newConfig(opts)
	ts := newTerms(s, cfg.dayCount)

	rate, err := newton(ts, cfg)
	if err != nil && cfg.fallback {
		if r, berr := bisect(ts, cfg); berr == nil {
			return r, nil
		}
	}
	return rate, err
}

func newton(ts terms, cfg config) (float64, error) {
	rate := cfg.guess

	for iter := 0; iter < cfg.maxIter; iter++ {
		if rate <= -1 {
			// (1 + r) would be non-positive under a fractional exponent
			return 0, &ConvergenceError{Reason: ReasonDomain, Iterations: iter, Rate: rate}
		}

		f, df := ts.npv(rate)
		if math.Abs(f) < cfg.tolerance {
			return rate, nil
		}
		if math.Abs(df) < flatDerivative || math.IsNaN(df) || math.IsInf(df, 0) {
			return 0, &ConvergenceError{Reason: ReasonFlatDerivative, Iterations: iter, Rate: rate}
		}

		next := rate - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, &ConvergenceError{Reason: ReasonFlatDerivative, Iterations: iter, Rate: rate}
		}
		if math.Abs(next-rate) < cfg.tolerance {
			if next <= -1 {
				return 0, &ConvergenceError{Reason: ReasonDomain, Iterations: iter + 1, Rate: next}
			}
			return next, nil
		}
		rate = next
	}

	return 0, &ConvergenceError{Reason: ReasonMaxIterations, Iterations: cfg.maxIter, Rate: rate}
}
