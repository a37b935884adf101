package xirr

import (
	"errors"
	"fmt"
)

// ErrConvergence matches every *ConvergenceError.
var ErrConvergence = errors.New("failed to converge")

// ErrInvalidRate is returned when a rate at or below -100% is evaluated.
var ErrInvalidRate = errors.New("rate must be greater than -1")

// ErrInvalidOption is returned for an unknown day count or malformed profile range.
var ErrInvalidOption = errors.New("invalid option")

// Reason identifies which guard stopped the solver.
type Reason string

const (
	ReasonMaxIterations  Reason = "max_iterations"
	ReasonFlatDerivative Reason = "flat_derivative"
	ReasonDomain         Reason = "domain"
	ReasonNoBracket      Reason = "no_bracket"
)

// ConvergenceError reports why the solver gave up and where it was.
type ConvergenceError struct {
	Reason     Reason
	Iterations int
	Rate       float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("xirr failed to converge: %s after %d iterations (last rate %g)", e.Reason, e.Iterations, e.Rate)
}

func (e *ConvergenceError) Unwrap() error { return ErrConvergence }
