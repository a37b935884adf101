package xirr

const (
	DefaultGuess         = 0.1
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-10
)

type config struct {
	guess     float64
	maxIter   int
	tolerance float64
	dayCount  DayCount
	fallback  bool
}

// Option configures Solve, XNPV and Profile.
type Option func(*config)

// WithGuess sets the Newton starting rate.
func WithGuess(guess float64) Option {
	return func(c *config) { c.guess = guess }
}

// WithMaxIterations bounds the Newton iteration count. Values < 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithTolerance sets the convergence threshold for |NPV| and the step size.
// Values <= 0 are ignored.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithDayCount selects the year-fraction convention.
func WithDayCount(dc DayCount) Option {
	return func(c *config) {
		if dc != "" {
			c.dayCount = dc
		}
	}
}

// WithBisectionFallback retries with bisection when Newton fails.
func WithBisectionFallback(enabled bool) Option {
	return func(c *config) { c.fallback = enabled }
}

func newConfig(opts []Option) config {
	c := config{
		guess:     DefaultGuess,
		maxIter:   DefaultMaxIterations,
		tolerance: DefaultTolerance,
		dayCount:  Act365F,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
