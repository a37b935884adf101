// Package returns provides XIRR, XNPV and saved-schedule services
package returns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/models"
	"github.com/bobmcallan/xirr/internal/payments"
	"github.com/bobmcallan/xirr/internal/xirr"
)

// Profile defaults used when a request leaves the range unset.
const (
	defaultProfileLow   = -0.5
	defaultProfileHigh  = 1.0
	defaultProfileSteps = 61
)

// Service implements XIRRService
type Service struct {
	storage interfaces.StorageManager
	solver  common.SolverConfig
	logger  *common.Logger
	now     func() time.Time
}

var _ interfaces.XIRRService = (*Service)(nil)

// NewService creates a new returns service
func NewService(storage interfaces.StorageManager, solver common.SolverConfig, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		solver:  solver,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Calculate extracts a schedule and solves for its rate
func (s *Service) Calculate(_ context.Context, src payments.Source, opts interfaces.CalcOptions) (*models.XIRRResult, error) {
	schedule, err := s.extract(src)
	if err != nil {
		return nil, err
	}
	return s.solve(schedule, opts)
}

// NPV discounts the extracted schedule at rate
func (s *Service) NPV(_ context.Context, src payments.Source, rate float64, opts interfaces.CalcOptions) (*models.NPVResult, error) {
	schedule, err := s.extract(src)
	if err != nil {
		return nil, err
	}
	xopts, dc, err := s.options(opts)
	if err != nil {
		return nil, err
	}

	npv, err := xirr.XNPV(rate, schedule, xopts...)
	if err != nil {
		return nil, err
	}

	return &models.NPVResult{
		Rate:     rate,
		NPV:      npv,
		Payments: len(schedule),
		Start:    schedule.Start(),
		DayCount: string(dc),
	}, nil
}

// Profile samples the NPV curve of the extracted schedule
func (s *Service) Profile(_ context.Context, src payments.Source, opts interfaces.ProfileOptions) ([]models.ProfilePoint, error) {
	schedule, err := s.extract(src)
	if err != nil {
		return nil, err
	}
	return s.profile(schedule, opts)
}

// RenderProfile draws the NPV curve as PNG. The solved rate is marked when
// the solver converges; a failure to converge does not prevent rendering.
func (s *Service) RenderProfile(_ context.Context, src payments.Source, opts interfaces.ProfileOptions) ([]byte, error) {
	schedule, err := s.extract(src)
	if err != nil {
		return nil, err
	}
	points, err := s.profile(schedule, opts)
	if err != nil {
		return nil, err
	}

	var irr *float64
	if result, err := s.solve(schedule, opts.CalcOptions); err == nil {
		irr = &result.Rate
	}

	return RenderProfileChart(points, irr, opts.Width, opts.Height)
}

// SaveSchedule validates and stores a named schedule under a new id
func (s *Service) SaveSchedule(ctx context.Context, name, description string, src payments.Source) (*models.SavedSchedule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrScheduleName
	}
	schedule, err := s.extract(src)
	if err != nil {
		return nil, err
	}

	now := s.now()
	saved := &models.SavedSchedule{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Payments:    schedule,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.storage.ScheduleStore().SaveSchedule(ctx, saved); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", saved.ID).Str("name", name).Int("payments", len(schedule)).Msg("Schedule saved")
	return saved, nil
}

// GetSchedule loads a saved schedule
func (s *Service) GetSchedule(ctx context.Context, id string) (*models.SavedSchedule, error) {
	return s.storage.ScheduleStore().GetSchedule(ctx, id)
}

// ListSchedules returns saved schedule summaries, oldest first
func (s *Service) ListSchedules(ctx context.Context) ([]models.ScheduleSummary, error) {
	schedules, err := s.storage.ScheduleStore().ListSchedules(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.ScheduleSummary, len(schedules))
	for i, sched := range schedules {
		summaries[i] = sched.Summary()
	}
	return summaries, nil
}

// DeleteSchedule removes a saved schedule
func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	if err := s.storage.ScheduleStore().DeleteSchedule(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Schedule deleted")
	return nil
}

// CalculateSaved solves XIRR for a saved schedule
func (s *Service) CalculateSaved(ctx context.Context, id string, opts interfaces.CalcOptions) (*models.XIRRResult, error) {
	saved, err := s.storage.ScheduleStore().GetSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.solve(saved.Payments, opts)
}

func (s *Service) extract(src payments.Source) (models.Schedule, error) {
	schedule, err := payments.Extract(src)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Payment extraction failed")
		return nil, err
	}
	return schedule, nil
}

func (s *Service) solve(schedule models.Schedule, opts interfaces.CalcOptions) (*models.XIRRResult, error) {
	xopts, dc, err := s.options(opts)
	if err != nil {
		return nil, err
	}

	rate, err := xirr.Solve(schedule, xopts...)
	if err != nil {
		event := s.logger.Warn().Err(err).Int("payments", len(schedule))
		var ce *xirr.ConvergenceError
		if errors.As(err, &ce) {
			event = event.Str("reason", string(ce.Reason)).Int("iterations", ce.Iterations)
		}
		event.Msg("XIRR did not converge")
		return nil, err
	}

	inflow, outflow := schedule.Totals()
	s.logger.Debug().Float64("rate", rate).Int("payments", len(schedule)).Str("day_count", string(dc)).Msg("XIRR solved")

	return &models.XIRRResult{
		Rate:     rate,
		Payments: len(schedule),
		Start:    schedule.Start(),
		End:      schedule.End(),
		Inflow:   inflow,
		Outflow:  outflow,
		DayCount: string(dc),
	}, nil
}

func (s *Service) profile(schedule models.Schedule, opts interfaces.ProfileOptions) ([]models.ProfilePoint, error) {
	xopts, _, err := s.options(opts.CalcOptions)
	if err != nil {
		return nil, err
	}
	lo, hi := opts.Low, opts.High
	if lo == 0 && hi == 0 {
		lo, hi = defaultProfileLow, defaultProfileHigh
	}
	steps := opts.Steps
	if steps == 0 {
		steps = defaultProfileSteps
	}
	return xirr.Profile(schedule, lo, hi, steps, xopts...)
}

// options merges per-call overrides over the configured solver defaults.
func (s *Service) options(opts interfaces.CalcOptions) ([]xirr.Option, xirr.DayCount, error) {
	name := s.solver.DayCount
	if opts.DayCount != "" {
		name = opts.DayCount
	}
	dc, err := xirr.ParseDayCount(name)
	if err != nil {
		return nil, "", err
	}

	guess := s.solver.Guess
	if opts.Guess != nil {
		guess = *opts.Guess
	}
	maxIter := s.solver.MaxIterations
	if opts.MaxIterations > 0 {
		maxIter = opts.MaxIterations
	}
	if maxIter > 10000 {
		return nil, "", fmt.Errorf("max_iterations %d exceeds 10000: %w", maxIter, xirr.ErrInvalidOption)
	}
	fallback := s.solver.BisectionFallback
	if opts.BisectionFallback != nil {
		fallback = *opts.BisectionFallback
	}

	return []xirr.Option{
		xirr.WithGuess(guess),
		xirr.WithMaxIterations(maxIter),
		xirr.WithTolerance(s.solver.Tolerance),
		xirr.WithDayCount(dc),
		xirr.WithBisectionFallback(fallback),
	}, dc, nil
}
