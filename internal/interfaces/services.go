// Package interfaces defines service contracts for the xirr service
package interfaces

import (
	"context"

	"github.com/bobmcallan/xirr/internal/models"
	"github.com/bobmcallan/xirr/internal/payments"
)

// XIRRService computes returns over irregular payment schedules
type XIRRService interface {
	// Calculate extracts a schedule from src and solves for its annualized rate
	Calculate(ctx context.Context, src payments.Source, opts CalcOptions) (*models.XIRRResult, error)

	// NPV discounts the schedule in src at a fixed annual rate
	NPV(ctx context.Context, src payments.Source, rate float64, opts CalcOptions) (*models.NPVResult, error)

	// Profile samples the NPV curve across a rate range
	Profile(ctx context.Context, src payments.Source, opts ProfileOptions) ([]models.ProfilePoint, error)

	// RenderProfile draws the NPV curve as a PNG image
	RenderProfile(ctx context.Context, src payments.Source, opts ProfileOptions) ([]byte, error)

	// SaveSchedule validates and persists a named schedule
	SaveSchedule(ctx context.Context, name, description string, src payments.Source) (*models.SavedSchedule, error)

	// GetSchedule loads a saved schedule by id
	GetSchedule(ctx context.Context, id string) (*models.SavedSchedule, error)

	// ListSchedules returns summaries of all saved schedules, oldest first
	ListSchedules(ctx context.Context) ([]models.ScheduleSummary, error)

	// DeleteSchedule removes a saved schedule
	DeleteSchedule(ctx context.Context, id string) error

	// CalculateSaved solves XIRR for a saved schedule
	CalculateSaved(ctx context.Context, id string, opts CalcOptions) (*models.XIRRResult, error)
}

// CalcOptions overrides the configured solver defaults for one call.
// Zero values keep the configured default.
type CalcOptions struct {
	Guess             *float64 // Starting rate for Newton-Raphson
	DayCount          string   // ACT/365F, ACT/360 or ACT/365.25
	MaxIterations     int
	BisectionFallback *bool
}

// ProfileOptions configures NPV profile sampling and rendering
type ProfileOptions struct {
	CalcOptions
	Low    float64 // Lowest rate sampled
	High   float64 // Highest rate sampled
	Steps  int     // Number of rates sampled, Low and High included
	Width  int     // Chart width in pixels
	Height int     // Chart height in pixels
}
