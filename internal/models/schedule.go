package models

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
)

var (
	// ErrScheduleNotFound is returned when a saved schedule does not exist.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrScheduleName is returned when a schedule is saved without a name.
	ErrScheduleName = errors.New("schedule name is required")
)

// SavedSchedule is a named, validated schedule persisted for later evaluation.
type SavedSchedule struct {
	ID          string    `json:"id" badgerhold:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Payments    Schedule  `json:"payments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScheduleSummary is the list view of a saved schedule.
type ScheduleSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Payments  int        `json:"payments"`
	Start     civil.Date `json:"start"`
	End       civil.Date `json:"end"`
	CreatedAt time.Time  `json:"created_at"`
}

// Summary returns the list view of the schedule.
func (s *SavedSchedule) Summary() ScheduleSummary {
	return ScheduleSummary{
		ID:        s.ID,
		Name:      s.Name,
		Payments:  len(s.Payments),
		Start:     s.Payments.Start(),
		End:       s.Payments.End(),
		CreatedAt: s.CreatedAt,
	}
}
