package interfaces

import (
	"context"

	"github.com/bobmcallan/xirr/internal/models"
)

// StorageManager coordinates the persistent stores
type StorageManager interface {
	ScheduleStore() ScheduleStore

	// Close releases all storage resources
	Close() error
}

// ScheduleStore persists named payment schedules
type ScheduleStore interface {
	SaveSchedule(ctx context.Context, schedule *models.SavedSchedule) error
	GetSchedule(ctx context.Context, id string) (*models.SavedSchedule, error)
	ListSchedules(ctx context.Context) ([]*models.SavedSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}
