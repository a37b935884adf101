// Package badger persists saved schedules in an embedded BadgerHold database.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ScheduleStore keeps SavedSchedule records keyed by id.
type ScheduleStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// Open opens (creating if needed) the schedule database in dir.
func Open(logger *common.Logger, dir string) (*ScheduleStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create schedule directory %s: %w", dir, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil // badger logs through its own logger otherwise

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule database: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("Schedule store opened")
	return &ScheduleStore{db: db, logger: logger}, nil
}

// Close closes the database. A store that never opened closes cleanly.
func (s *ScheduleStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *ScheduleStore) SaveSchedule(_ context.Context, schedule *models.SavedSchedule) error {
	if schedule.ID == "" {
		return fmt.Errorf("schedule id is required")
	}
	if err := s.db.Upsert(schedule.ID, schedule); err != nil {
		return fmt.Errorf("failed to save schedule '%s': %w", schedule.ID, err)
	}
	s.logger.Debug().Str("id", schedule.ID).Int("payments", len(schedule.Payments)).Msg("Schedule saved")
	return nil
}

func (s *ScheduleStore) GetSchedule(_ context.Context, id string) (*models.SavedSchedule, error) {
	var schedule models.SavedSchedule
	if err := s.db.Get(id, &schedule); err != nil {
		return nil, notFound(id, "get", err)
	}
	return &schedule, nil
}

// ListSchedules returns every schedule, oldest first; ties break on id.
func (s *ScheduleStore) ListSchedules(_ context.Context) ([]*models.SavedSchedule, error) {
	var schedules []models.SavedSchedule
	if err := s.db.Find(&schedules, nil); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	result := make([]*models.SavedSchedule, len(schedules))
	for i := range schedules {
		result[i] = &schedules[i]
	}
	slices.SortFunc(result, func(a, b *models.SavedSchedule) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (s *ScheduleStore) DeleteSchedule(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.SavedSchedule{}); err != nil {
		return notFound(id, "delete", err)
	}
	s.logger.Debug().Str("id", id).Msg("Schedule deleted")
	return nil
}

// notFound maps badgerhold's miss onto models.ErrScheduleNotFound.
func notFound(id, op string, err error) error {
	if errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("schedule '%s': %w", id, models.ErrScheduleNotFound)
	}
	return fmt.Errorf("failed to %s schedule '%s': %w", op, id, err)
}
