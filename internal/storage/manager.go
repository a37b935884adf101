// Package storage provides the top-level StorageManager that owns the
// saved-schedule database.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a BadgerHold store.
type Manager struct {
	schedules *badger.ScheduleStore
	logger    *common.Logger
}

// NewManager opens the schedule database under config.Storage.Path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	path := filepath.Clean(config.Storage.Path)

	schedules, err := badger.Open(logger, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule store: %w", err)
	}

	logger.Info().Str("path", path).Msg("Storage manager initialized")

	return &Manager{
		schedules: schedules,
		logger:    logger,
	}, nil
}

func (m *Manager) ScheduleStore() interfaces.ScheduleStore {
	return m.schedules
}

func (m *Manager) Close() error {
	if err := m.schedules.Close(); err != nil {
		return fmt.Errorf("failed to close schedule store: %w", err)
	}
	return nil
}
