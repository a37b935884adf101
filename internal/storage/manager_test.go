package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ReopenKeepsSchedules(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "schedules")
	logger := common.NewSilentLogger()
	ctx := context.Background()

	m, err := NewManager(logger, cfg)
	require.NoError(t, err)

	saved := &models.SavedSchedule{
		ID:   "s1",
		Name: "bond",
		Payments: models.Schedule{
			{Date: civil.Date{Year: 2021, Month: time.January, Day: 1}, Amount: -1000},
			{Date: civil.Date{Year: 2022, Month: time.January, Day: 1}, Amount: 1100},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, m.ScheduleStore().SaveSchedule(ctx, saved))
	require.NoError(t, m.Close())

	m, err = NewManager(logger, cfg)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.ScheduleStore().GetSchedule(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "bond", got.Name)
	assert.Equal(t, saved.Payments, got.Payments)
}
