package badger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bobmcallan/xirr/internal/common"
	"github.com/bobmcallan/xirr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

func newTestStore(t *testing.T) *ScheduleStore {
	t.Helper()
	store, err := Open(testLogger(), filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testSchedule(id, name string, created time.Time) *models.SavedSchedule {
	return &models.SavedSchedule{
		ID:   id,
		Name: name,
		Payments: models.Schedule{
			{Date: civil.Date{Year: 2020, Month: time.January, Day: 1}, Amount: -1000},
			{Date: civil.Date{Year: 2020, Month: time.April, Day: 1}, Amount: 200},
			{Date: civil.Date{Year: 2021, Month: time.January, Day: 1}, Amount: 900.5},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// --- Open / Close ---

func TestOpen_ReopenKeepsSchedules(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "badger")

	store, err := Open(testLogger(), dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveSchedule(ctx, testSchedule("a1", "fund", time.Now())))
	require.NoError(t, store.Close())

	store, err = Open(testLogger(), dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetSchedule(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "fund", got.Name)
}

func TestClose_NeverOpened(t *testing.T) {
	store := &ScheduleStore{}
	assert.NoError(t, store.Close())
}

// --- Schedule operations ---

func TestScheduleStorage_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSchedule(ctx, testSchedule("a1", "fund", created)))

	got, err := s.GetSchedule(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "fund", got.Name)
	require.Len(t, got.Payments, 3)
	assert.Equal(t, civil.Date{Year: 2020, Month: time.April, Day: 1}, got.Payments[1].Date)
	assert.Equal(t, 900.5, got.Payments[2].Amount)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestScheduleStorage_Upsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSchedule(ctx, testSchedule("a1", "first", created)))
	require.NoError(t, s.SaveSchedule(ctx, testSchedule("a1", "second", created)))

	got, err := s.GetSchedule(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)

	all, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestScheduleStorage_MissingID(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveSchedule(context.Background(), testSchedule("", "x", time.Now()))
	assert.Error(t, err)
}

func TestScheduleStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetSchedule(ctx, "nope")
	assert.True(t, errors.Is(err, models.ErrScheduleNotFound), "got %v", err)

	err = s.DeleteSchedule(ctx, "nope")
	assert.True(t, errors.Is(err, models.ErrScheduleNotFound), "got %v", err)
}

func TestScheduleStorage_ListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSchedule(ctx, testSchedule("c", "third", base.Add(2*time.Hour))))
	require.NoError(t, s.SaveSchedule(ctx, testSchedule("a", "first", base)))
	require.NoError(t, s.SaveSchedule(ctx, testSchedule("b", "second", base.Add(time.Hour))))

	all, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{all[0].Name, all[1].Name, all[2].Name})

	require.NoError(t, s.DeleteSchedule(ctx, "b"))
	all, err = s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.GetSchedule(ctx, "b")
	assert.ErrorIs(t, err, models.ErrScheduleNotFound)
}

func TestScheduleStorage_Empty(t *testing.T) {
	s := newTestStore(t)
	all, err := s.ListSchedules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
