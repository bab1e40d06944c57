package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/domain"
)

type rangeQuery struct {
	activityID uint
	end        string
	start      string
}

// fakeHabitStore keeps configs and logs in memory
type fakeHabitStore struct {
	configs    map[uint]*domain.HabitConfig
	logs       map[uint]map[string]float64
	rangeCalls []rangeQuery
	reordered  []uint
}

func newFakeHabitStore() *fakeHabitStore {
	return &fakeHabitStore{
		configs: map[uint]*domain.HabitConfig{},
		logs:    map[uint]map[string]float64{},
	}
}

func (f *fakeHabitStore) HabitConfig(_ context.Context, id uint) (*domain.HabitConfig, error) {
	return f.configs[id], nil
}

func (f *fakeHabitStore) SetHabitConfig(_ context.Context, id uint, cfg *domain.HabitConfig) error {
	f.configs[id] = cfg
	return nil
}

func (f *fakeHabitStore) Habits(context.Context) ([]domain.Habit, error) { return nil, nil }

func (f *fakeHabitStore) LogHabit(_ context.Context, id uint, date string, value float64) error {
	if f.logs[id] == nil {
		f.logs[id] = map[string]float64{}
	}
	f.logs[id][date] = value
	return nil
}

func (f *fakeHabitStore) ClearHabitLog(_ context.Context, id uint, date string) error {
	delete(f.logs[id], date)
	return nil
}

func (f *fakeHabitStore) HabitLog(_ context.Context, id uint, date string) (*float64, error) {
	value, ok := f.logs[id][date]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

func (f *fakeHabitStore) HabitLogsForRange(_ context.Context, id uint, start, end string) ([]domain.HabitLog, error) {
	f.rangeCalls = append(f.rangeCalls, rangeQuery{activityID: id, end: end, start: start})
	return nil, nil
}

func (f *fakeHabitStore) ReorderHabits(_ context.Context, ids []uint) error {
	f.reordered = ids
	return nil
}

const testDate = "2026-09-01"

func TestLogInstance_BinarySaturatesAtDone(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitBinary}
	svc := NewHabitService(store, newFakeClock())

	total, err := svc.LogInstance(context.Background(), 1, testDate, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, total)

	total, err = svc.LogInstance(context.Background(), 1, testDate, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, total)
}

func TestLogInstance_PercentageCapsAtHundred(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitPercentage}
	svc := NewHabitService(store, newFakeClock())

	total, err := svc.LogInstance(context.Background(), 1, testDate, 80)
	require.NoError(t, err)
	assert.Equal(t, 80.0, total)

	total, err = svc.LogInstance(context.Background(), 1, testDate, 30)
	require.NoError(t, err)
	assert.Equal(t, 100.0, total)
}

func TestLogInstance_NumericAccumulates(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitNumeric, Unit: "pages"}
	svc := NewHabitService(store, newFakeClock())

	total, err := svc.LogInstance(context.Background(), 1, testDate, 20)
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)

	total, err = svc.LogInstance(context.Background(), 1, testDate, 15)
	require.NoError(t, err)
	assert.Equal(t, 35.0, total)
}

func TestLogInstance_NotAHabit(t *testing.T) {
	store := newFakeHabitStore()
	svc := NewHabitService(store, newFakeClock())

	_, err := svc.LogInstance(context.Background(), 1, testDate, 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMaybeLogHabit_BinaryMarksToday(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitBinary}
	clock := newFakeClock()
	svc := NewHabitService(store, clock)

	svc.MaybeLogHabit(context.Background(), 1, 1500)

	today := clock.Now().UTC().Format(domain.DateLayout)
	assert.Equal(t, 1.0, store.logs[1][today])
}

func TestMaybeLogHabit_NumericMinutesConvertsWork(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitNumeric, Unit: "minutes"}
	clock := newFakeClock()
	svc := NewHabitService(store, clock)

	svc.MaybeLogHabit(context.Background(), 1, 1800)

	today := clock.Now().UTC().Format(domain.DateLayout)
	assert.Equal(t, 30.0, store.logs[1][today])
}

func TestMaybeLogHabit_NumericHoursConvertsWork(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitNumeric, Unit: "hours"}
	clock := newFakeClock()
	svc := NewHabitService(store, clock)

	svc.MaybeLogHabit(context.Background(), 1, 5400)

	today := clock.Now().UTC().Format(domain.DateLayout)
	assert.Equal(t, 1.5, store.logs[1][today])
}

func TestMaybeLogHabit_PercentageNeedsExplicitValue(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitPercentage}
	svc := NewHabitService(store, newFakeClock())

	svc.MaybeLogHabit(context.Background(), 1, 1500)

	assert.Empty(t, store.logs[1])
}

func TestMaybeLogHabit_UnitlessNumericSkipped(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitNumeric, Unit: "pages"}
	svc := NewHabitService(store, newFakeClock())

	svc.MaybeLogHabit(context.Background(), 1, 1500)

	assert.Empty(t, store.logs[1])
}

func TestMaybeLogHabit_NoWorkSkipped(t *testing.T) {
	store := newFakeHabitStore()
	store.configs[1] = &domain.HabitConfig{Type: domain.HabitBinary}
	svc := NewHabitService(store, newFakeClock())

	svc.MaybeLogHabit(context.Background(), 1, 0)

	assert.Empty(t, store.logs[1])
}

func TestMaybeLogHabit_NotAHabitSkipped(t *testing.T) {
	store := newFakeHabitStore()
	svc := NewHabitService(store, newFakeClock())

	svc.MaybeLogHabit(context.Background(), 1, 1500)

	assert.Empty(t, store.logs)
}

func TestConfigure_RejectsUnknownType(t *testing.T) {
	store := newFakeHabitStore()
	svc := NewHabitService(store, newFakeClock())

	err := svc.Configure(context.Background(), 1, &domain.HabitConfig{Type: "weekly"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMonthLogs_CoversWholeCalendarMonth(t *testing.T) {
	store := newFakeHabitStore()
	svc := NewHabitService(store, newFakeClock())

	_, err := svc.MonthLogs(context.Background(), 1, 2026, 2)
	require.NoError(t, err)

	require.Len(t, store.rangeCalls, 1)
	assert.Equal(t, uint(1), store.rangeCalls[0].activityID)
	assert.Equal(t, "2026-02-01", store.rangeCalls[0].start)
	assert.Equal(t, "2026-02-28", store.rangeCalls[0].end)
}
