package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/domain"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeActivities serves a fixed set of activities
type fakeActivities struct {
	activities map[uint]string
}

func (f *fakeActivities) Get(_ context.Context, id uint) (*domain.Activity, error) {
	name, ok := f.activities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Activity{ID: id, Name: name}, nil
}

func (f *fakeActivities) Hierarchy(context.Context) ([]*domain.ActivityNode, error) {
	return nil, nil
}

func (f *fakeActivities) Descendants(_ context.Context, id uint) ([]uint, error) {
	return []uint{id}, nil
}

// fakeLedger records appended entries and can be told to fail
type fakeLedger struct {
	appendErr error
	entries   []domain.TimeEntry
}

func (f *fakeLedger) Append(_ context.Context, entry domain.TimeEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLedger) DeleteEntry(context.Context, uint) error { return nil }

func (f *fakeLedger) EntriesForActivity(context.Context, uint) ([]domain.TimeEntry, error) {
	return nil, nil
}

func (f *fakeLedger) UpdateEntry(context.Context, uint, *int64, *time.Time, *domain.EntryType) error {
	return nil
}

// fakeStats returns a fixed average duration per activity
type fakeStats struct {
	averages map[uint]float64
}

func (f *fakeStats) AverageDuration(_ context.Context, id uint) (float64, error) {
	return f.averages[id], nil
}

func (f *fakeStats) AverageSessionComposition(context.Context, uint) (domain.SessionComposition, error) {
	return domain.SessionComposition{}, nil
}

func (f *fakeStats) EntriesForDate(context.Context, time.Time) ([]domain.DailyEntry, error) {
	return nil, nil
}

func (f *fakeStats) EntryCount(context.Context, uint) (int64, error) { return 0, nil }

func (f *fakeStats) TotalForBranch(context.Context, uint) (int64, error) { return 0, nil }

// fakeBridge records completion notifications
type bridgeCall struct {
	activityID  uint
	workSeconds int64
}

type fakeBridge struct {
	calls []bridgeCall
}

func (f *fakeBridge) MaybeLogHabit(_ context.Context, activityID uint, finalWorkSeconds int64) {
	f.calls = append(f.calls, bridgeCall{activityID: activityID, workSeconds: finalWorkSeconds})
}

type engineFixture struct {
	bridge *fakeBridge
	clock  *fakeClock
	engine *Engine
	ledger *fakeLedger
	stats  *fakeStats
}

func newEngineFixture() *engineFixture {
	clock := newFakeClock()
	ledger := &fakeLedger{}
	stats := &fakeStats{averages: map[uint]float64{}}
	bridge := &fakeBridge{}
	activities := &fakeActivities{activities: map[uint]string{1: "Deep Work", 2: "Reading"}}
	return &engineFixture{
		bridge: bridge,
		clock:  clock,
		engine: NewEngine(activities, ledger, stats, bridge, clock),
		ledger: ledger,
		stats:  stats,
	}
}

func TestStart_UnknownActivity(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.Start(context.Background(), 99, domain.ModeWork)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.engine.ActiveCount())
}

func TestStart_DuplicateActivityRejected(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	err := f.engine.Start(ctx, 1, domain.ModeWork)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.engine.ActiveCount())
}

func TestStart_ModeMixingRejected(t *testing.T) {
	f := newEngineFixture()
	f.stats.averages[2] = 600
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	err := f.engine.Start(ctx, 2, domain.ModeCountdown)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.engine.ActiveCount())
}

func TestStart_SecondTaskSameModeAllowed(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	require.NoError(t, f.engine.Start(ctx, 2, domain.ModeWork))

	assert.Equal(t, 2, f.engine.ActiveCount())
	mode, ok := f.engine.ActiveMode()
	require.True(t, ok)
	assert.Equal(t, domain.ModeWork, mode)
}

func TestStart_CountdownRequiresHistory(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.Start(context.Background(), 1, domain.ModeCountdown)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, f.engine.ActiveCount())
}

func TestPauseResume_PersistsIntervalsWithSharedSession(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	sessionID := f.clock.Now().Unix()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(10 * time.Second)
	require.NoError(t, f.engine.Pause(ctx, 1))
	f.clock.advance(5 * time.Second)
	require.NoError(t, f.engine.Resume(ctx, 1))

	require.Len(t, f.ledger.entries, 2)

	work := f.ledger.entries[0]
	assert.Equal(t, uint(1), work.ActivityID)
	assert.Equal(t, domain.EntryWork, work.Type)
	assert.Equal(t, int64(10), work.DurationSeconds)
	require.NotNil(t, work.SessionID)
	assert.Equal(t, sessionID, *work.SessionID)

	brk := f.ledger.entries[1]
	assert.Equal(t, domain.EntryBreak, brk.Type)
	assert.Equal(t, int64(5), brk.DurationSeconds)
	require.NotNil(t, brk.SessionID)
	assert.Equal(t, sessionID, *brk.SessionID)
}

func TestPause_WhenAlreadyPausedIsNoOp(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(3 * time.Second)
	require.NoError(t, f.engine.Pause(ctx, 1))
	f.clock.advance(3 * time.Second)

	require.NoError(t, f.engine.Pause(ctx, 1))

	assert.Len(t, f.ledger.entries, 1)
	status, ok := f.engine.Task(1)
	require.True(t, ok)
	assert.Equal(t, domain.StatePaused, status.State)
}

func TestPause_InactiveActivity(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.Pause(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubSecondTails_AccumulateWithoutPersisting(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(900 * time.Millisecond)
	require.NoError(t, f.engine.Pause(ctx, 1))
	f.clock.advance(400 * time.Millisecond)
	require.NoError(t, f.engine.Resume(ctx, 1))
	f.clock.advance(600 * time.Millisecond)

	require.NoError(t, f.engine.End(ctx, 1, true))

	// every interval was under a second, so nothing reached the ledger
	assert.Empty(t, f.ledger.entries)

	// but the accumulated work (900ms + 600ms) still drove the bridge
	require.Len(t, f.bridge.calls, 1)
	assert.Equal(t, int64(1), f.bridge.calls[0].workSeconds)
}

func TestTick_ReportsRunningTotals(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(3 * time.Second)

	statuses := f.engine.Tick()

	require.Len(t, statuses, 1)
	assert.Equal(t, 3*time.Second, statuses[0].TotalWork)
	assert.Equal(t, time.Duration(0), statuses[0].TotalBreak)
	assert.Equal(t, domain.StateTracking, statuses[0].State)
}

func TestTick_SortsByActivityName(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 2, domain.ModeWork)) // Reading
	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork)) // Deep Work

	statuses := f.engine.Tick()

	require.Len(t, statuses, 2)
	assert.Equal(t, "Deep Work", statuses[0].ActivityName)
	assert.Equal(t, "Reading", statuses[1].ActivityName)
}

func TestCountdown_OverrunKeepsCounting(t *testing.T) {
	f := newEngineFixture()
	f.stats.averages[1] = 750
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeCountdown))
	f.clock.advance(800 * time.Second)

	statuses := f.engine.Tick()
	require.Len(t, statuses, 1)
	assert.Equal(t, -50*time.Second, statuses[0].Remaining)
	assert.True(t, statuses[0].Overrun)
	assert.Equal(t, 50*time.Second, statuses[0].OverrunBy)

	// ending records the full elapsed time, overrun included
	require.NoError(t, f.engine.End(ctx, 1, true))
	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, int64(800), f.ledger.entries[0].DurationSeconds)
	assert.Equal(t, domain.EntryWork, f.ledger.entries[0].Type)
}

func TestCountdown_RemainingWhileUnderTarget(t *testing.T) {
	f := newEngineFixture()
	f.stats.averages[1] = 600
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeCountdown))
	f.clock.advance(100 * time.Second)

	statuses := f.engine.Tick()
	require.Len(t, statuses, 1)
	assert.Equal(t, 500*time.Second, statuses[0].Remaining)
	assert.False(t, statuses[0].Overrun)
}

func TestEnd_PersistBridgesFinalWorkTotal(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(100 * time.Second)
	require.NoError(t, f.engine.Pause(ctx, 1))
	f.clock.advance(30 * time.Second)
	require.NoError(t, f.engine.Resume(ctx, 1))
	f.clock.advance(20 * time.Second)

	require.NoError(t, f.engine.End(ctx, 1, true))

	require.Len(t, f.ledger.entries, 3)
	require.Len(t, f.bridge.calls, 1)
	assert.Equal(t, uint(1), f.bridge.calls[0].activityID)
	assert.Equal(t, int64(120), f.bridge.calls[0].workSeconds)
	assert.Equal(t, 0, f.engine.ActiveCount())
}

func TestEnd_DiscardSkipsLedgerAndBridge(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(90 * time.Second)

	require.NoError(t, f.engine.End(ctx, 1, false))

	assert.Empty(t, f.ledger.entries)
	assert.Empty(t, f.bridge.calls)
	assert.Equal(t, 0, f.engine.ActiveCount())
}

func TestEnd_WhilePausedPersistsBreakTail(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(60 * time.Second)
	require.NoError(t, f.engine.Pause(ctx, 1))
	f.clock.advance(15 * time.Second)

	require.NoError(t, f.engine.End(ctx, 1, true))

	require.Len(t, f.ledger.entries, 2)
	assert.Equal(t, domain.EntryBreak, f.ledger.entries[1].Type)
	assert.Equal(t, int64(15), f.ledger.entries[1].DurationSeconds)

	require.Len(t, f.bridge.calls, 1)
	assert.Equal(t, int64(60), f.bridge.calls[0].workSeconds)
}

func TestEnd_InactiveActivity(t *testing.T) {
	f := newEngineFixture()

	err := f.engine.End(context.Background(), 1, true)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerFailure_ReportedButStateTransitionHolds(t *testing.T) {
	f := newEngineFixture()
	f.ledger.appendErr = errors.New("disk full")
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(10 * time.Second)

	err := f.engine.Pause(ctx, 1)
	require.Error(t, err)

	// the task is paused despite the failed write, and the elapsed time
	// survives in the accumulator
	status, ok := f.engine.Task(1)
	require.True(t, ok)
	assert.Equal(t, domain.StatePaused, status.State)
	assert.Equal(t, 10*time.Second, status.TotalWork)
}

func TestLedgerFailure_OnEndStillRemovesTask(t *testing.T) {
	f := newEngineFixture()
	f.ledger.appendErr = errors.New("disk full")
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(10 * time.Second)

	err := f.engine.End(ctx, 1, true)

	require.Error(t, err)
	assert.Equal(t, 0, f.engine.ActiveCount())
}

func TestSessionID_DiffersAcrossSessions(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(5 * time.Second)
	require.NoError(t, f.engine.End(ctx, 1, true))

	f.clock.advance(60 * time.Second)
	require.NoError(t, f.engine.Start(ctx, 1, domain.ModeWork))
	f.clock.advance(5 * time.Second)
	require.NoError(t, f.engine.End(ctx, 1, true))

	require.Len(t, f.ledger.entries, 2)
	require.NotNil(t, f.ledger.entries[0].SessionID)
	require.NotNil(t, f.ledger.entries[1].SessionID)
	assert.NotEqual(t, *f.ledger.entries[0].SessionID, *f.ledger.entries[1].SessionID)
}
