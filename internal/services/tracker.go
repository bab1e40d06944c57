package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// TrackingTask is the in-memory state of one active tracking session. It
// exists only between Start and End; its persisted footprint is the set of
// time entries sharing its session id.
type TrackingTask struct {
	ActivityID   uint
	ActivityName string
	Mode         domain.TrackMode
	SessionID    int64
	State        domain.TrackState

	accumulatedBreak time.Duration
	accumulatedWork  time.Duration
	countdownTarget  time.Duration
	intervalStart    time.Time
}

// TaskStatus is the display snapshot of one task produced by Tick. Remaining
// is left unclamped (negative while in overrun); clamping is a presentation
// concern and never touches persisted data.
type TaskStatus struct {
	ActivityID      uint
	ActivityName    string
	CurrentInterval time.Duration
	Mode            domain.TrackMode
	Overrun         bool
	OverrunBy       time.Duration
	Remaining       time.Duration
	SessionID       int64
	State           domain.TrackState
	TotalBreak      time.Duration
	TotalWork       time.Duration
}

// Engine owns all active tracking tasks, one per activity, and turns
// start/pause/resume/end commands into ledger writes. All concurrently
// active tasks share one mode: either all plain work timers or all
// countdowns.
type Engine struct {
	activities ports.ActivityReader
	bridge     ports.CompletionBridge
	clock      ports.Clock
	ledger     ports.EntryLedger
	mu         sync.Mutex
	stats      ports.EntryAggregator
	tasks      map[uint]*TrackingTask
}

// NewEngine creates a session engine
func NewEngine(activities ports.ActivityReader, ledger ports.EntryLedger, stats ports.EntryAggregator, bridge ports.CompletionBridge, clock ports.Clock) *Engine {
	return &Engine{
		activities: activities,
		bridge:     bridge,
		clock:      clock,
		ledger:     ledger,
		stats:      stats,
		tasks:      make(map[uint]*TrackingTask),
	}
}

// Start begins tracking an activity. Countdown tasks capture their target
// from the activity's historical average duration once, at start; an
// activity with no history cannot start a countdown.
func (e *Engine) Start(ctx context.Context, activityID uint, mode domain.TrackMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.tasks[activityID]; exists {
		return fmt.Errorf("%w: activity %d is already being tracked", domain.ErrConflict, activityID)
	}
	for _, task := range e.tasks {
		if task.Mode != mode {
			return fmt.Errorf("%w: cannot mix %s and %s timers", domain.ErrConflict, mode, task.Mode)
		}
	}

	activity, err := e.activities.Get(ctx, activityID)
	if err != nil {
		return err
	}

	var target time.Duration
	if mode == domain.ModeCountdown {
		avg, err := e.stats.AverageDuration(ctx, activityID)
		if err != nil {
			return err
		}
		if avg <= 0 {
			return fmt.Errorf("%w: activity %q has no recorded history to size a countdown", domain.ErrValidation, activity.Name)
		}
		target = time.Duration(avg * float64(time.Second))
	}

	now := e.clock.Now()
	e.tasks[activityID] = &TrackingTask{
		ActivityID:      activityID,
		ActivityName:    activity.Name,
		Mode:            mode,
		SessionID:       now.Unix(),
		State:           domain.StateTracking,
		countdownTarget: target,
		intervalStart:   now,
	}

	logging.Logger.Info("tracking started",
		"activity_id", activityID,
		"activity", activity.Name,
		"mode", mode,
		"session_id", now.Unix(),
		"countdown_target", target)
	return nil
}

// Pause closes the current work interval and starts a break interval. The
// elapsed time always lands in the in-memory work accumulator; only
// intervals of at least one second reach the ledger, so a failed ledger
// write loses a single row, never session totals.
func (e *Engine) Pause(ctx context.Context, activityID uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, ok := e.tasks[activityID]
	if !ok {
		logging.Logger.Warn("pause requested for inactive activity", "activity_id", activityID)
		return fmt.Errorf("%w: no active task for activity %d", domain.ErrNotFound, activityID)
	}
	if task.State != domain.StateTracking {
		logging.Logger.Warn("pause requested but task is not tracking",
			"activity_id", activityID, "state", task.State)
		return nil
	}

	now := e.clock.Now()
	elapsed := now.Sub(task.intervalStart)
	task.accumulatedWork += elapsed
	task.State = domain.StatePaused
	task.intervalStart = now

	return e.persistInterval(ctx, task, elapsed, domain.EntryWork, now)
}

// Resume closes the current break interval and starts a work interval
func (e *Engine) Resume(ctx context.Context, activityID uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, ok := e.tasks[activityID]
	if !ok {
		logging.Logger.Warn("resume requested for inactive activity", "activity_id", activityID)
		return fmt.Errorf("%w: no active task for activity %d", domain.ErrNotFound, activityID)
	}
	if task.State != domain.StatePaused {
		logging.Logger.Warn("resume requested but task is not paused",
			"activity_id", activityID, "state", task.State)
		return nil
	}

	now := e.clock.Now()
	elapsed := now.Sub(task.intervalStart)
	task.accumulatedBreak += elapsed
	task.State = domain.StateTracking
	task.intervalStart = now

	return e.persistInterval(ctx, task, elapsed, domain.EntryBreak, now)
}

// End removes the task. With persistFinalInterval the last open interval is
// folded into the matching accumulator and, when long enough, written to the
// ledger; the habit completion bridge then fires exactly once with the final
// work total.
func (e *Engine) End(ctx context.Context, activityID uint, persistFinalInterval bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, ok := e.tasks[activityID]
	if !ok {
		logging.Logger.Warn("end requested for inactive activity", "activity_id", activityID)
		return fmt.Errorf("%w: no active task for activity %d", domain.ErrNotFound, activityID)
	}
	delete(e.tasks, activityID)

	var persistErr error
	if persistFinalInterval {
		now := e.clock.Now()
		elapsed := now.Sub(task.intervalStart)

		entryType := domain.EntryWork
		if task.State == domain.StatePaused {
			entryType = domain.EntryBreak
			task.accumulatedBreak += elapsed
		} else {
			task.accumulatedWork += elapsed
		}

		persistErr = e.persistInterval(ctx, task, elapsed, entryType, now)

		if e.bridge != nil {
			e.bridge.MaybeLogHabit(ctx, activityID, int64(task.accumulatedWork/time.Second))
		}
	}

	logging.Logger.Info("tracking ended",
		"activity_id", activityID,
		"activity", task.ActivityName,
		"session_id", task.SessionID,
		"persisted", persistFinalInterval,
		"total_work", task.accumulatedWork,
		"total_break", task.accumulatedBreak)
	return persistErr
}

// persistInterval writes one closed interval to the ledger, silently
// dropping sub-second tails. Ledger failures are reported but the in-memory
// accumulators already hold the elapsed time.
func (e *Engine) persistInterval(ctx context.Context, task *TrackingTask, elapsed time.Duration, entryType domain.EntryType, at time.Time) error {
	seconds := int64(elapsed / time.Second)
	if seconds < 1 {
		return nil
	}

	sessionID := task.SessionID
	err := e.ledger.Append(ctx, domain.TimeEntry{
		ActivityID:      task.ActivityID,
		DurationSeconds: seconds,
		SessionID:       &sessionID,
		Timestamp:       at.UTC(),
		Type:            entryType,
	})
	if err != nil {
		logging.Logger.Error("failed to persist interval, session totals remain in memory",
			"activity_id", task.ActivityID,
			"session_id", task.SessionID,
			"entry_type", entryType,
			"duration_seconds", seconds,
			"error", err)
		return fmt.Errorf("persisting %s interval: %w", entryType, err)
	}
	return nil
}

// Tick recomputes display values for every active task. It is idempotent
// and never writes to the ledger.
func (e *Engine) Tick() []TaskStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	statuses := make([]TaskStatus, 0, len(e.tasks))
	for _, task := range e.tasks {
		statuses = append(statuses, task.statusAt(now))
	}

	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].ActivityName != statuses[j].ActivityName {
			return statuses[i].ActivityName < statuses[j].ActivityName
		}
		return statuses[i].ActivityID < statuses[j].ActivityID
	})
	return statuses
}

// Task returns the current display status for one activity
func (e *Engine) Task(activityID uint) (TaskStatus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, ok := e.tasks[activityID]
	if !ok {
		return TaskStatus{}, false
	}
	return task.statusAt(e.clock.Now()), true
}

// ActiveCount returns the number of active tasks
func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

// ActiveMode returns the mode shared by all active tasks, or false when
// nothing is active
func (e *Engine) ActiveMode() (domain.TrackMode, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, task := range e.tasks {
		return task.Mode, true
	}
	return "", false
}

func (t *TrackingTask) statusAt(now time.Time) TaskStatus {
	current := now.Sub(t.intervalStart)

	status := TaskStatus{
		ActivityID:      t.ActivityID,
		ActivityName:    t.ActivityName,
		CurrentInterval: current,
		Mode:            t.Mode,
		SessionID:       t.SessionID,
		State:           t.State,
		TotalBreak:      t.accumulatedBreak,
		TotalWork:       t.accumulatedWork,
	}
	if t.State == domain.StateTracking {
		status.TotalWork += current
	} else {
		status.TotalBreak += current
	}

	if t.Mode == domain.ModeCountdown {
		status.Remaining = t.countdownTarget - status.TotalWork
		if status.Remaining < 0 {
			status.Overrun = true
			status.OverrunBy = -status.Remaining
		}
	}
	return status
}
