package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// HabitService manages habit configuration and completion logging. It also
// implements the completion bridge the tracking engine fires when a session
// ends.
type HabitService struct {
	clock ports.Clock
	store ports.HabitStore
}

var _ ports.CompletionBridge = (*HabitService)(nil)

// NewHabitService creates a habit service
func NewHabitService(store ports.HabitStore, clock ports.Clock) *HabitService {
	return &HabitService{clock: clock, store: store}
}

// Habits lists all habit-enabled activities in display order
func (s *HabitService) Habits(ctx context.Context) ([]domain.Habit, error) {
	return s.store.Habits(ctx)
}

// Configure marks an activity as a habit or updates its habit settings.
// Passing nil clears the habit configuration without touching past logs.
func (s *HabitService) Configure(ctx context.Context, activityID uint, cfg *domain.HabitConfig) error {
	if cfg != nil && !cfg.Type.Valid() {
		return fmt.Errorf("%w: unknown habit type %q", domain.ErrValidation, cfg.Type)
	}
	if err := s.store.SetHabitConfig(ctx, activityID, cfg); err != nil {
		return err
	}

	logging.Logger.Info("habit configuration updated", "activity_id", activityID, "enabled", cfg != nil)
	return nil
}

// LogInstance records one habit completion instance for a date and returns
// the day's new total. Instances combine with any existing value for the
// date: binary habits saturate at done, percentage habits cap at 100,
// numeric habits add up.
func (s *HabitService) LogInstance(ctx context.Context, activityID uint, date string, value float64) (float64, error) {
	cfg, err := s.store.HabitConfig(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if cfg == nil {
		return 0, fmt.Errorf("%w: activity %d is not a habit", domain.ErrValidation, activityID)
	}

	var base float64
	if existing, err := s.store.HabitLog(ctx, activityID, date); err != nil {
		return 0, err
	} else if existing != nil {
		base = *existing
	}

	var total float64
	switch cfg.Type {
	case domain.HabitBinary:
		total = 1
	case domain.HabitPercentage:
		total = math.Min(100, base+value)
	case domain.HabitNumeric:
		total = base + value
	default:
		return 0, fmt.Errorf("%w: unknown habit type %q", domain.ErrValidation, cfg.Type)
	}

	if err := s.store.LogHabit(ctx, activityID, date, total); err != nil {
		return 0, err
	}

	logging.Logger.Info("habit logged", "activity_id", activityID, "date", date, "value", total)
	return total, nil
}

// ClearLog removes the habit value recorded for a date
func (s *HabitService) ClearLog(ctx context.Context, activityID uint, date string) error {
	return s.store.ClearHabitLog(ctx, activityID, date)
}

// MonthLogs returns all habit values recorded in a calendar month
func (s *HabitService) MonthLogs(ctx context.Context, activityID uint, year int, month time.Month) ([]domain.HabitLog, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.store.HabitLogsForRange(ctx, activityID, first.Format(domain.DateLayout), last.Format(domain.DateLayout))
}

// Reorder persists a new display order for the given habit activities
func (s *HabitService) Reorder(ctx context.Context, activityIDs []uint) error {
	return s.store.ReorderHabits(ctx, activityIDs)
}

// MaybeLogHabit records a habit completion for today when a tracking session
// with persisted work ends on a habit-enabled activity. Failures are logged
// and swallowed so habit plumbing can never break session bookkeeping.
func (s *HabitService) MaybeLogHabit(ctx context.Context, activityID uint, finalWorkSeconds int64) {
	if finalWorkSeconds < 1 {
		return
	}

	cfg, err := s.store.HabitConfig(ctx, activityID)
	if err != nil {
		logging.Logger.Error("habit bridge failed to load config", "activity_id", activityID, "error", err)
		return
	}
	if cfg == nil {
		return
	}

	value, ok := sessionInstanceValue(*cfg, finalWorkSeconds)
	if !ok {
		logging.Logger.Debug("habit bridge skipped, no automatic value for habit type",
			"activity_id", activityID, "type", cfg.Type, "unit", cfg.Unit)
		return
	}

	date := s.clock.Now().UTC().Format(domain.DateLayout)
	if _, err := s.LogInstance(ctx, activityID, date, value); err != nil {
		logging.Logger.Error("habit bridge failed to log completion",
			"activity_id", activityID, "date", date, "error", err)
	}
}

// sessionInstanceValue derives the instance value a finished session
// contributes. Binary habits are simply done; numeric habits with a time
// unit convert the session's work duration; anything else has no automatic
// value and needs an explicit log.
func sessionInstanceValue(cfg domain.HabitConfig, workSeconds int64) (float64, bool) {
	switch cfg.Type {
	case domain.HabitBinary:
		return 1, true
	case domain.HabitNumeric:
		switch strings.ToLower(strings.TrimSpace(cfg.Unit)) {
		case "s", "sec", "secs", "second", "seconds":
			return float64(workSeconds), true
		case "m", "min", "mins", "minute", "minutes":
			return math.Round(float64(workSeconds)/60*100) / 100, true
		case "h", "hr", "hrs", "hour", "hours":
			return math.Round(float64(workSeconds)/3600*100) / 100, true
		}
	}
	return 0, false
}
