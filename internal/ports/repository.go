package ports

import (
	"context"
	"time"

	"tempo/internal/domain"
)

// ActivityReader reads the activity tree
type ActivityReader interface {
	Descendants(ctx context.Context, id uint) ([]uint, error)
	Get(ctx context.Context, id uint) (*domain.Activity, error)
	Hierarchy(ctx context.Context) ([]*domain.ActivityNode, error)
}

// ActivityWriter creates, renames, and deletes activities. Delete cascades
// over the whole descendant subtree, including ledger and habit rows, as one
// atomic operation.
type ActivityWriter interface {
	Add(ctx context.Context, name string, parentID *uint) (uint, error)
	Delete(ctx context.Context, id uint) error
	Rename(ctx context.Context, id uint, newName string) error
}

// EntryLedger appends and manages persisted time entries
type EntryLedger interface {
	Append(ctx context.Context, entry domain.TimeEntry) error
	DeleteEntry(ctx context.Context, id uint) error
	EntriesForActivity(ctx context.Context, activityID uint) ([]domain.TimeEntry, error)
	UpdateEntry(ctx context.Context, id uint, duration *int64, timestamp *time.Time, entryType *domain.EntryType) error
}

// EntryAggregator computes ledger statistics
type EntryAggregator interface {
	AverageDuration(ctx context.Context, activityID uint) (float64, error)
	AverageSessionComposition(ctx context.Context, activityID uint) (domain.SessionComposition, error)
	EntriesForDate(ctx context.Context, day time.Time) ([]domain.DailyEntry, error)
	EntryCount(ctx context.Context, activityID uint) (int64, error)
	TotalForBranch(ctx context.Context, activityID uint) (int64, error)
}

// HabitStore reads and writes habit configuration and daily habit logs
type HabitStore interface {
	ClearHabitLog(ctx context.Context, activityID uint, date string) error
	HabitConfig(ctx context.Context, activityID uint) (*domain.HabitConfig, error)
	HabitLog(ctx context.Context, activityID uint, date string) (*float64, error)
	HabitLogsForRange(ctx context.Context, activityID uint, startDate, endDate string) ([]domain.HabitLog, error)
	Habits(ctx context.Context) ([]domain.Habit, error)
	LogHabit(ctx context.Context, activityID uint, date string, value float64) error
	ReorderHabits(ctx context.Context, orderedIDs []uint) error
	SetHabitConfig(ctx context.Context, activityID uint, cfg *domain.HabitConfig) error
}

// Repository is the composite interface backed by the SQLite store
type Repository interface {
	ActivityReader
	ActivityWriter
	EntryAggregator
	EntryLedger
	HabitStore
	Close() error
}
