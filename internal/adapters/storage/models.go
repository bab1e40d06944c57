package storage

import "time"

// ActivityModel is the GORM model for the activities table. Habit
// configuration lives on the activity row; all habit columns are NULL for
// activities that are not habits.
type ActivityModel struct {
	CreatedAt      time.Time
	HabitGoal      *float64 `gorm:"default:null"`
	HabitSortOrder *int     `gorm:"default:null"`
	HabitType      *string  `gorm:"default:null"`
	HabitUnit      *string  `gorm:"default:null"`
	ID             uint     `gorm:"primaryKey"`
	Name           string   `gorm:"not null;index:idx_activity_name"`
	ParentID       *uint    `gorm:"index:idx_activity_parent;default:null"`
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (ActivityModel) TableName() string { return "activities" }

// TimeEntryModel is the GORM model for the time_entries table. Timestamps
// are stored in UTC; SessionID is the unix-seconds start instant of the
// owning tracking session, NULL for manually added entries.
type TimeEntryModel struct {
	ActivityID      uint `gorm:"not null;index:idx_entry_activity"`
	CreatedAt       time.Time
	DurationSeconds int64     `gorm:"not null;check:duration_seconds > 0"`
	EntryType       string    `gorm:"not null;default:'work';check:entry_type IN ('work','break')"`
	ID              uint      `gorm:"primaryKey"`
	SessionID       *int64    `gorm:"index:idx_entry_session;default:null"`
	Timestamp       time.Time `gorm:"not null;index:idx_entry_timestamp"`
}

// TableName specifies the table name for GORM
func (TimeEntryModel) TableName() string { return "time_entries" }

// HabitLogModel is the GORM model for daily habit values, one row per
// activity per date
type HabitLogModel struct {
	ActivityID uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time
	LogDate    string `gorm:"primaryKey"`
	UpdatedAt  time.Time
	Value      float64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (HabitLogModel) TableName() string { return "habit_logs" }
