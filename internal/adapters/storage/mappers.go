package storage

import (
	"tempo/internal/domain"
)

// activityModelToDomain converts an ActivityModel (GORM) to domain.Activity
func activityModelToDomain(m ActivityModel) domain.Activity {
	return domain.Activity{
		Habit:    habitConfigFromModel(m),
		ID:       m.ID,
		Name:     m.Name,
		ParentID: m.ParentID,
	}
}

// habitConfigFromModel extracts the habit configuration from an activity
// row, or nil when the activity is not configured as a habit
func habitConfigFromModel(m ActivityModel) *domain.HabitConfig {
	if m.HabitType == nil {
		return nil
	}
	cfg := &domain.HabitConfig{
		Goal: m.HabitGoal,
		Type: domain.HabitType(*m.HabitType),
	}
	if m.HabitUnit != nil {
		cfg.Unit = *m.HabitUnit
	}
	return cfg
}

// timeEntryModelToDomain converts a TimeEntryModel (GORM) to domain.TimeEntry
func timeEntryModelToDomain(m TimeEntryModel) domain.TimeEntry {
	return domain.TimeEntry{
		ActivityID:      m.ActivityID,
		DurationSeconds: m.DurationSeconds,
		ID:              m.ID,
		SessionID:       m.SessionID,
		Timestamp:       m.Timestamp.UTC(),
		Type:            domain.EntryType(m.EntryType),
	}
}

// domainToTimeEntryModel converts a domain.TimeEntry to TimeEntryModel (GORM)
func domainToTimeEntryModel(e domain.TimeEntry) TimeEntryModel {
	return TimeEntryModel{
		ActivityID:      e.ActivityID,
		DurationSeconds: e.DurationSeconds,
		EntryType:       string(e.Type),
		SessionID:       e.SessionID,
		Timestamp:       e.Timestamp.UTC(),
	}
}
