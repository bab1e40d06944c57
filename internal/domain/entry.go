package domain

import "time"

// EntryType distinguishes work intervals from break intervals
type EntryType string

const (
	EntryWork  EntryType = "work"
	EntryBreak EntryType = "break"
)

// Valid reports whether t is a known entry type
func (t EntryType) Valid() bool {
	return t == EntryWork || t == EntryBreak
}

// TimeEntry is a single persisted record of a bounded duration of work or
// break time for one activity. Timestamp is always UTC. SessionID, when
// present, is the unix-seconds instant at which the owning tracking session
// began; entries sharing a SessionID belong to one continuous session.
type TimeEntry struct {
	ActivityID      uint
	DurationSeconds int64
	ID              uint
	SessionID       *int64
	Timestamp       time.Time
	Type            EntryType
}

// DailyEntry is a TimeEntry joined with its activity name, as returned by
// date-scoped queries.
type DailyEntry struct {
	ActivityID      uint
	ActivityName    string
	DurationSeconds int64
	EntryID         uint
	SessionID       *int64
	Timestamp       time.Time
	Type            EntryType
}

// SessionComposition holds per-session averages for one activity: mean work,
// mean break, and mean total duration across all sessions that accumulated
// any time at all. All zeros when no such session exists.
type SessionComposition struct {
	AvgBreakSeconds float64
	AvgTotalSeconds float64
	AvgWorkSeconds  float64
}
