package domain

// DateLayout is the canonical format for habit log dates
const DateLayout = "2006-01-02"

// HabitType is the kind of daily value a habit records
type HabitType string

const (
	HabitBinary     HabitType = "binary"
	HabitPercentage HabitType = "percentage"
	HabitNumeric    HabitType = "numeric"
)

// Valid reports whether t is a known habit type
func (t HabitType) Valid() bool {
	switch t {
	case HabitBinary, HabitPercentage, HabitNumeric:
		return true
	}
	return false
}

// HabitConfig is the habit configuration attached to an activity.
// Unit and Goal are meaningful for numeric habits only.
type HabitConfig struct {
	Goal *float64
	Type HabitType
	Unit string
}

// Habit is a configured habit with its activity identity and display order
type Habit struct {
	ActivityID uint
	Config     HabitConfig
	Name       string
	SortOrder  int
}

// HabitLog is one day's accumulated value for a habit
type HabitLog struct {
	ActivityID uint
	Date       string
	Value      float64
}
