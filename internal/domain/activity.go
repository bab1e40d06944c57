package domain

import (
	"fmt"
	"strings"
)

// Activity is a named node in the activity tree (domain entity).
// ParentID is nil for root activities.
type Activity struct {
	Habit    *HabitConfig
	ID       uint
	Name     string
	ParentID *uint
}

// ActivityNode is an Activity with its children resolved, used for
// hierarchy snapshots. Children are sorted by name at every level.
type ActivityNode struct {
	Activity
	Children []*ActivityNode
}

// NormalizeActivityName trims surrounding whitespace and rejects empty names
func NormalizeActivityName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: activity name is empty", ErrValidation)
	}
	return trimmed, nil
}
