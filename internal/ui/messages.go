package ui

import (
	"time"

	"tempo/internal/domain"
)

// tickMsg drives the once-per-second refresh of active timers
type tickMsg time.Time

// activitiesLoadedMsg delivers a freshly loaded activity tree
type activitiesLoadedMsg struct {
	tree []*domain.ActivityNode
}

// errMsg surfaces an operation failure in the status line
type errMsg struct {
	err error
}
