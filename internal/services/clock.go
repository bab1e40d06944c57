package services

import (
	"time"

	"tempo/internal/ports"
)

// systemClock implements ports.Clock with wall-clock time
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the production clock
func NewSystemClock() ports.Clock {
	return systemClock{}
}
