package ports

import "time"

// Clock provides the current instant. The session engine derives all
// durations from wall-clock deltas through this interface so tests can
// advance time deterministically.
type Clock interface {
	Now() time.Time
}
