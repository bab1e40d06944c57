package domain

// TrackState represents the state of an active tracking task
type TrackState string

const (
	StateTracking TrackState = "tracking"
	StatePaused   TrackState = "paused"
)

// TrackMode selects between an open-ended work timer and a countdown timer
// measured against the activity's historical average duration. All
// concurrently active tasks must share one mode.
type TrackMode string

const (
	ModeWork      TrackMode = "work"
	ModeCountdown TrackMode = "countdown"
)
