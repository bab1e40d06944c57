package ports

import "context"

// CompletionBridge is invoked by the session engine after a tracking session
// ends with its final interval persisted. Implementations decide whether the
// activity is configured as a habit and what value to record; failures are
// reported through logging, never back into the engine.
type CompletionBridge interface {
	MaybeLogHabit(ctx context.Context, activityID uint, finalWorkSeconds int64)
}
