package ui

import (
	"fmt"
	"time"
)

// FormatClock renders a duration as HH:MM:SS, flooring to whole seconds.
// Negative durations render their magnitude; callers add their own sign.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatCountdown renders remaining time for a countdown timer. Once the
// target is passed the display clamps at zero and shows the overrun.
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		return fmt.Sprintf("00:00:00 (+%s)", FormatClock(-remaining))
	}
	return FormatClock(remaining)
}
