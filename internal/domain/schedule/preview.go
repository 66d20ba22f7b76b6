package schedule

import "time"

// PreviewSettings controls when the display switches to showing the next
// day's schedule at the end of the current one.
type PreviewSettings struct {
	// Enabled turns the preview on.
	Enabled bool
	// NotBefore is the earliest clock time (offset from midnight) at which
	// the preview may appear, regardless of how little of today remains.
	NotBefore time.Duration
	// Threshold is how much of today may remain before the preview kicks in.
	Threshold time.Duration
}

// ShowTomorrow decides whether the display should present tomorrow's
// schedule: the preview must be enabled, the clock must have passed
// NotBefore, and no more than Threshold of today's schedule may remain.
func ShowTomorrow(now time.Time, today Day, s PreviewSettings) bool {
	if !s.Enabled {
		return false
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Sub(midnight) < s.NotBefore {
		return false
	}

	if _, ok := today.End(); !ok {
		return false
	}

	return today.Remaining(now) <= s.Threshold
}
