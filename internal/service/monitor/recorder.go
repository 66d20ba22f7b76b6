package monitor

import (
	"sync/atomic"
	"time"
)

// Recorder keeps the instant of the most recent user input. The timestamp is
// a single atomic value: the probe poller writes it, the trigger engine only
// reads it, so no locking is needed.
type Recorder struct {
	// last holds the last input instant as unix nanoseconds; zero means no
	// input has been observed yet.
	last atomic.Int64
}

// NewRecorder creates a recorder with no observed activity.
func NewRecorder() *Recorder {
	return new(Recorder)
}

// Touch records an input at t. Timestamps only move forward, so late or
// repeated probe readings never rewind the recorded instant.
func (r *Recorder) Touch(t time.Time) {
	nanos := t.UnixNano()

	for {
		current := r.last.Load()
		if nanos <= current {
			return
		}

		if r.last.CompareAndSwap(current, nanos) {
			return
		}
	}
}

// HasActivitySince reports whether any input was observed at or after since.
func (r *Recorder) HasActivitySince(since time.Time) bool {
	last := r.last.Load()
	if last == 0 {
		return false
	}

	return !time.Unix(0, last).Before(since)
}

// LastActivity returns the most recent input instant.
// The second return value is false when no input was ever observed.
func (r *Recorder) LastActivity() (time.Time, bool) {
	last := r.last.Load()
	if last == 0 {
		return time.Time{}, false
	}

	return time.Unix(0, last), true
}
