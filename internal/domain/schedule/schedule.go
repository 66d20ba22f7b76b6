package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Period is a scheduled interval of the day (a class or a break) with a name.
// Periods are constructed once per day from a schedule source and are
// immutable thereafter.
type Period struct {
	// Name identifies the period for policy lookup. Unique within a day.
	Name string
	// Start is the instant the period becomes current.
	Start time.Time
	// End is the instant the period stops being current.
	End time.Time
}

// Contains reports whether now falls inside the period.
// The start is inclusive, the end exclusive, so contiguous periods never
// both claim the same instant.
func (p Period) Contains(now time.Time) bool {
	return !now.Before(p.Start) && now.Before(p.End)
}

// Duration returns the length of the period.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Day is the ordered sequence of periods for a single day.
type Day []Period

var (
	// errEmptyPeriodName is returned when a period has no name.
	errEmptyPeriodName = errors.New("period name must not be empty")
	// errPeriodBounds is returned when a period ends at or before its start.
	errPeriodBounds = errors.New("period must end after it starts")
	// errPeriodOverlap is returned when periods are unordered or overlapping.
	errPeriodOverlap = errors.New("periods must be ordered and non-overlapping")
	// errDuplicatePeriodName is returned when two periods share a name.
	errDuplicatePeriodName = errors.New("period names must be unique within a day")
)

// Validate checks the day for structural consistency: named periods with
// positive length, strictly ordered, non-overlapping, names unique.
func (d Day) Validate() error {
	seen := make(map[string]struct{}, len(d))

	for i, p := range d {
		if p.Name == "" {
			return fmt.Errorf("period %d: %w", i, errEmptyPeriodName)
		}

		if !p.End.After(p.Start) {
			return fmt.Errorf("period %q: %w", p.Name, errPeriodBounds)
		}

		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("period %q: %w", p.Name, errDuplicatePeriodName)
		}

		seen[p.Name] = struct{}{}

		if i > 0 && d[i-1].End.After(p.Start) {
			return fmt.Errorf("period %q: %w", p.Name, errPeriodOverlap)
		}
	}

	return nil
}

// At returns the period covering now, if any.
func (d Day) At(now time.Time) (Period, bool) {
	for _, p := range d {
		if p.Contains(now) {
			return p, true
		}
	}

	return Period{}, false
}

// End returns the end of the last period.
// It returns false for an empty day.
func (d Day) End() (time.Time, bool) {
	if len(d) == 0 {
		return time.Time{}, false
	}

	return d[len(d)-1].End, true
}

// Remaining returns the time left until the day's last period ends,
// or zero once the day is over or empty.
func (d Day) Remaining(now time.Time) time.Duration {
	end, ok := d.End()
	if !ok || !end.After(now) {
		return 0
	}

	return end.Sub(now)
}
