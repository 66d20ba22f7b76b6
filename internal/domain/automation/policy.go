package automation

import (
	"time"

	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
)

// Policy is the per-period automation configuration: when to switch the
// display relative to the period and whether user input cancels the switch.
type Policy struct {
	// PeriodName is the schedule period this policy applies to.
	PeriodName string
	// Offset places the fire instant: non-negative offsets are measured
	// from the period start, negative offsets from the period end.
	Offset time.Duration
	// Interruptible means user input before the fire instant suppresses
	// the switch.
	Interruptible bool
	// Mode is the overlay to switch to when the policy fires.
	Mode Mode
}

// FireAt computes the absolute fire instant for the policy within the given
// period. The second return value is false when the configured offset places
// the instant outside the period bounds, in which case the trigger is
// invalid for this period.
func (p Policy) FireAt(period schedule.Period) (time.Time, bool) {
	var at time.Time
	if p.Offset >= 0 {
		at = period.Start.Add(p.Offset)
	} else {
		at = period.End.Add(p.Offset)
	}

	if at.Before(period.Start) || at.After(period.End) {
		return time.Time{}, false
	}

	return at, true
}

// PolicySet holds at most one policy per period name.
type PolicySet map[string]Policy

// For returns the policy for the named period, if one exists.
func (s PolicySet) For(name string) (Policy, bool) {
	p, ok := s[name]

	return p, ok
}
