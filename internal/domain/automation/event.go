package automation

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal result of a trigger decision.
type Outcome string

const (
	// OutcomeFired means the mode change was issued to the display.
	OutcomeFired Outcome = "fired"
	// OutcomeSuppressed means user activity cancelled the mode change.
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeExpired means the trigger never fired within its period.
	OutcomeExpired Outcome = "expired"
	// OutcomeFailed means the mode change was issued but the display
	// reported an error applying it.
	OutcomeFailed Outcome = "failed"
)

// TriggerEvent records one automation decision made by the trigger engine.
type TriggerEvent struct {
	// ID uniquely identifies the decision.
	ID uuid.UUID
	// PeriodName is the period the decision belongs to.
	PeriodName string
	// Mode is the overlay the policy targeted.
	Mode Mode
	// ScheduledAt is the intended fire instant. Zero when the policy never
	// produced a valid one (offset outside the period bounds).
	ScheduledAt time.Time
	// DecidedAt is when the engine settled the decision.
	DecidedAt time.Time
	// Outcome is the terminal result.
	Outcome Outcome
	// Err carries the display error text for failed outcomes.
	Err string
}

// NewTriggerEvent builds an event with a fresh identifier.
func NewTriggerEvent(periodName string, mode Mode, scheduledAt, decidedAt time.Time, outcome Outcome) TriggerEvent {
	return TriggerEvent{
		ID:          uuid.New(),
		PeriodName:  periodName,
		Mode:        mode,
		ScheduledAt: scheduledAt,
		DecidedAt:   decidedAt,
		Outcome:     outcome,
	}
}
