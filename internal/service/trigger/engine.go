package trigger

import (
	"context"
	"sync"
	"time"

	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
	"github.com/yersmagit/lessons-displayer/internal/logger"
)

// ActivityMonitor surfaces a single fact about the user:
// whether any keyboard or mouse input happened since the given instant.
type ActivityMonitor interface {
	HasActivitySince(since time.Time) bool
}

// ModeController applies overlay modes to the display. SetMode must be
// idempotent: applying the current mode again is a no-op.
type ModeController interface {
	SetMode(ctx context.Context, mode automation.Mode) error
	CurrentMode() automation.Mode
}

// Sink receives every settled trigger decision.
type Sink interface {
	Record(ctx context.Context, event automation.TriggerEvent) error
}

// instanceState tracks the lifecycle of a trigger instance.
// Armed is the only non-terminal state.
type instanceState int

const (
	stateArmed instanceState = iota
	stateFired
	stateSuppressed
	stateExpired
)

// instance is the ephemeral trigger created for one (period, policy) pair.
// It is owned exclusively by the engine and never reused.
type instance struct {
	period     schedule.Period
	policy     automation.Policy
	fireAt     time.Time
	watchStart time.Time
	state      instanceState
}

// Engine owns the authoritative mapping from the current time to "should a
// mode change fire now" and executes it at most once per qualifying period.
// At any instant at most one instance is armed.
type Engine struct {
	// monitor answers activity queries at evaluation time.
	monitor ActivityMonitor
	// controller receives the mode-change commands.
	controller ModeController
	// sink records settled decisions. May be nil.
	sink Sink
	// mu serializes OnPeriodStart/OnPeriodEnd/Tick.
	mu sync.Mutex
	// current is the live instance, nil when the engine is idle.
	current *instance
}

// NewEngine creates an engine wired to its collaborators.
// A nil sink disables decision recording.
func NewEngine(monitor ActivityMonitor, controller ModeController, sink Sink) *Engine {
	return &Engine{
		monitor:    monitor,
		controller: controller,
		sink:       sink,
	}
}

// OnPeriodStart arms a trigger for the period that has just become current.
// Without a policy for the period name the engine stays idle. A policy whose
// fire instant falls outside the period bounds expires immediately without
// ever firing.
func (e *Engine) OnPeriodStart(ctx context.Context, period schedule.Period, policies automation.PolicySet) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A later period beginning retires whatever was still armed.
	e.expireLocked(ctx, period.Start)

	policy, ok := policies.For(period.Name)
	if !ok {
		logger.DebugKV(ctx, "No automation policy for period", "period", period.Name)

		return
	}

	fireAt, ok := policy.FireAt(period)
	if !ok {
		logger.WarnKV(ctx, "Trigger offset outside period bounds, automation skipped",
			"period", period.Name, "offset", policy.Offset, "period_length", period.Duration())
		e.record(ctx, automation.NewTriggerEvent(
			period.Name, policy.Mode, time.Time{}, period.Start, automation.OutcomeExpired))

		return
	}

	e.current = &instance{
		period:     period,
		policy:     policy,
		fireAt:     fireAt,
		watchStart: period.Start,
		state:      stateArmed,
	}

	logger.InfoKV(ctx, "Trigger armed",
		"period", period.Name, "fire_at", fireAt, "mode", policy.Mode.String(),
		"interruptible", policy.Interruptible)
}

// OnPeriodEnd expires the armed instance of the period that just ended.
// Automation only applies within its own period.
func (e *Engine) OnPeriodEnd(ctx context.Context, period schedule.Period) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && e.current.period.Name != period.Name {
		return
	}

	e.expireLocked(ctx, period.End)
}

// Tick evaluates the armed instance against now. It must be invoked
// serially; now is expected to advance monotonically. The engine tolerates
// coarse ticks: a tick landing past the fire instant still fires as long as
// the period has not ended.
func (e *Engine) Tick(ctx context.Context, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst := e.current
	if inst == nil || inst.state != stateArmed {
		return
	}

	if now.After(inst.period.End) {
		e.expireLocked(ctx, now)

		return
	}

	if now.Before(inst.fireAt) {
		return
	}

	if inst.policy.Interruptible && e.monitor != nil && e.monitor.HasActivitySince(inst.watchStart) {
		inst.state = stateSuppressed
		e.current = nil

		logger.InfoKV(ctx, "Trigger suppressed by user activity",
			"period", inst.period.Name, "mode", inst.policy.Mode.String())
		e.record(ctx, automation.NewTriggerEvent(
			inst.period.Name, inst.policy.Mode, inst.fireAt, now, automation.OutcomeSuppressed))

		return
	}

	e.fireLocked(ctx, inst, now)
}

// fireLocked issues the mode change and settles the instance as fired.
// A controller failure is surfaced but not retried: the decision was made,
// application failure is a downstream concern.
func (e *Engine) fireLocked(ctx context.Context, inst *instance, now time.Time) {
	inst.state = stateFired
	e.current = nil

	event := automation.NewTriggerEvent(
		inst.period.Name, inst.policy.Mode, inst.fireAt, now, automation.OutcomeFired)

	if err := e.controller.SetMode(ctx, inst.policy.Mode); err != nil {
		event.Outcome = automation.OutcomeFailed
		event.Err = err.Error()

		logger.ErrorKV(ctx, "Display rejected mode change",
			"period", inst.period.Name, "mode", inst.policy.Mode.String(), "error", err)
	} else {
		logger.InfoKV(ctx, "Trigger fired",
			"period", inst.period.Name, "mode", inst.policy.Mode.String(), "scheduled_at", inst.fireAt)
	}

	e.record(ctx, event)
}

// expireLocked retires a still-armed instance without firing.
func (e *Engine) expireLocked(ctx context.Context, decidedAt time.Time) {
	inst := e.current
	if inst == nil || inst.state != stateArmed {
		e.current = nil

		return
	}

	inst.state = stateExpired
	e.current = nil

	logger.DebugKV(ctx, "Trigger expired without firing", "period", inst.period.Name)
	e.record(ctx, automation.NewTriggerEvent(
		inst.period.Name, inst.policy.Mode, inst.fireAt, decidedAt, automation.OutcomeExpired))
}

// record forwards the event to the sink; recording failures never affect
// engine processing.
func (e *Engine) record(ctx context.Context, event automation.TriggerEvent) {
	if e.sink == nil {
		return
	}

	if err := e.sink.Record(ctx, event); err != nil {
		logger.WarnKV(ctx, "Failed to record trigger decision",
			"period", event.PeriodName, "outcome", event.Outcome, "error", err)
	}
}
