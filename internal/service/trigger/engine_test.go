package trigger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
)

var errDisplayBroken = errors.New("display broken")

// fakeMonitor reports activity after a fixed instant.
type fakeMonitor struct {
	// activityAt is the instant of the only recorded input. Zero means no
	// input was ever seen.
	activityAt time.Time
}

// HasActivitySince reports whether the recorded input falls at or after since.
func (m *fakeMonitor) HasActivitySince(since time.Time) bool {
	if m.activityAt.IsZero() {
		return false
	}

	return !m.activityAt.Before(since)
}

// fakeController records SetMode calls and optionally fails them.
type fakeController struct {
	mode   automation.Mode
	calls  []automation.Mode
	setErr error
}

// SetMode appends the requested mode and applies it unless failing.
func (c *fakeController) SetMode(_ context.Context, mode automation.Mode) error {
	c.calls = append(c.calls, mode)
	if c.setErr != nil {
		return c.setErr
	}

	c.mode = mode

	return nil
}

// CurrentMode returns the last applied mode.
func (c *fakeController) CurrentMode() automation.Mode {
	return c.mode
}

// fakeSink collects recorded events in memory.
type fakeSink struct {
	events []automation.TriggerEvent
}

// Record stores the event.
func (s *fakeSink) Record(_ context.Context, event automation.TriggerEvent) error {
	s.events = append(s.events, event)

	return nil
}

// testPeriod is a 3000-second period named 示例课程 starting at a fixed instant.
func testPeriod(name string) schedule.Period {
	start := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)

	return schedule.Period{
		Name:  name,
		Start: start,
		End:   start.Add(3000 * time.Second),
	}
}

// TestEngineFiresAtOffsetFromStart verifies the positive-offset scenario:
// with no user activity the blackout command fires at start+60s.
func TestEngineFiresAtOffsetFromStart(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程")
		monitor    = new(fakeMonitor)
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(monitor, controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: 60 * time.Second, Interruptible: true, Mode: automation.ModeBlackout},
	}

	engine.OnPeriodStart(ctx, period, policies)

	// Before the fire instant nothing happens.
	engine.Tick(ctx, period.Start.Add(59*time.Second))
	require.Empty(t, controller.calls)

	engine.Tick(ctx, period.Start.Add(60*time.Second))
	require.Equal(t, []automation.Mode{automation.ModeBlackout}, controller.calls)
	require.Equal(t, automation.ModeBlackout, controller.CurrentMode())

	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeFired, sink.events[0].Outcome)
	require.Equal(t, period.Start.Add(60*time.Second), sink.events[0].ScheduledAt)
	require.NotEqual(t, "", sink.events[0].ID.String())

	// A later tick must not re-fire.
	engine.Tick(ctx, period.Start.Add(120*time.Second))
	require.Len(t, controller.calls, 1)
}

// TestEngineSuppressedByActivity verifies that an interruptible trigger with
// activity inside the watch window never calls SetMode.
func TestEngineSuppressedByActivity(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程")
		monitor    = &fakeMonitor{activityAt: testPeriod("示例课程").Start.Add(30 * time.Second)}
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(monitor, controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: 60 * time.Second, Interruptible: true, Mode: automation.ModeBlackout},
	}

	engine.OnPeriodStart(ctx, period, policies)
	engine.Tick(ctx, period.Start.Add(60*time.Second))

	require.Empty(t, controller.calls)
	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeSuppressed, sink.events[0].Outcome)

	// The instance is retired: further ticks change nothing.
	engine.Tick(ctx, period.Start.Add(90*time.Second))
	require.Len(t, sink.events, 1)
}

// TestEngineUninterruptibleFiresDespiteActivity verifies the negative-offset
// scenario: fire_at = end-180s and the switch happens even with activity.
func TestEngineUninterruptibleFiresDespiteActivity(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程-2")
		monitor    = &fakeMonitor{activityAt: testPeriod("示例课程-2").Start.Add(10 * time.Second)}
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(monitor, controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程-2": {PeriodName: "示例课程-2", Offset: -180 * time.Second, Interruptible: false, Mode: automation.ModeWhiteboard},
	}

	engine.OnPeriodStart(ctx, period, policies)

	engine.Tick(ctx, period.Start.Add(2819*time.Second))
	require.Empty(t, controller.calls)

	engine.Tick(ctx, period.Start.Add(2820*time.Second))
	require.Equal(t, []automation.Mode{automation.ModeWhiteboard}, controller.calls)
	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeFired, sink.events[0].Outcome)
	require.Equal(t, period.Start.Add(2820*time.Second), sink.events[0].ScheduledAt)
}

// TestEngineOffsetOutsideBoundsExpires verifies that a 4000-second offset on
// a 3000-second period expires immediately and SetMode is never called.
func TestEngineOffsetOutsideBoundsExpires(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程")
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(new(fakeMonitor), controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: 4000 * time.Second, Mode: automation.ModeBlackout},
	}

	engine.OnPeriodStart(ctx, period, policies)

	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeExpired, sink.events[0].Outcome)
	require.True(t, sink.events[0].ScheduledAt.IsZero())

	engine.Tick(ctx, period.End)
	require.Empty(t, controller.calls)
	require.Len(t, sink.events, 1)
}

// TestEngineNoPolicyStaysIdle verifies that a period without a policy
// produces no instance and no events.
func TestEngineNoPolicyStaysIdle(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("课间")
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(new(fakeMonitor), controller, sink)
		ctx        = context.Background()
	)

	engine.OnPeriodStart(ctx, period, automation.PolicySet{})
	engine.Tick(ctx, period.Start.Add(time.Second))
	engine.OnPeriodEnd(ctx, period)

	require.Empty(t, controller.calls)
	require.Empty(t, sink.events)
}

// TestEnginePeriodEndExpiresArmedInstance verifies that an instance that
// never reached its fire instant expires on the period-end signal.
func TestEnginePeriodEndExpiresArmedInstance(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程")
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(new(fakeMonitor), controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: -10 * time.Second, Mode: automation.ModeBlackout},
	}

	engine.OnPeriodStart(ctx, period, policies)
	engine.Tick(ctx, period.Start.Add(time.Second))
	engine.OnPeriodEnd(ctx, period)

	require.Empty(t, controller.calls)
	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeExpired, sink.events[0].Outcome)

	// A period-end signal for an unrelated period never touches the state.
	engine.OnPeriodStart(ctx, period, policies)
	engine.OnPeriodEnd(ctx, testPeriod("语文"))
	engine.Tick(ctx, period.Start.Add(2990*time.Second))
	require.Len(t, controller.calls, 1)
}

// TestEngineControllerFailureStillFired verifies that a SetMode failure is
// surfaced as a failed outcome but the decision stands and the engine keeps
// processing later periods.
func TestEngineControllerFailureStillFired(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程")
		controller = &fakeController{setErr: errDisplayBroken}
		sink       = new(fakeSink)
		engine     = NewEngine(new(fakeMonitor), controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: 60 * time.Second, Mode: automation.ModeBlackout},
		"语文":   {PeriodName: "语文", Offset: 5 * time.Second, Mode: automation.ModeNone},
	}

	engine.OnPeriodStart(ctx, period, policies)
	engine.Tick(ctx, period.Start.Add(60*time.Second))

	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeFailed, sink.events[0].Outcome)
	require.Equal(t, errDisplayBroken.Error(), sink.events[0].Err)

	// The decision is settled: no retry within the period.
	engine.Tick(ctx, period.Start.Add(120*time.Second))
	require.Len(t, controller.calls, 1)

	// The engine still arms and fires for the next period.
	controller.setErr = nil
	next := schedule.Period{Name: "语文", Start: period.End, End: period.End.Add(2700 * time.Second)}

	engine.OnPeriodEnd(ctx, period)
	engine.OnPeriodStart(ctx, next, policies)
	engine.Tick(ctx, next.Start.Add(5*time.Second))

	require.Len(t, controller.calls, 2)
	require.Equal(t, automation.ModeNone, controller.calls[1])
	require.Equal(t, automation.OutcomeFired, sink.events[1].Outcome)
}

// TestEngineCoarseTickStillFires verifies tolerance of polling granularity:
// a tick landing past the fire instant but inside the period still fires,
// while a tick past the period end expires instead.
func TestEngineCoarseTickStillFires(t *testing.T) {
	t.Parallel()

	var (
		period     = testPeriod("示例课程")
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(new(fakeMonitor), controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: 60 * time.Second, Mode: automation.ModeBlackout},
	}

	engine.OnPeriodStart(ctx, period, policies)
	engine.Tick(ctx, period.Start.Add(63*time.Second))
	require.Len(t, controller.calls, 1)

	// Same policy, but the loop stalls until after the period end.
	engine.OnPeriodStart(ctx, period, policies)
	engine.Tick(ctx, period.End.Add(time.Second))
	require.Len(t, controller.calls, 1)
	require.Equal(t, automation.OutcomeExpired, sink.events[len(sink.events)-1].Outcome)
}

// TestEngineNewPeriodRetiresArmedInstance verifies that a later period
// beginning expires a leftover armed instance before arming its own.
func TestEngineNewPeriodRetiresArmedInstance(t *testing.T) {
	t.Parallel()

	var (
		first      = testPeriod("示例课程")
		controller = new(fakeController)
		sink       = new(fakeSink)
		engine     = NewEngine(new(fakeMonitor), controller, sink)
		ctx        = context.Background()
	)

	policies := automation.PolicySet{
		"示例课程": {PeriodName: "示例课程", Offset: 2900 * time.Second, Mode: automation.ModeBlackout},
		"语文":   {PeriodName: "语文", Offset: 10 * time.Second, Mode: automation.ModeWhiteboard},
	}

	second := schedule.Period{Name: "语文", Start: first.End, End: first.End.Add(2700 * time.Second)}

	engine.OnPeriodStart(ctx, first, policies)
	// The period-end signal was missed; the next start must retire the
	// leftover instance on its own.
	engine.OnPeriodStart(ctx, second, policies)

	require.Len(t, sink.events, 1)
	require.Equal(t, automation.OutcomeExpired, sink.events[0].Outcome)
	require.Equal(t, "示例课程", sink.events[0].PeriodName)

	engine.Tick(ctx, second.Start.Add(10*time.Second))
	require.Equal(t, []automation.Mode{automation.ModeWhiteboard}, controller.calls)
}
