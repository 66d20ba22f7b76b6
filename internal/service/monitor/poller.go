package monitor

import (
	"context"
	"time"

	"github.com/yersmagit/lessons-displayer/internal/logger"
)

// DefaultPollInterval is the cadence at which the probe is sampled.
// It bounds how stale the recorded last-input instant can be.
const DefaultPollInterval = 250 * time.Millisecond

// Poller periodically samples a probe and folds the result into a recorder:
// the OS reports "idle for d", so the last input happened at now-d.
type Poller struct {
	probe    Probe
	recorder *Recorder
	interval time.Duration
}

// NewPoller creates a poller. A non-positive interval falls back to
// DefaultPollInterval.
func NewPoller(probe Probe, recorder *Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Poller{
		probe:    probe,
		recorder: recorder,
		interval: interval,
	}
}

// Run samples the probe until the context is cancelled. Probe errors are
// logged at debug level and the sample skipped; a transient X error must not
// kill the monitor.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			idle, err := p.probe.IdleFor()
			if err != nil {
				logger.Debugf(ctx, "Input probe sample failed: %v", err)

				continue
			}

			p.recorder.Touch(now.Add(-idle))
		}
	}
}
