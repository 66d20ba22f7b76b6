package monitor

import (
	"errors"
	"time"
)

// Probe reports how long the user has been idle according to the operating
// system. Implementations are platform-specific.
type Probe interface {
	// IdleFor returns the time elapsed since the last keyboard or mouse
	// input seen by the OS.
	IdleFor() (time.Duration, error)
	// Close releases any platform resources held by the probe.
	Close() error
}

// ErrUnsupported is returned by NewProbe on platforms without an input
// probe implementation.
var ErrUnsupported = errors.New("input probe is not supported on this platform")
