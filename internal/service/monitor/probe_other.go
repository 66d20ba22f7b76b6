//go:build !linux && !windows

package monitor

// NewProbe reports that no input probe exists for this platform. Callers
// degrade to a recorder that never observes activity, so interruptible
// automations fire unconditionally.
func NewProbe() (Probe, error) {
	return nil, ErrUnsupported
}
