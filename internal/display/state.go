package display

import (
	"context"
	"sync"

	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/logger"
)

// State is the authoritative holder of the active overlay mode. Both the
// trigger engine and manual toggles go through it; applying the current
// mode again is a no-op, which makes redundant commands harmless.
type State struct {
	// mu protects mode.
	mu sync.RWMutex
	// mode is the active overlay.
	mode automation.Mode
}

// NewState creates a state with no active overlay.
func NewState() *State {
	return new(State)
}

// SetMode switches the active overlay. Idempotent.
func (s *State) SetMode(ctx context.Context, mode automation.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == mode {
		logger.DebugKV(ctx, "Display already in requested mode", "mode", mode.String())

		return nil
	}

	logger.InfoKV(ctx, "Display mode changed",
		"from", s.mode.String(), "to", mode.String())
	s.mode = mode

	return nil
}

// CurrentMode returns the active overlay mode.
func (s *State) CurrentMode() automation.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}
