package automation

import (
	"errors"
	"fmt"
)

// Mode is the display overlay state the automation can switch to.
type Mode int

const (
	// ModeNone means no overlay: the regular lesson display is visible.
	ModeNone Mode = iota
	// ModeBlackout simulates a switched-off screen.
	ModeBlackout
	// ModeWhiteboard turns the screen into a writable white surface.
	ModeWhiteboard
)

// errUnknownMode is returned for mode strings the parser does not recognize.
var errUnknownMode = errors.New("unknown mode")

// ParseMode converts a configuration string into a Mode.
// The legacy configuration spells the blackout mode "blackboard";
// both spellings are accepted.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "none":
		return ModeNone, nil
	case "blackout", "blackboard":
		return ModeBlackout, nil
	case "whiteboard":
		return ModeWhiteboard, nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", errUnknownMode, s)
	}
}

// String returns the canonical name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBlackout:
		return "blackout"
	case ModeWhiteboard:
		return "whiteboard"
	default:
		return "none"
	}
}
