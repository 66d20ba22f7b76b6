package policyfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
	"github.com/yersmagit/lessons-displayer/internal/logger"
)

// ErrNotFound is returned when the automation file does not exist.
var ErrNotFound = errors.New("automation file not found")

const (
	// clickTrue is the legacy string encoding of "fire regardless of clicks".
	clickTrue = "True"

	// defaultPreviewNotBefore is the earliest clock time for the tomorrow
	// preview when the file does not set one.
	defaultPreviewNotBefore = 20 * time.Hour
	// defaultPreviewThreshold is the remaining-time threshold for the
	// tomorrow preview when the file does not set one.
	defaultPreviewThreshold = 50 * time.Minute
)

// rawEvent is one per-period entry as stored on disk. The legacy format
// encodes booleans as the strings "True"/"False" and spells the blackout
// mode "blackboard".
type rawEvent struct {
	// Time is the trigger offset in seconds: positive from the period
	// start, negative from the period end.
	Time int64 `json:"time"`
	// Click set to "True" means the trigger fires regardless of clicks.
	Click string `json:"click"`
	// Mode is "blackboard", "whiteboard" or "none".
	Mode string `json:"mode"`
}

// rawPreview is the tomorrow-preview block as stored on disk.
type rawPreview struct {
	// Switch set to "True" enables the preview.
	Switch string `json:"switch"`
	// StartTimeLimit is the earliest clock time, "HH:MM".
	StartTimeLimit string `json:"start_time_limit"`
	// TimeRemaining is the threshold in minutes, stored as a string.
	TimeRemaining string `json:"time_remaining"`
}

// rawFile is the full on-disk document.
type rawFile struct {
	Events         map[string]rawEvent `json:"events"`
	TomorrowCourse rawPreview          `json:"tomorrow_course"`
}

// Load reads the automation file and normalizes it into domain types.
// Entries with an unrecognized mode are dropped with a warning rather than
// failing the load; the engine then simply has no policy for that period.
//
// Normalization of the click flag follows the legacy semantics: "True"
// means the trigger fires unconditionally, anything else leaves the trigger
// interruptible by user activity.
func Load(ctx context.Context, path string) (automation.PolicySet, schedule.PreviewSettings, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, schedule.PreviewSettings{}, ErrNotFound
		}

		return nil, schedule.PreviewSettings{}, fmt.Errorf("read automation file: %w", err)
	}

	var raw rawFile
	if err = json.Unmarshal(contents, &raw); err != nil {
		return nil, schedule.PreviewSettings{}, fmt.Errorf("decode automation file: %w", err)
	}

	policies := make(automation.PolicySet, len(raw.Events))

	for name, event := range raw.Events {
		mode, parseErr := automation.ParseMode(event.Mode)
		if parseErr != nil {
			logger.WarnKV(ctx, "Dropping automation entry with unrecognized mode",
				"period", name, "mode", event.Mode)

			continue
		}

		policies[name] = automation.Policy{
			PeriodName:    name,
			Offset:        time.Duration(event.Time) * time.Second,
			Interruptible: event.Click != clickTrue,
			Mode:          mode,
		}
	}

	return policies, previewSettings(ctx, raw.TomorrowCourse), nil
}

// previewSettings normalizes the tomorrow-preview block, falling back to
// defaults for absent or malformed values.
func previewSettings(ctx context.Context, raw rawPreview) schedule.PreviewSettings {
	settings := schedule.PreviewSettings{
		Enabled:   raw.Switch == clickTrue,
		NotBefore: defaultPreviewNotBefore,
		Threshold: defaultPreviewThreshold,
	}

	if raw.StartTimeLimit != "" {
		if clock, err := time.Parse("15:04", raw.StartTimeLimit); err == nil {
			settings.NotBefore = time.Duration(clock.Hour())*time.Hour +
				time.Duration(clock.Minute())*time.Minute
		} else {
			logger.WarnKV(ctx, "Malformed preview start time limit, using default",
				"value", raw.StartTimeLimit)
		}
	}

	if raw.TimeRemaining != "" {
		if minutes, err := strconv.Atoi(raw.TimeRemaining); err == nil && minutes >= 0 {
			settings.Threshold = time.Duration(minutes) * time.Minute
		} else {
			logger.WarnKV(ctx, "Malformed preview remaining-time threshold, using default",
				"value", raw.TimeRemaining)
		}
	}

	return settings
}
