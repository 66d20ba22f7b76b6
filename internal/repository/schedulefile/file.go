package schedulefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
)

// ErrNotFound is returned when the schedule file does not exist.
var ErrNotFound = errors.New("schedule file not found")

// clockLayout is the time-of-day format used in the schedule file.
const clockLayout = "15:04:05"

// rawPeriod is one schedule entry as stored on disk: a name with
// time-of-day bounds, date-independent.
type rawPeriod struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// rawFile is the full on-disk document.
type rawFile struct {
	Periods []rawPeriod `yaml:"periods"`
}

// Load reads the schedule file and resolves its time-of-day entries against
// the given date, producing the validated day. The same file describes any
// day; the caller picks the date (today, tomorrow).
func Load(path string, date time.Time) (schedule.Day, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read schedule file: %w", err)
	}

	var raw rawFile
	if err = yaml.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal schedule file: %w", err)
	}

	day := make(schedule.Day, 0, len(raw.Periods))

	for _, p := range raw.Periods {
		start, parseErr := resolveClock(p.Start, date)
		if parseErr != nil {
			return nil, fmt.Errorf("period %q start: %w", p.Name, parseErr)
		}

		end, parseErr := resolveClock(p.End, date)
		if parseErr != nil {
			return nil, fmt.Errorf("period %q end: %w", p.Name, parseErr)
		}

		day = append(day, schedule.Period{
			Name:  p.Name,
			Start: start,
			End:   end,
		})
	}

	if err = day.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	return day, nil
}

// resolveClock combines an "HH:MM:SS" string with the reference date.
func resolveClock(s string, date time.Time) (time.Time, error) {
	clock, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock time %q: %w", s, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location()), nil
}
