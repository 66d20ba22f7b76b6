package plan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/yersmagit/lessons-displayer/internal/config"
	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
	"github.com/yersmagit/lessons-displayer/internal/logger"
	"github.com/yersmagit/lessons-displayer/internal/repository/policyfile"
	"github.com/yersmagit/lessons-displayer/internal/repository/schedulefile"
)

// Options controls the policy-check run.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// SchedulePath overrides the schedule file from the settings.
	SchedulePath string
	// AutomationPath overrides the automation file from the settings.
	AutomationPath string
	// Date is the day to resolve the schedule against, "2006-01-02".
	// Empty means today.
	Date string
}

// Entry is the computed trigger plan for one period.
type Entry struct {
	// Period is the schedule period.
	Period schedule.Period
	// Policy is the automation policy, nil when the period has none.
	Policy *automation.Policy
	// FireAt is the computed fire instant; only meaningful when Valid.
	FireAt time.Time
	// Valid is false when the policy's offset falls outside the period.
	Valid bool
}

// Build computes the trigger plan for a day against a policy set.
func Build(day schedule.Day, policies automation.PolicySet) []Entry {
	entries := make([]Entry, 0, len(day))

	for _, period := range day {
		entry := Entry{Period: period}

		if policy, ok := policies.For(period.Name); ok {
			entry.Policy = &policy
			entry.FireAt, entry.Valid = policy.FireAt(period)
		}

		entries = append(entries, entry)
	}

	return entries
}

// Run validates the schedule and automation files and writes the computed
// trigger plan to out. It fails on unreadable or structurally invalid files;
// individual periods without (or with invalid) triggers are reported, not
// fatal.
func Run(ctx context.Context, opts *Options, out io.Writer) error {
	ctx = logger.WithName(ctx, "lessons-policy-check")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.SchedulePath != "" {
		cfg.ScheduleFile = opts.SchedulePath
	}

	if opts.AutomationPath != "" {
		cfg.AutomationFile = opts.AutomationPath
	}

	date := time.Now()

	if opts.Date != "" {
		date, err = time.ParseInLocation("2006-01-02", opts.Date, time.Local)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
	}

	day, err := schedulefile.Load(cfg.ScheduleFile, date)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	policies, _, err := policyfile.Load(ctx, cfg.AutomationFile)
	if err != nil && !errors.Is(err, policyfile.ErrNotFound) {
		return fmt.Errorf("load automation policies: %w", err)
	}

	for _, entry := range Build(day, policies) {
		switch {
		case entry.Policy == nil:
			fmt.Fprintf(out, "%s  %s - %s  (no automation)\n",
				entry.Period.Name, clock(entry.Period.Start), clock(entry.Period.End))
		case !entry.Valid:
			fmt.Fprintf(out, "%s  %s - %s  INVALID: offset %s exceeds period length %s\n",
				entry.Period.Name, clock(entry.Period.Start), clock(entry.Period.End),
				entry.Policy.Offset, entry.Period.Duration())
		default:
			fmt.Fprintf(out, "%s  %s - %s  -> %s at %s (interruptible: %t)\n",
				entry.Period.Name, clock(entry.Period.Start), clock(entry.Period.End),
				entry.Policy.Mode, clock(entry.FireAt), entry.Policy.Interruptible)
		}
	}

	return nil
}

// clock formats an instant as time-of-day.
func clock(t time.Time) string {
	return t.Format("15:04:05")
}
