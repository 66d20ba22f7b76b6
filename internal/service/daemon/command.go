package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yersmagit/lessons-displayer/internal/config"
	"github.com/yersmagit/lessons-displayer/internal/display"
	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
	"github.com/yersmagit/lessons-displayer/internal/domain/schedule"
	"github.com/yersmagit/lessons-displayer/internal/logger"
	"github.com/yersmagit/lessons-displayer/internal/repository/journal"
	"github.com/yersmagit/lessons-displayer/internal/repository/policyfile"
	"github.com/yersmagit/lessons-displayer/internal/repository/schedulefile"
	"github.com/yersmagit/lessons-displayer/internal/service/monitor"
	"github.com/yersmagit/lessons-displayer/internal/service/trigger"
)

// Options controls the displayer process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// SchedulePath overrides the schedule file from the settings.
	SchedulePath string
	// AutomationPath overrides the automation file from the settings.
	AutomationPath string
	// JournalPath overrides the journal file from the settings.
	JournalPath string
	// Headless forces the display into state-only mode without a terminal UI.
	Headless bool
}

// Run starts the displayer and blocks until the context is cancelled.
// It loads the configuration, today's and tomorrow's schedules and the
// automation policies, then drives the trigger engine on a polling loop.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "lessons-displayer")

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyOverrides(cfg, opts)

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	now := time.Now()

	today, err := schedulefile.Load(cfg.ScheduleFile, now)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	tomorrow, err := schedulefile.Load(cfg.ScheduleFile, now.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("load tomorrow schedule: %w", err)
	}

	policies, preview, err := policyfile.Load(ctx, cfg.AutomationFile)

	switch {
	case err == nil:
		logger.InfoKV(ctx, "Automation policies loaded",
			"file", cfg.AutomationFile, "policies", len(policies))
	case errors.Is(err, policyfile.ErrNotFound):
		// Running without automation is fine; the schedule still shows.
		logger.WarnKV(ctx, "No automation file, automation disabled", "file", cfg.AutomationFile)

		policies = automation.PolicySet{}
	default:
		return fmt.Errorf("load automation policies: %w", err)
	}

	journalRepo, err := journal.Open(cfg.JournalFile)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journalRepo.Close()

	recorder := monitor.NewRecorder()

	probe, err := monitor.NewProbe()
	if err != nil {
		// Interruptible automations then fire unconditionally.
		logger.WarnKV(ctx, "Input probe unavailable, activity detection degraded", "error", err)
	} else {
		defer probe.Close()

		go monitor.NewPoller(probe, recorder, cfg.InputPollInterval).Run(ctx)
	}

	state := display.NewState()
	engine := trigger.NewEngine(recorder, state, journalRepo)

	if !cfg.Headless {
		screen, screenErr := display.NewScreen(state, today, tomorrow, preview)
		if screenErr != nil {
			return fmt.Errorf("initialize display: %w", screenErr)
		}

		go screen.Run(ctx)
	}

	logger.InfoKV(ctx, "Displayer started",
		"periods", len(today), "tick_interval", cfg.TickInterval, "headless", cfg.Headless)

	loop(ctx, cfg.TickInterval, today, policies, engine)

	logger.Info(ctx, "Displayer stopped")

	return nil
}

// loop polls the clock, signals period transitions to the engine and ticks
// it, until the context is cancelled.
func loop(ctx context.Context, interval time.Duration, day schedule.Day, policies automation.PolicySet, engine *trigger.Engine) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		current    schedule.Period
		hasCurrent bool
	)

	if p, ok := day.At(time.Now()); ok {
		current, hasCurrent = p, true

		engine.OnPeriodStart(ctx, p, policies)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			next, ok := day.At(now)

			if hasCurrent && (!ok || next.Name != current.Name) {
				engine.OnPeriodEnd(ctx, current)

				hasCurrent = false
			}

			if ok && (!hasCurrent || next.Name != current.Name) {
				logger.InfoKV(ctx, "Period started", "period", next.Name, "end", next.End)
				engine.OnPeriodStart(ctx, next, policies)
			}

			current, hasCurrent = next, ok

			engine.Tick(ctx, now)
		}
	}
}

// applyOverrides lets command-line options win over the settings file.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.SchedulePath != "" {
		cfg.ScheduleFile = opts.SchedulePath
	}

	if opts.AutomationPath != "" {
		cfg.AutomationFile = opts.AutomationPath
	}

	if opts.JournalPath != "" {
		cfg.JournalFile = opts.JournalPath
	}

	if opts.Headless {
		cfg.Headless = true
	}
}
