package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yersmagit/lessons-displayer/internal/config"
	"github.com/yersmagit/lessons-displayer/internal/service/daemon"
	"github.com/yersmagit/lessons-displayer/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// schedulePath overrides the schedule file from the settings.
	schedulePath string
	// automationPath overrides the automation file from the settings.
	automationPath string
	// journalPath overrides the decision journal file from the settings.
	journalPath string
	// headless disables the terminal display.
	headless bool

	// rootCmd represents the base command for running the displayer.
	rootCmd = &cobra.Command{
		Use:   "lessons-displayer",
		Short: "Show the class schedule and run display automation.",
		Long: `Runs the classroom display: today's (and, near the end of the day,
tomorrow's) class periods on a full-screen terminal, plus the automation
engine that switches the display to blackout or whiteboard mode at the
per-period configured moments.

Interruptible automations are cancelled by keyboard or mouse activity
observed since the period started. Every automation decision is recorded
in a local journal database.

Schedule, automation and journal paths default to the settings file and
can be overridden with flags.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &daemon.Options{
				ConfigPath:     configPath,
				SchedulePath:   schedulePath,
				AutomationPath: automationPath,
				JournalPath:    journalPath,
				Headless:       headless,
			}

			return daemon.Run(ctx, options)
		},
	}
)

// Execute runs the lessons-displayer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.Flags().StringVarP(&schedulePath, "schedule", "s", "", "path to the schedule YAML file")
	rootCmd.Flags().StringVarP(&automationPath, "automation", "a", "", "path to the automation JSON file")
	rootCmd.Flags().StringVarP(&journalPath, "journal", "j", "", "path to the decision journal database")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal display")
}
