package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yersmagit/lessons-displayer/internal/config"
	"github.com/yersmagit/lessons-displayer/internal/service/plan"
	"github.com/yersmagit/lessons-displayer/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// schedulePath overrides the schedule file from the settings.
	schedulePath string
	// automationPath overrides the automation file from the settings.
	automationPath string
	// date is the day to resolve the schedule against.
	date string

	// rootCmd represents the base command for checking automation files.
	rootCmd = &cobra.Command{
		Use:   "lessons-policy-check",
		Short: "Validate schedule and automation files and print the trigger plan.",
		Long: `Loads a schedule and automation file pair, validates both, and prints
the computed trigger plan: for every period, when its automation would
fire, in which mode, and whether user activity can cancel it. Periods
whose configured offset can never fall inside the period are flagged.

Exits with non-zero status when either file is unreadable or invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &plan.Options{
				ConfigPath:     configPath,
				SchedulePath:   schedulePath,
				AutomationPath: automationPath,
				Date:           date,
			}

			return plan.Run(ctx, options, cmd.OutOrStdout())
		},
	}
)

// Execute runs the lessons-policy-check CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&date, "date", "d", "", "day to resolve the schedule against (2006-01-02, default today)")
}
