package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the displayer.
type Config struct {
	// ScheduleFile is the path to the YAML day schedule.
	ScheduleFile string `yaml:"schedule_file"`
	// AutomationFile is the path to the automation JSON.
	AutomationFile string `yaml:"automation_file"`
	// JournalFile is the path to the sqlite decision journal.
	JournalFile string `yaml:"journal_file"`
	// TickInterval is the trigger engine polling cadence.
	TickInterval time.Duration `yaml:"tick_interval"`
	// InputPollInterval is the input probe sampling cadence.
	InputPollInterval time.Duration `yaml:"input_poll_interval"`
	// LogLevel is the minimum log level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
	// Headless disables the terminal display; the mode controller then
	// only tracks state.
	Headless bool `yaml:"headless"`
}

const (
	// DefaultConfigFilename is the default filename for displayer settings.
	DefaultConfigFilename = "lessons-displayer-settings.yaml"

	// DefaultScheduleFilename is the default filename for the day schedule.
	DefaultScheduleFilename = "schedule.yaml"

	// DefaultAutomationFilename is the default filename for automation
	// policies, matching the legacy plugin layout.
	DefaultAutomationFilename = "data.json"

	// DefaultJournalFilename is the default filename for the decision journal.
	DefaultJournalFilename = "lessons-displayer-journal.db"

	// DefaultTickInterval is the default trigger polling cadence. Once per
	// second is sufficient for second-granularity trigger offsets.
	DefaultTickInterval = time.Second

	// DefaultInputPollInterval is the default input probe sampling cadence.
	DefaultInputPollInterval = 250 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration populated with default values.
func Default() *Config {
	cfg := new(Config)
	Normalize(cfg)

	return cfg
}

// Load reads configuration from the provided path and fills in defaults for
// unset fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	Normalize(&cfg)

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when the file
// does not exist. The displayer is expected to run out of the box.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	Normalize(cfg)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Normalize fills unset fields with their defaults.
func Normalize(cfg *Config) {
	if cfg.ScheduleFile == "" {
		cfg.ScheduleFile = DefaultScheduleFilename
	}

	if cfg.AutomationFile == "" {
		cfg.AutomationFile = DefaultAutomationFilename
	}

	if cfg.JournalFile == "" {
		cfg.JournalFile = DefaultJournalFilename
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.InputPollInterval <= 0 {
		cfg.InputPollInterval = DefaultInputPollInterval
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
