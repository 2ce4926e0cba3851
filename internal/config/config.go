// Package config loads guardian's settings from the config file, the
// environment and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Mission       MissionConfig      `mapstructure:"mission"`
		Rest          RestConfig         `mapstructure:"rest"`
		Profile       ProfileConfig      `mapstructure:"profile"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		CLI           CLIConfig          `mapstructure:"-"`
	}

	// MissionConfig holds the focus period settings.
	MissionConfig struct {
		Message        string        `mapstructure:"message"`
		Color          string        `mapstructure:"color"`
		Sound          string        `mapstructure:"sound"`
		DefaultMinutes int           `mapstructure:"default_minutes"`
		MaxMinutes     int           `mapstructure:"max_minutes"`
		GraceDelay     time.Duration `mapstructure:"grace_delay"`
		OverrideActive bool          `mapstructure:"override_active"`
	}

	// RestConfig holds the mandatory rest period settings.
	RestConfig struct {
		Message  string        `mapstructure:"message"`
		Color    string        `mapstructure:"color"`
		Sound    string        `mapstructure:"sound"`
		Duration time.Duration `mapstructure:"duration"`
	}

	// ProfileConfig holds player details.
	ProfileConfig struct {
		UserName string `mapstructure:"user_name"`
	}

	// NotificationConfig holds desktop notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// SettingsConfig holds miscellaneous settings.
	SettingsConfig struct {
		Cmd       string `mapstructure:"cmd"`
		StatsPort int    `mapstructure:"stats_port"`
	}

	// CLIConfig holds values that only come from the command line.
	CLIConfig struct {
		Task    string
		Format  string
		Minutes int
		NoColor bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	configDir      = "guardian"
	configFileName = "config.yml"
	dbFileName     = "guardian.db"
	statusFileName = "status.json"
	logFileName    = "guardian.log"
	dataDir        string
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// SoundPath resolves a configured sound to a file path. Relative names are
// looked up in the sounds directory under the data directory.
func SoundPath(sound string) string {
	if sound == "" || filepath.IsAbs(sound) {
		return sound
	}

	return filepath.Join(dataDir, "sounds", sound)
}

// InitializePaths resolves the location of every file guardian reads or
// writes. GUARDIAN_ENV adds a suffix to each file name so that separate
// environments do not share state.
func InitializePaths() error {
	env := strings.TrimSpace(os.Getenv("GUARDIAN_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("guardian_%s.db", env)
		statusFileName = fmt.Sprintf("status_%s.json", env)
		logFileName = fmt.Sprintf("guardian_%s.log", env)
	}

	var err error

	configFilePath, err = xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		return err
	}

	dataDir, err = xdg.DataFile(configDir)
	if err != nil {
		return err
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)
	statusFilePath = filepath.Join(dataDir, statusFileName)
	logFilePath = filepath.Join(dataDir, "log", logFileName)

	return nil
}

// New creates a new Config and applies options in order. The result is
// validated before it is returned.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// MissionMinutes is the length of the first mission: the --minutes flag when
// given, otherwise the configured default.
func (c *Config) MissionMinutes() int {
	if c.CLI.Minutes > 0 {
		return c.CLI.Minutes
	}

	return c.Mission.DefaultMinutes
}
