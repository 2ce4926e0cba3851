package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "GUARDIAN"

const (
	keyMissionDefaultMinutes = "mission.default_minutes"
	keyMissionMaxMinutes     = "mission.max_minutes"
	keyMissionGraceDelay     = "mission.grace_delay"
	keyMissionOverride       = "mission.override_active"
	keyMissionMessage        = "mission.message"
	keyMissionColor          = "mission.color"
	keyMissionSound          = "mission.sound"
	keyRestDuration          = "rest.duration"
	keyRestMessage           = "rest.message"
	keyRestColor             = "rest.color"
	keyRestSound             = "rest.sound"
	keyUserName              = "profile.user_name"
	keyNotificationsEnabled  = "notifications.enabled"
	keyDarkTheme             = "display.dark_theme"
	keySessionCmd            = "settings.cmd"
	keyStatsPort             = "settings.stats_port"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does not
// exist. GUARDIAN_* environment variables take precedence over the file, so
// GUARDIAN_MISSION_DEFAULT_MINUTES overrides mission.default_minutes.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setDefaults registers the built-in defaults. Values already present on c,
// such as first-run prompt answers, replace them.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(keyMissionDefaultMinutes, 25)
	v.SetDefault(keyMissionMaxMinutes, 120)
	v.SetDefault(keyMissionGraceDelay, "3s")
	v.SetDefault(keyMissionOverride, true)
	v.SetDefault(keyMissionMessage, "Guard your focus")
	v.SetDefault(keyMissionColor, "#B0DB43")
	v.SetDefault(keyMissionSound, "")
	v.SetDefault(keyRestDuration, "5m")
	v.SetDefault(keyRestMessage, "Rest and recover")
	v.SetDefault(keyRestColor, "#12EAEA")
	v.SetDefault(keyRestSound, "")
	v.SetDefault(keyUserName, "Guardian")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyStatsPort, 0)

	if c.Mission.DefaultMinutes != 0 {
		v.SetDefault(keyMissionDefaultMinutes, c.Mission.DefaultMinutes)
	}

	if c.Profile.UserName != "" {
		v.SetDefault(keyUserName, c.Profile.UserName)
	}
}

func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	return nil
}

// parseDuration accepts Go duration strings and bare numbers, which are
// treated as minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
