package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/guardian/internal/config"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Mission: config.MissionConfig{
			Message:        "Guard your focus",
			Color:          "#B0DB43",
			DefaultMinutes: 25,
			MaxMinutes:     120,
			GraceDelay:     3 * time.Second,
			OverrideActive: true,
		},
		Rest: config.RestConfig{
			Message:  "Rest and recover",
			Color:    "#12EAEA",
			Duration: 5 * time.Minute,
		},
		Profile: config.ProfileConfig{
			UserName: "Guardian",
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	b, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var written map[string]map[string]any

	require.NoError(t, yaml.Unmarshal(b, &written))
	assert.Equal(t, 25, written["mission"]["default_minutes"])
	assert.Equal(t, "5m", written["rest"]["duration"])
	assert.Equal(t, "Guardian", written["profile"]["user_name"])
	assert.Equal(t, true, written["notifications"]["enabled"])
}

func TestViperReadConfig(t *testing.T) {
	path := writeFile(t, `
mission:
  default_minutes: 45
  grace_delay: 5s
  override_active: false
rest:
  duration: 10m
  message: Stretch
profile:
  user_name: Ada
settings:
  stats_port: 9090
`)

	cfg, err := config.New(config.WithViperConfig(path))
	require.NoError(t, err)

	want := defaultConfig()
	want.Mission.DefaultMinutes = 45
	want.Mission.GraceDelay = 5 * time.Second
	want.Mission.OverrideActive = false
	want.Rest.Duration = 10 * time.Minute
	want.Rest.Message = "Stretch"
	want.Profile.UserName = "Ada"
	want.Settings.StatsPort = 9090

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestViperEnvOverride(t *testing.T) {
	t.Setenv("GUARDIAN_MISSION_DEFAULT_MINUTES", "50")
	t.Setenv("GUARDIAN_PROFILE_USER_NAME", "Grace")

	path := writeFile(t, "mission:\n  default_minutes: 45\n")

	cfg, err := config.New(config.WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Mission.DefaultMinutes)
	assert.Equal(t, "Grace", cfg.Profile.UserName)
}

func TestViperInvalidFile(t *testing.T) {
	path := writeFile(t, "mission: [unterminated")

	_, err := config.New(config.WithViperConfig(path))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		modify func(c *config.Config)
		name   string
		ok     bool
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
			ok:     true,
		},
		{
			name:   "default minutes above max",
			modify: func(c *config.Config) { c.Mission.DefaultMinutes = 121 },
		},
		{
			name:   "zero default minutes",
			modify: func(c *config.Config) { c.Mission.DefaultMinutes = 0 },
		},
		{
			name:   "cli minutes above max",
			modify: func(c *config.Config) { c.CLI.Minutes = 200 },
		},
		{
			name:   "negative grace",
			modify: func(c *config.Config) { c.Mission.GraceDelay = -time.Second },
		},
		{
			name:   "zero grace",
			modify: func(c *config.Config) { c.Mission.GraceDelay = 0 },
			ok:     true,
		},
		{
			name:   "rest too short",
			modify: func(c *config.Config) { c.Rest.Duration = time.Millisecond },
		},
		{
			name:   "bad color",
			modify: func(c *config.Config) { c.Rest.Color = "blue" },
		},
		{
			name:   "empty message",
			modify: func(c *config.Config) { c.Mission.Message = "  " },
		},
		{
			name:   "unsupported sound format",
			modify: func(c *config.Config) { c.Mission.Sound = "/tmp/bell.txt" },
		},
		{
			name:   "missing sound file",
			modify: func(c *config.Config) { c.Rest.Sound = "/nonexistent/bell.ogg" },
		},
		{
			name:   "port out of range",
			modify: func(c *config.Config) { c.Settings.StatsPort = 70000 },
		},
		{
			name:   "unknown format",
			modify: func(c *config.Config) { c.CLI.Format = "xml" },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
		})
	}
}

func TestValidateExistingSound(t *testing.T) {
	sound := filepath.Join(t.TempDir(), "bell.ogg")
	require.NoError(t, os.WriteFile(sound, []byte("OggS"), 0o600))

	cfg := defaultConfig()
	cfg.Mission.Sound = sound

	assert.NoError(t, cfg.Validate())
}

func newCLIContext(t *testing.T, flags map[string]string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("guardian", flag.ContinueOnError)

	for _, name := range []string{
		"task", "rest", "grace", "session-cmd", "user-name", "format",
	} {
		set.String(name, "", "")
	}

	set.Int("minutes", 0, "")
	set.Int("port", 0, "")
	set.Bool("disable-notification", false, "")
	set.Bool("no-color", false, "")

	for k, v := range flags {
		require.NoError(t, set.Set(k, v))
	}

	return cli.NewContext(&cli.App{}, set, nil)
}

func TestCLIConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	ctx := newCLIContext(t, map[string]string{
		"task":                 "  Write report ",
		"minutes":              "40",
		"rest":                 "2",
		"grace":                "1s",
		"port":                 "8080",
		"session-cmd":          "notify-send done",
		"user-name":            "Ada",
		"format":               "JSON",
		"disable-notification": "true",
	})

	cfg, err := config.New(
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	want := defaultConfig()
	want.Rest.Duration = 2 * time.Minute
	want.Mission.GraceDelay = time.Second
	want.Settings.StatsPort = 8080
	want.Settings.Cmd = "notify-send done"
	want.Profile.UserName = "Ada"
	want.Notifications.Enabled = false
	want.CLI = config.CLIConfig{
		Task:    "Write report",
		Minutes: 40,
		Format:  "json",
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 40, cfg.MissionMinutes())
}

func TestCLIConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(path),
		config.WithCLIConfig(newCLIContext(t, nil)),
	)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.CLI.Format)
	assert.Equal(t, 25, cfg.MissionMinutes())
	assert.Equal(t, 5*time.Minute, cfg.Rest.Duration)
}

func TestCLIConfigInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	_, err := config.New(
		config.WithViperConfig(path),
		config.WithCLIConfig(newCLIContext(t, map[string]string{
			"rest": "soon",
		})),
	)
	assert.Error(t, err)
}
