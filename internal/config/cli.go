package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Task          string
	Rest          string
	Grace         string
	SessionCmd    string
	UserName      string
	Format        string
	Minutes       int
	Port          int
	DisableNotify bool
	NoColor       bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Flags that were not set leave the file values untouched.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Task:          ctx.String("task"),
			Minutes:       ctx.Int("minutes"),
			Rest:          ctx.String("rest"),
			Grace:         ctx.String("grace"),
			Port:          ctx.Int("port"),
			SessionCmd:    ctx.String("session-cmd"),
			UserName:      ctx.String("user-name"),
			Format:        ctx.String("format"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoColor:       ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts)
	}
}

func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Rest != "" {
		dur, err := parseDuration(opts.Rest)
		if err != nil {
			return errInvalidCLIDuration.Fmt("rest", err)
		}

		c.Rest.Duration = dur
	}

	if opts.Grace != "" {
		dur, err := parseDuration(opts.Grace)
		if err != nil {
			return errInvalidCLIDuration.Fmt("grace", err)
		}

		c.Mission.GraceDelay = dur
	}

	if opts.Port > 0 {
		c.Settings.StatsPort = opts.Port
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if name := strings.TrimSpace(opts.UserName); name != "" {
		c.Profile.UserName = name
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	c.CLI = CLIConfig{
		Task:    strings.TrimSpace(opts.Task),
		Minutes: opts.Minutes,
		Format:  strings.ToLower(opts.Format),
		NoColor: opts.NoColor,
	}

	if c.CLI.Format == "" {
		c.CLI.Format = "table"
	}

	return nil
}
