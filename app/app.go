// Package app wires guardian's command-line interface
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/guardian/internal/config"
)

// Get retrieves the guardian app instance.
func Get() *cli.App {
	guardianApp := &cli.App{
		Name: "guardian",
		Usage: `
		Guardian turns focus sessions into missions. Your Guardian fights
		until it gets tired halfway through, rests, then finishes the job.
		Completed missions build your streak and unlock badges.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running mission",
				Action: statusAction,
			},
			{
				Name:   "badges",
				Usage:  "List the badges and how to earn them",
				Action: badgesAction,
			},
		},
		Flags: []cli.Flag{
			taskFlag,
			minutesFlag,
			restFlag,
			graceFlag,
			statsPortFlag,
			sessionCmdFlag,
			disableNotificationFlag,
			userNameFlag,
			formatFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return guardianApp
}
