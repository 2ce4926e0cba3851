package app

import "github.com/urfave/cli/v2"

var (
	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Start a mission for this task straight away",
	}

	minutesFlag = &cli.IntFlag{
		Name:    "minutes",
		Aliases: []string{"m"},
		Usage:   "Mission length in minutes (default: 25)",
	}

	restFlag = &cli.StringFlag{
		Name:    "rest",
		Aliases: []string{"r"},
		Usage:   "Rest period length, e.g. 5m or 5 for five minutes (default: 5m)",
	}

	graceFlag = &cli.StringFlag{
		Name:  "grace",
		Usage: "How long the Guardian stays tired before resting (default: 3s)",
	}

	statsPortFlag = &cli.IntFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Usage:   "Serve statistics and metrics on this local port",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed mission",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a mission or rest ends",
	}

	userNameFlag = &cli.StringFlag{
		Name:    "user-name",
		Aliases: []string{"u"},
		Usage:   "Name shown on your profile",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Format of the report printed on exit: table, json, or yaml",
		Value:   "table",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)
