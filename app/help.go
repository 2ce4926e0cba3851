package app

import (
	"strings"

	"github.com/pterm/pterm"
)

const (
	wikiURL    = "https://github.com/ayoisaiah/guardian/wiki"
	websiteURL = "https://github.com/ayoisaiah/guardian"
)

// section renders a titled block of the help template.
func section(title, body string) string {
	return pterm.Yellow(title) + "\n" + body + "\n\n"
}

func helpText() string {
	var b strings.Builder

	b.WriteString(section("DESCRIPTION", "\t\t{{.Usage}}"))
	b.WriteString(section(
		"USAGE",
		"\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}",
	))
	b.WriteString(section("VERSION", "\t\t{{.Version}}"))
	b.WriteString(section(
		"COMMANDS",
		"{{range .Commands}}{{if not .HideHelp}}   "+
			pterm.Green("{{join .Names `, `}}")+
			"{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
	))
	b.WriteString(section(
		"OPTIONS",
		"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}"+
			pterm.Green("-{{$element}}")+",{{end}}{{end}} "+
			pterm.Green("--{{.Name}} {{.DefaultText}}")+
			"\n\t\t\t\t{{.Usage}}\n\n{{end}}",
	))
	b.WriteString(section("ENVIRONMENT", "\t\t"+envHelp()))
	b.WriteString(section("DOCUMENTATION", "\t\t"+wikiURL))
	b.WriteString(pterm.Yellow("WEBSITE") + "\n\t\t" + websiteURL + "\n")

	return b.String()
}

func envHelp() string {
	return `
GUARDIAN_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

GUARDIAN_DEBUG: set to any value to write debug entries to the log file.

GUARDIAN_ENV: keep config, lock and log files for a separate environment, e.g. GUARDIAN_ENV=dev.

GUARDIAN_<SECTION>_<KEY>: override any config file key, e.g. GUARDIAN_MISSION_DEFAULT_MINUTES=50.`
}
