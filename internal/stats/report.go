package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/guardian/internal/timeutil"
	"github.com/ayoisaiah/guardian/internal/ui"
)

// Format is an output format for a Report.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Report is a read-only view of the profile for reporting.
type Report struct {
	Profile Profile         `json:"profile" yaml:"profile"`
	History []MissionRecord `json:"history" yaml:"history"`
	Badges  []Badge         `json:"badges"  yaml:"badges"`
}

// ToJSON returns the indented JSON encoding of the report.
func (r Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToYAML returns the YAML encoding of the report.
func (r Report) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Write renders the report to w in the requested format.
func (r Report) Write(w io.Writer, format Format) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case FormatJSON:
		b, err = r.ToJSON()
	case FormatYAML:
		b, err = r.ToYAML()
	default:
		r.Print(w)
		return nil
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// Print writes the report as tables.
func (r Report) Print(w io.Writer) {
	p := r.Profile

	fmt.Fprintln(w, pterm.DefaultSection.Sprint(p.UserName))

	ui.PrintTable([][]string{
		{"MISSIONS", "ABORTED", "FOCUS TIME", "BEST", "STREAK", "RESTS"},
		{
			strconv.Itoa(p.CompletedMissions),
			strconv.Itoa(p.AbortedMissions),
			timeutil.HumanMinutes(p.TotalFocusMinutes),
			timeutil.HumanMinutes(p.BestFocusMinutes),
			fmt.Sprintf("%d days", p.FocusStreakDays),
			strconv.Itoa(p.TotalRestPeriods),
		},
	}, w)

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Badges"))

	badgeRows := [][]string{{"BADGE", "REQUIREMENT", "PROGRESS", "STATUS"}}

	for _, b := range r.Badges {
		status := ui.Red("locked")
		if b.Unlocked {
			status = ui.Green("unlocked")
		}

		badgeRows = append(badgeRows, []string{
			b.Name,
			b.Description,
			fmt.Sprintf("%d/%d", b.Progress, b.Requirement),
			status,
		})
	}

	ui.PrintTable(badgeRows, w)

	if len(r.History) == 0 {
		return
	}

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Recent missions"))

	historyRows := [][]string{{"#", "TASK", "DURATION", "RESULT", "ENDED"}}

	for i, rec := range r.History {
		result := ui.Red("aborted")
		if rec.Completed {
			result = ui.Green("completed")
		}

		historyRows = append(historyRows, []string{
			strconv.Itoa(i + 1),
			rec.Task,
			timeutil.HumanMinutes(rec.DurationMinutes),
			result,
			rec.EndedAt.Format("Jan 02, 2006 03:04 PM"),
		})
	}

	ui.PrintTable(historyRows, w)
}
