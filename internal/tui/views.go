package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/guardian/internal/session"
	"github.com/ayoisaiah/guardian/internal/stats"
	"github.com/ayoisaiah/guardian/internal/timeutil"
)

func (m *Model) View() string {
	var s strings.Builder

	switch m.view {
	case viewForm:
		s.WriteString(m.form.View())
		s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
			defaultKeymap.esc,
		}))
	case viewStats:
		s.WriteString(m.statsView())
	default:
		s.WriteString(m.missionView())
	}

	if m.err != nil {
		s.WriteString("\n\n" + m.opts.Style.Warning.Render(m.err.Error()))
	}

	return s.String()
}

func (m *Model) missionView() string {
	snap := m.snap

	switch snap.Phase {
	case session.Focusing, session.Tired:
		return m.focusView()
	case session.Resting:
		return m.restView()
	case session.Completed, session.Aborted:
		return m.resultView()
	}

	return m.opts.Style.Hint.Render("Preparing your mission…")
}

func (m *Model) focusView() string {
	var s strings.Builder

	st := m.opts.Style
	snap := m.snap

	s.WriteString(st.phaseBadge(snap.Phase))
	s.WriteString(st.Main.Render(snap.Task))

	switch {
	case snap.Paused:
		s.WriteString(" " + st.Secondary.Render("[Paused]"))
	case snap.Phase == session.Focusing:
		end := time.Now().Add(time.Duration(snap.Remaining) * time.Second)
		s.WriteString(" " + st.Hint.Render("until "+end.Format("03:04 PM")))
	}

	s.WriteString("\n\n")
	s.WriteString(st.Main.Render(timeutil.Clock(snap.Remaining)))
	s.WriteString("\n\n")

	// power drains as the mission progresses
	power := 1 - snap.Progress/100
	s.WriteString(m.progress.ViewAs(power))
	s.WriteString(" " + st.Hint.Render(fmt.Sprintf("power %d%%", timeutil.Round(power*100))))
	s.WriteString("\n\n")

	if snap.Phase == session.Tired {
		s.WriteString(st.Warning.Render(m.status))
		s.WriteString("\n" + st.Hint.Render("The Guardian needs rest. Resting shortly…"))
	} else {
		s.WriteString(st.Secondary.Render(m.status))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.endEarly,
		defaultKeymap.stats,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) restView() string {
	var s strings.Builder

	st := m.opts.Style
	snap := m.snap

	s.WriteString(st.phaseBadge(snap.Phase))
	s.WriteString(st.Main.Render(snap.Task))

	if snap.Paused {
		s.WriteString(" " + st.Secondary.Render("[Paused]"))
	}

	s.WriteString("\n\n")
	s.WriteString(st.Main.Render(timeutil.Clock(snap.RestRemaining)))
	s.WriteString("\n\n")

	var recharged float64
	if snap.RestTotal > 0 {
		recharged = float64(snap.RestTotal-snap.RestRemaining) / float64(snap.RestTotal)
	}

	s.WriteString(m.progress.ViewAs(recharged))
	s.WriteString("\n\n" + st.Secondary.Render(m.status))
	s.WriteString("\n" + st.Hint.Render(
		fmt.Sprintf("%s of the mission left after this rest", timeutil.Clock(snap.Remaining)),
	))

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.endEarly,
		defaultKeymap.stats,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) resultView() string {
	var s strings.Builder

	st := m.opts.Style
	snap := m.snap

	s.WriteString(st.phaseBadge(snap.Phase))
	s.WriteString(st.Main.Render(snap.Task))
	s.WriteString("\n\n" + st.Secondary.Render(m.status))

	if snap.Phase == session.Completed {
		s.WriteString("\n" + st.Hint.Render(
			fmt.Sprintf("%s of focus added to your record", timeutil.HumanMinutes(snap.Minutes)),
		))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.newMission,
		defaultKeymap.stats,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) statsView() string {
	var s strings.Builder

	st := m.opts.Style

	if m.report == nil {
		return st.Hint.Render("Loading stats…")
	}

	p := m.report.Profile

	s.WriteString(st.Main.Render(p.UserName) + "\n\n")

	rows := [][2]string{
		{"Missions completed", strconv.Itoa(p.CompletedMissions)},
		{"Missions aborted", strconv.Itoa(p.AbortedMissions)},
		{"Focus time", timeutil.HumanMinutes(p.TotalFocusMinutes)},
		{"Longest mission", timeutil.HumanMinutes(p.BestFocusMinutes)},
		{"Focus streak", fmt.Sprintf("%d days", p.FocusStreakDays)},
		{"Rest periods", strconv.Itoa(p.TotalRestPeriods)},
	}

	for _, r := range rows {
		s.WriteString(fmt.Sprintf("%-20s %s\n", st.Hint.Render(r[0]), st.Secondary.Render(r[1])))
	}

	s.WriteString(fmt.Sprintf(
		"\n%s %s\n",
		st.Main.Render("Badges"),
		st.Hint.Render(fmt.Sprintf(
			"%d/%d unlocked",
			len(stats.Unlocked(m.report.Badges)),
			len(m.report.Badges),
		)),
	))

	for _, b := range m.report.Badges {
		s.WriteString(badgeLine(b) + "\n")
	}

	if len(m.report.History) > 0 {
		s.WriteString("\n" + st.Main.Render("Recent missions") + "\n")

		for _, r := range m.report.History {
			outcome := "✗"
			if r.Completed {
				outcome = "✓"
			}

			s.WriteString(fmt.Sprintf(
				"%s %s (%s)\n",
				outcome,
				r.Task,
				timeutil.HumanMinutes(r.DurationMinutes),
			))
		}
	}

	s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.esc,
		defaultKeymap.newMission,
		defaultKeymap.quit,
	}))

	return s.String()
}

func badgeLine(b stats.Badge) string {
	mark := "🔒"
	if b.Unlocked {
		mark = "🏆"
	}

	return fmt.Sprintf(
		"%s %s: %s (%d/%d)",
		mark,
		b.Name,
		b.Description,
		b.Progress,
		b.Requirement,
	)
}
