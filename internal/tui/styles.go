package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/guardian/internal/session"
)

// Style holds the lipgloss styles used by the views.
type Style struct {
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Warning   lipgloss.Style
	Mission   lipgloss.Style
	Rest      lipgloss.Style
	Victory   lipgloss.Style
	Defeat    lipgloss.Style
}

// NewStyle builds the styles from the configured phase colours.
func NewStyle(missionColor, restColor string, darkTheme bool) Style {
	text := lipgloss.Color("#FFFFFF")
	muted := lipgloss.Color("#A6ADC8")

	if !darkTheme {
		text = lipgloss.Color("#1E1E2E")
		muted = lipgloss.Color("#5C5F77")
	}

	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1E1E2E")).
		Padding(0, 1).
		MarginRight(1).
		Bold(true)

	return Style{
		Main:      lipgloss.NewStyle().Foreground(text).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(text),
		Hint:      lipgloss.NewStyle().Foreground(muted),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")).Bold(true),
		Mission:   badge.Background(lipgloss.Color(missionColor)),
		Rest:      badge.Background(lipgloss.Color(restColor)),
		Victory:   badge.Background(lipgloss.Color("#A6E3A1")),
		Defeat:    badge.Background(lipgloss.Color("#F38BA8")),
	}
}

func (s Style) phaseBadge(p session.Phase) string {
	switch p {
	case session.Focusing:
		return s.Mission.Render("MISSION")
	case session.Tired:
		return s.Mission.Render("TIRED")
	case session.Resting:
		return s.Rest.Render("RESTING")
	case session.Completed:
		return s.Victory.Render("VICTORY")
	case session.Aborted:
		return s.Defeat.Render("RETREAT")
	}

	return ""
}
