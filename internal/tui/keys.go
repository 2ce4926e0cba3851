package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	togglePlay key.Binding
	endEarly   key.Binding
	newMission key.Binding
	stats      key.Binding
	esc        key.Binding
	quit       key.Binding
}

var defaultKeymap = keyMap{
	togglePlay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	endEarly: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end early"),
	),
	newMission: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new mission"),
	),
	stats: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stats"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}
