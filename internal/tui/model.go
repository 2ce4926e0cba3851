// Package tui is the interactive terminal front end. It renders snapshots of
// the running mission and forwards key presses as commands. It makes no
// lifecycle decisions of its own.
package tui

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/guardian/internal/session"
	"github.com/ayoisaiah/guardian/internal/stats"
)

const (
	pollInterval   = 250 * time.Millisecond
	rotateInterval = 4 * time.Second
)

var focusStatuses = []string{
	"Fighting monsters…",
	"Crushing procrastination!",
	"Guardian is on fire!",
	"Stay focused, warrior!",
	"Enemies are retreating!",
}

// Controller issues commands to the mission machine. Every method may block
// and is only ever called from a tea.Cmd.
type Controller interface {
	Start(task string, minutes int) error
	Pause() error
	Resume() error
	EndEarly() error
	Snapshot() (session.Snapshot, error)
	Report() (stats.Report, error)
}

// Options configures the model.
type Options struct {
	Logger *slog.Logger
	Style  Style
	// Task and Minutes start a mission straight away when Task is set.
	Task           string
	UserName       string
	DefaultMinutes int
	MaxMinutes     int
}

type view int

const (
	viewForm view = iota
	viewMission
	viewStats
)

type (
	snapshotMsg struct {
		err  error
		snap session.Snapshot
	}

	pollMsg struct{}

	rotateMsg struct{}

	commandMsg struct {
		err    error
		action string
	}

	reportMsg struct {
		err    error
		report stats.Report
	}
)

// formValues is kept behind a pointer since huh writes through it.
type formValues struct {
	task    string
	minutes string
}

// Model is the bubbletea model.
type Model struct {
	ctrl     Controller
	form     *huh.Form
	values   *formValues
	report   *stats.Report
	logger   *slog.Logger
	rand     func(n int) int
	err      error
	help     help.Model
	progress progress.Model
	opts     Options
	status   string
	snap     session.Snapshot
	view     view
	prev     view
}

// New creates the model.
func New(ctrl Controller, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Model{
		ctrl:     ctrl,
		opts:     opts,
		logger:   opts.Logger,
		rand:     rand.IntN,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		values:   &formValues{},
		status:   focusStatuses[0],
		view:     viewForm,
	}

	if opts.Task == "" {
		m.form = m.newForm()
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.poll(), m.rotate()}

	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	} else {
		m.view = viewMission
		cmds = append(cmds, m.start(m.opts.Task, m.opts.DefaultMinutes))
	}

	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case pollMsg, snapshotMsg, rotateMsg, progress.FrameMsg:
	default:
		m.logger.Debug("tea message", slog.String("msg", spew.Sdump(msg)))
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-4, 60)

		return m, nil

	case pollMsg:
		return m, m.fetchSnapshot()

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.setSnapshot(msg.snap)

		return m, m.poll()

	case rotateMsg:
		if m.snap.Phase == session.Focusing && !m.snap.Paused {
			m.status = focusStatuses[m.rand(len(focusStatuses))]
		}

		return m, m.rotate()

	case commandMsg:
		m.err = msg.err
		if msg.err != nil {
			m.logger.Info(
				"command rejected",
				slog.String("action", msg.action),
				slog.Any("error", msg.err),
			)

			return m, nil
		}

		return m, m.fetchSnapshot()

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.report = &msg.report

		return m, nil
	}

	if m.view == viewForm && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.snap.Phase != "" && m.snap.Phase != session.Idle {
				m.form = nil
				m.view = viewMission

				return m, nil
			}
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		minutes, _ := strconv.Atoi(strings.TrimSpace(m.values.minutes))
		task := m.values.task

		m.form = nil
		m.view = viewMission

		return m, m.start(task, minutes)

	case huh.StateAborted:
		return m, tea.Quit
	}

	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return m, tea.Quit

	case key.Matches(msg, defaultKeymap.stats):
		if m.view == viewStats {
			m.view = m.prev
			return m, nil
		}

		m.prev = m.view
		m.view = viewStats

		return m, m.fetchReport()

	case key.Matches(msg, defaultKeymap.esc):
		if m.view == viewStats {
			m.view = m.prev
		}

		return m, nil

	case key.Matches(msg, defaultKeymap.newMission):
		m.values = &formValues{}
		m.form = m.newForm()
		m.view = viewForm

		return m, m.form.Init()

	case key.Matches(msg, defaultKeymap.togglePlay):
		return m, m.toggle()

	case key.Matches(msg, defaultKeymap.endEarly):
		return m, m.command("end early", m.ctrl.EndEarly)
	}

	return m, nil
}

func (m *Model) setSnapshot(s session.Snapshot) {
	if s.Phase != m.snap.Phase {
		switch s.Phase {
		case session.Focusing:
			m.status = focusStatuses[0]
		case session.Tired:
			m.status = "Guardian getting tired…"
		case session.Resting:
			m.status = "Recharging energy…"
		case session.Completed:
			m.status = "The enemy has been defeated!"
		case session.Aborted:
			m.status = "The Guardian retreats to fight another day."
		}
	}

	m.snap = s
}

func (m *Model) newForm() *huh.Form {
	if m.values.minutes == "" {
		m.values.minutes = strconv.Itoa(m.opts.DefaultMinutes)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("What is your mission, %s?", m.opts.UserName)).
				Placeholder("Write the quarterly report").
				Value(&m.values.task).
				Validate(validateTask),
			huh.NewInput().
				Title("How many minutes?").
				Value(&m.values.minutes).
				Validate(m.validateMinutes),
		),
	)
}

func validateTask(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("every mission needs a task")
	}

	return nil
}

func (m *Model) validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > m.opts.MaxMinutes {
		return fmt.Errorf("enter a number from 1 to %d", m.opts.MaxMinutes)
	}

	return nil
}

func (m *Model) poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func (m *Model) rotate() tea.Cmd {
	return tea.Tick(rotateInterval, func(time.Time) tea.Msg {
		return rotateMsg{}
	})
}

func (m *Model) fetchSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.ctrl.Snapshot()
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *Model) fetchReport() tea.Cmd {
	return func() tea.Msg {
		r, err := m.ctrl.Report()
		return reportMsg{report: r, err: err}
	}
}

func (m *Model) start(task string, minutes int) tea.Cmd {
	return m.command("start", func() error {
		return m.ctrl.Start(task, minutes)
	})
}

// toggle decides between pause and resume from a fresh snapshot since the
// polled one may be stale after a quick double press.
func (m *Model) toggle() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.ctrl.Snapshot()
		if err != nil {
			return commandMsg{action: "pause", err: err}
		}

		if snap.Paused {
			return commandMsg{action: "resume", err: m.ctrl.Resume()}
		}

		return commandMsg{action: "pause", err: m.ctrl.Pause()}
	}
}

func (m *Model) command(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return commandMsg{action: action, err: fn()}
	}
}
