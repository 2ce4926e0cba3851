package session

import (
	"fmt"
	"strings"

	"github.com/ayoisaiah/guardian/internal/countdown"
	"github.com/ayoisaiah/guardian/internal/schedule"
	"github.com/ayoisaiah/guardian/internal/stats"
)

// Hooks are called synchronously from within the machine's transitions.
// Any field may be nil.
type Hooks struct {
	OnPhaseChange     func(Phase)
	OnTick            func(Snapshot)
	OnRestComplete    func()
	OnMissionComplete func(stats.MissionRecord)
	OnMissionAborted  func(stats.MissionRecord)
}

// Snapshot is the read-only state of the machine used for rendering.
type Snapshot struct {
	Phase         Phase   `json:"phase"`
	Task          string  `json:"task"`
	Minutes       int     `json:"minutes"`
	Remaining     int     `json:"remaining_seconds"`
	Total         int     `json:"total_seconds"`
	Progress      float64 `json:"progress_percent"`
	RestRemaining int     `json:"rest_remaining_seconds"`
	RestTotal     int     `json:"rest_total_seconds"`
	Paused        bool    `json:"paused"`
}

// mission is the state of one focus attempt. The boolean fields latch each
// one-shot transition.
type mission struct {
	timer       *countdown.Timer
	rest        *countdown.Timer
	cancelGrace schedule.Cancel
	task        string
	minutes     int
	tired       bool
	rested      bool
	finished    bool
}

// Machine orchestrates the mission lifecycle. It is not safe for concurrent
// use: commands and timer callbacks must all run on the scheduler's goroutine.
type Machine struct {
	sched    schedule.Scheduler
	ledger   *stats.Ledger
	current  *mission
	phase    Phase
	hooks    []Hooks
	settings Settings
}

// New creates an idle machine that records finished missions in ledger.
func New(
	sched schedule.Scheduler,
	ledger *stats.Ledger,
	settings Settings,
) *Machine {
	return &Machine{
		sched:    sched,
		ledger:   ledger,
		settings: settings.normalise(),
		phase:    Idle,
	}
}

// Subscribe registers hooks. Hooks are called in registration order.
func (m *Machine) Subscribe(h Hooks) {
	m.hooks = append(m.hooks, h)
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Settings returns the effective settings.
func (m *Machine) Settings() Settings {
	return m.settings
}

// Report returns the profile, history and badges recorded so far.
func (m *Machine) Report() stats.Report {
	return m.ledger.Report()
}

// Start begins a new mission of the given length. A mission that is still in
// progress is aborted first unless OverrideActive is disabled, in which case
// the command is rejected.
func (m *Machine) Start(task string, minutes int) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return ErrInvalidInput.Fmt("task must not be empty")
	}

	if minutes < 1 || minutes > m.settings.MaxMinutes {
		return ErrInvalidInput.Fmt(fmt.Sprintf(
			"duration must be between 1 and %d minutes, got %d",
			m.settings.MaxMinutes,
			minutes,
		))
	}

	if m.phase.Active() {
		if !m.settings.OverrideActive {
			return ErrInvalidTransition.Fmt("start a new mission", m.phase)
		}

		m.abort()
	}

	ms := &mission{
		task:    task,
		minutes: minutes,
	}

	ms.timer = countdown.New(m.sched, minutes*60, countdown.Callbacks{
		OnTick:     func(int) { m.tick(ms) },
		OnHalfway:  func() { m.tire(ms) },
		OnComplete: func() { m.complete(ms) },
	})

	m.current = ms
	m.setPhase(Focusing)
	ms.timer.Start()

	return nil
}

// Pause freezes the countdown of the current focus or rest period.
func (m *Machine) Pause() error {
	t, err := m.pausable("pause")
	if err != nil {
		return err
	}

	if t.Paused() {
		return ErrInvalidTransition.Fmt("pause", "already paused")
	}

	t.Pause()
	m.tick(m.current)

	return nil
}

// Resume continues a paused focus or rest period.
func (m *Machine) Resume() error {
	t, err := m.pausable("resume")
	if err != nil {
		return err
	}

	if !t.Paused() {
		return ErrInvalidTransition.Fmt("resume", "not paused")
	}

	t.Resume()
	m.tick(m.current)

	return nil
}

// EndEarly aborts the mission in progress.
func (m *Machine) EndEarly() error {
	if !m.phase.Active() {
		return ErrInvalidTransition.Fmt("end the mission", m.phase)
	}

	m.abort()

	return nil
}

// Close cancels every pending tick and delayed transition without recording
// anything. The machine must not be used afterwards.
func (m *Machine) Close() {
	if m.current != nil {
		m.teardown(m.current)
	}
}

// Snapshot returns the state needed to render the current mission.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{Phase: m.phase}

	ms := m.current
	if ms == nil {
		return s
	}

	s.Task = ms.task
	s.Minutes = ms.minutes
	s.Remaining = ms.timer.Remaining()
	s.Total = ms.timer.Total()
	s.Progress = ms.timer.Progress()

	switch m.phase {
	case Focusing:
		s.Paused = ms.timer.Paused()
	case Resting:
		s.Paused = ms.rest.Paused()
		s.RestRemaining = ms.rest.Remaining()
		s.RestTotal = ms.rest.Total()
	}

	return s
}

func (m *Machine) pausable(action string) (*countdown.Timer, error) {
	switch m.phase {
	case Focusing:
		return m.current.timer, nil
	case Resting:
		return m.current.rest, nil
	}

	return nil, ErrInvalidTransition.Fmt(action, m.phase)
}

// tire handles the mission timer reaching its halfway mark.
func (m *Machine) tire(ms *mission) {
	if m.current != ms || ms.tired || m.phase != Focusing {
		return
	}

	ms.tired = true
	ms.timer.Pause()

	m.setPhase(Tired)

	ms.cancelGrace = m.sched.After(m.settings.GraceDelay, func() {
		m.startRest(ms)
	})
}

func (m *Machine) startRest(ms *mission) {
	if m.current != ms || m.phase != Tired {
		return
	}

	ms.cancelGrace = nil
	ms.rest = countdown.New(m.sched, m.settings.restSeconds(), countdown.Callbacks{
		OnTick:     func(int) { m.tick(ms) },
		OnComplete: func() { m.finishRest(ms) },
	})

	m.setPhase(Resting)
	ms.rest.Start()
}

func (m *Machine) finishRest(ms *mission) {
	if m.current != ms || ms.rested || m.phase != Resting {
		return
	}

	ms.rested = true
	ms.rest.Stop()
	m.ledger.RecordRest()

	ms.timer.Resume()
	m.setPhase(Focusing)

	for _, h := range m.hooks {
		if h.OnRestComplete != nil {
			h.OnRestComplete()
		}
	}
}

func (m *Machine) complete(ms *mission) {
	if m.current != ms || ms.finished || m.phase != Focusing {
		return
	}

	ms.finished = true
	ms.timer.Stop()

	rec := m.ledger.RecordCompletion(ms.task, ms.minutes)

	m.setPhase(Completed)

	for _, h := range m.hooks {
		if h.OnMissionComplete != nil {
			h.OnMissionComplete(rec)
		}
	}
}

func (m *Machine) abort() {
	ms := m.current
	if ms == nil || ms.finished {
		return
	}

	ms.finished = true
	m.teardown(ms)

	rec := m.ledger.RecordAbort(ms.task, ms.minutes)

	m.setPhase(Aborted)

	for _, h := range m.hooks {
		if h.OnMissionAborted != nil {
			h.OnMissionAborted(rec)
		}
	}
}

func (m *Machine) teardown(ms *mission) {
	if ms.cancelGrace != nil {
		ms.cancelGrace()
		ms.cancelGrace = nil
	}

	ms.timer.Stop()

	if ms.rest != nil {
		ms.rest.Stop()
	}
}

func (m *Machine) tick(ms *mission) {
	if m.current != ms {
		return
	}

	snap := m.Snapshot()

	for _, h := range m.hooks {
		if h.OnTick != nil {
			h.OnTick(snap)
		}
	}
}

func (m *Machine) setPhase(p Phase) {
	if m.phase == p {
		return
	}

	m.phase = p

	for _, h := range m.hooks {
		if h.OnPhaseChange != nil {
			h.OnPhaseChange(p)
		}
	}
}
