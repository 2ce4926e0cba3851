package app

import (
	"github.com/ayoisaiah/guardian/internal/schedule"
	"github.com/ayoisaiah/guardian/internal/session"
	"github.com/ayoisaiah/guardian/internal/stats"
)

// Engine serialises every call to the machine through the loop. It is safe
// for concurrent use by the TUI and the stats server.
type Engine struct {
	loop    *schedule.Loop
	machine *session.Machine
}

// NewEngine creates an Engine. The loop must be running for calls to return.
func NewEngine(loop *schedule.Loop, machine *session.Machine) *Engine {
	return &Engine{
		loop:    loop,
		machine: machine,
	}
}

func (e *Engine) run(fn func() error) error {
	var err error

	if doErr := e.loop.Do(func() { err = fn() }); doErr != nil {
		return doErr
	}

	return err
}

func (e *Engine) Start(task string, minutes int) error {
	return e.run(func() error {
		return e.machine.Start(task, minutes)
	})
}

func (e *Engine) Pause() error {
	return e.run(e.machine.Pause)
}

func (e *Engine) Resume() error {
	return e.run(e.machine.Resume)
}

func (e *Engine) EndEarly() error {
	return e.run(e.machine.EndEarly)
}

func (e *Engine) Snapshot() (session.Snapshot, error) {
	var snap session.Snapshot

	err := e.run(func() error {
		snap = e.machine.Snapshot()
		return nil
	})

	return snap, err
}

func (e *Engine) Report() (stats.Report, error) {
	var r stats.Report

	err := e.run(func() error {
		r = e.machine.Report()
		return nil
	})

	return r, err
}

// Close stops the machine without recording the mission in progress.
func (e *Engine) Close() error {
	return e.run(func() error {
		e.machine.Close()
		return nil
	})
}
