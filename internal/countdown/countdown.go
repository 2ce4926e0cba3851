// Package countdown implements a second-granularity countdown timer with
// one-shot halfway and completion callbacks.
package countdown

import (
	"time"

	"github.com/ayoisaiah/guardian/internal/schedule"
)

// TickInterval is the period between two decrements of a running timer.
const TickInterval = time.Second

// Callbacks are invoked from the scheduler while a timer ticks. OnHalfway and
// OnComplete fire at most once between resets.
type Callbacks struct {
	// OnTick is called after every decrement with the new remaining value.
	OnTick     func(remaining int)
	OnHalfway  func()
	OnComplete func()
}

// Timer counts down from a fixed number of seconds.
type Timer struct {
	sched         schedule.Scheduler
	cancel        schedule.Cancel
	cb            Callbacks
	total         int
	remaining     int
	running       bool
	paused        bool
	halfwayFired  bool
	completeFired bool
}

// New creates a stopped timer. Totals below one second are raised to one.
func New(sched schedule.Scheduler, totalSeconds int, cb Callbacks) *Timer {
	if totalSeconds < 1 {
		totalSeconds = 1
	}

	return &Timer{
		sched:     sched,
		cb:        cb,
		total:     totalSeconds,
		remaining: totalSeconds,
	}
}

// Start begins ticking. It has no effect on a timer that is already running
// and not paused.
func (t *Timer) Start() {
	if t.running && !t.paused {
		return
	}

	t.running = true
	t.paused = false
	t.arm()
}

// Pause freezes the countdown. Fired callbacks stay fired.
func (t *Timer) Pause() {
	if !t.running || t.paused {
		return
	}

	t.paused = true
	t.disarm()
}

// Resume continues a paused countdown from where it was frozen.
func (t *Timer) Resume() {
	if !t.running || !t.paused {
		return
	}

	t.paused = false
	t.arm()
}

// Reset returns the timer to the state it had when it was created.
func (t *Timer) Reset() {
	t.disarm()

	t.remaining = t.total
	t.running = false
	t.paused = false
	t.halfwayFired = false
	t.completeFired = false
}

// Stop cancels any pending tick and leaves the remaining time untouched.
func (t *Timer) Stop() {
	t.disarm()

	t.running = false
	t.paused = false
}

func (t *Timer) arm() {
	if t.cancel != nil || t.remaining == 0 {
		return
	}

	t.cancel = t.sched.Every(TickInterval, t.tick)
}

func (t *Timer) disarm() {
	if t.cancel == nil {
		return
	}

	t.cancel()
	t.cancel = nil
}

func (t *Timer) tick() {
	if !t.running || t.paused || t.remaining == 0 {
		return
	}

	t.remaining--

	if t.remaining == 0 {
		t.disarm()
	}

	if t.cb.OnTick != nil {
		t.cb.OnTick(t.remaining)
	}

	// callbacks may pause or reset the timer, so every check reads fresh state
	if !t.halfwayFired && t.crossedHalfway() {
		t.halfwayFired = true

		if t.cb.OnHalfway != nil {
			t.cb.OnHalfway()
		}
	}

	if !t.completeFired && t.remaining == 0 {
		t.completeFired = true

		if t.cb.OnComplete != nil {
			t.cb.OnComplete()
		}
	}
}

func (t *Timer) crossedHalfway() bool {
	return 2*t.remaining <= t.total
}

// Total returns the length of the countdown in seconds.
func (t *Timer) Total() int {
	return t.total
}

// Remaining returns the seconds left before completion.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Elapsed returns the seconds counted down so far.
func (t *Timer) Elapsed() int {
	return t.total - t.remaining
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Paused() bool {
	return t.paused
}

// Done reports whether the countdown has reached zero.
func (t *Timer) Done() bool {
	return t.remaining == 0
}

// Minutes returns the whole minutes left.
func (t *Timer) Minutes() int {
	return t.remaining / 60
}

// Seconds returns the seconds left within the current minute.
func (t *Timer) Seconds() int {
	return t.remaining % 60
}

// Progress returns the percentage of the countdown that has elapsed.
func (t *Timer) Progress() float64 {
	return float64(t.total-t.remaining) / float64(t.total) * 100
}
