package schedule

import (
	"slices"
	"time"
)

// Manual is a Scheduler driven by Advance instead of the wall clock. It is
// used to step countdowns deterministically.
type Manual struct {
	entries []*entry
	now     time.Duration
	seq     int
}

type entry struct {
	fn        func()
	due       time.Duration
	interval  time.Duration
	seq       int
	cancelled bool
}

// NewManual returns a manual scheduler positioned at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every implements Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) Cancel {
	if interval <= 0 {
		interval = time.Nanosecond
	}

	return m.add(interval, interval, fn)
}

// After implements Scheduler.
func (m *Manual) After(delay time.Duration, fn func()) Cancel {
	if delay < 0 {
		delay = 0
	}

	return m.add(delay, 0, fn)
}

// Advance moves the clock forward by d and runs every callback that falls due
// on the way, earliest first. Callbacks scheduled by other callbacks are run
// too if they fall due before the new time.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d

	for {
		e := m.next(target)
		if e == nil {
			break
		}

		m.now = e.due

		if e.interval > 0 {
			e.due += e.interval
		} else {
			e.cancelled = true
		}

		e.fn()
	}

	m.now = target
	m.compact()
}

// Now reports how far the clock has been advanced.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending reports the number of callbacks that are still scheduled.
func (m *Manual) Pending() int {
	var n int

	for _, e := range m.entries {
		if !e.cancelled {
			n++
		}
	}

	return n
}

func (m *Manual) add(delay, interval time.Duration, fn func()) Cancel {
	m.seq++

	e := &entry{
		fn:       fn,
		due:      m.now + delay,
		interval: interval,
		seq:      m.seq,
	}

	m.entries = append(m.entries, e)

	return func() {
		e.cancelled = true
	}
}

func (m *Manual) next(target time.Duration) *entry {
	var found *entry

	for _, e := range m.entries {
		if e.cancelled || e.due > target {
			continue
		}

		if found == nil || e.due < found.due ||
			(e.due == found.due && e.seq < found.seq) {
			found = e
		}
	}

	return found
}

func (m *Manual) compact() {
	m.entries = slices.DeleteFunc(m.entries, func(e *entry) bool {
		return e.cancelled
	})
}
