package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"atomicgo.dev/schedule"
)

// ErrStopped is returned when work is submitted to a loop that is no longer
// running.
var ErrStopped = errors.New("scheduler loop is not running")

const queueSize = 64

// Loop is a Scheduler backed by the wall clock. Timer callbacks and commands
// submitted with Do are executed sequentially on the goroutine that calls Run,
// so state owned by the loop needs no locking.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop. Callbacks are queued until Run is called.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Run executes queued callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Do runs fn on the loop and blocks until it returns. It must not be called
// from a callback that is itself running on the loop.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})

	if !l.post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Every implements Scheduler.
func (l *Loop) Every(interval time.Duration, fn func()) Cancel {
	var cancelled atomic.Bool

	task := schedule.Every(interval, func() bool {
		if cancelled.Load() {
			return false
		}

		return l.post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})

	return func() {
		cancelled.Store(true)
		task.Stop()
	}
}

// After implements Scheduler.
func (l *Loop) After(delay time.Duration, fn func()) Cancel {
	var cancelled atomic.Bool

	task := schedule.After(delay, func() {
		if cancelled.Load() {
			return
		}

		l.post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})

	return func() {
		cancelled.Store(true)
		task.Stop()
	}
}

func (l *Loop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}
