// Package schedule provides the periodic and delayed callbacks that drive
// countdowns. All callbacks issued by a Scheduler run one at a time.
package schedule

import "time"

// Cancel stops a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Scheduler runs callbacks after a delay or at a fixed interval.
type Scheduler interface {
	// Every runs fn once per interval until cancelled.
	Every(interval time.Duration, fn func()) Cancel
	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Cancel
}
