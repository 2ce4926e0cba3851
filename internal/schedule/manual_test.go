package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualEvery(t *testing.T) {
	m := NewManual()

	var ticks int

	cancel := m.Every(time.Second, func() { ticks++ })

	m.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, ticks)

	m.Advance(10 * time.Second)
	assert.Equal(t, 10, ticks)

	cancel()
	m.Advance(10 * time.Second)
	assert.Equal(t, 10, ticks)
	assert.Equal(t, 0, m.Pending())
}

func TestManualAfterRunsOnce(t *testing.T) {
	m := NewManual()

	var calls int

	m.After(3*time.Second, func() { calls++ })

	m.Advance(2 * time.Second)
	assert.Equal(t, 0, calls)

	m.Advance(time.Second)
	assert.Equal(t, 1, calls)

	m.Advance(time.Minute)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestManualOrdering(t *testing.T) {
	m := NewManual()

	var order []string

	m.After(2*time.Second, func() { order = append(order, "after-2s") })
	m.Every(time.Second, func() { order = append(order, "tick") })

	m.Advance(2 * time.Second)

	// the one-shot was scheduled first, so it wins the tie at 2s
	assert.Equal(t, []string{"tick", "after-2s", "tick"}, order)
	assert.Equal(t, 2*time.Second, m.Now())
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual()

	var fired bool

	m.After(time.Second, func() {
		m.After(time.Second, func() { fired = true })
	})

	m.Advance(2 * time.Second)
	assert.True(t, fired)
}

func TestManualCancelFromCallback(t *testing.T) {
	m := NewManual()

	var (
		ticks  int
		cancel Cancel
	)

	cancel = m.Every(time.Second, func() {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})

	m.Advance(time.Minute)
	assert.Equal(t, 3, ticks)
}
