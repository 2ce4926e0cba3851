package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()

	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())

	go l.Run(ctx)

	t.Cleanup(cancel)

	return l, cancel
}

func TestLoopDo(t *testing.T) {
	l, _ := startLoop(t)

	var value int

	require.NoError(t, l.Do(func() { value = 42 }))
	assert.Equal(t, 42, value)
}

func TestLoopDoAfterStop(t *testing.T) {
	l, cancel := startLoop(t)

	cancel()
	<-l.Done()

	assert.ErrorIs(t, l.Do(func() {}), ErrStopped)
}

func TestLoopEveryRunsOnLoop(t *testing.T) {
	l, _ := startLoop(t)

	fired := make(chan struct{}, 8)

	cancel := l.Every(10*time.Millisecond, func() {
		fired <- struct{}{}
	})

	for range 3 {
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("periodic callback did not fire")
		}
	}

	require.NoError(t, l.Do(cancel))

	// nothing may run once cancel has returned on the loop
	var late int

	require.NoError(t, l.Do(func() { late = len(fired) }))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, l.Do(func() {}))
	assert.Equal(t, late, len(fired))
}

func TestLoopAfterCancelled(t *testing.T) {
	l, _ := startLoop(t)

	fired := make(chan struct{}, 1)

	cancel := l.After(20*time.Millisecond, func() {
		fired <- struct{}{}
	})

	require.NoError(t, l.Do(cancel))

	select {
	case <-fired:
		t.Fatal("cancelled callback fired")
	case <-time.After(100 * time.Millisecond):
	}
}
