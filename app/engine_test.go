package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/guardian/internal/schedule"
	"github.com/ayoisaiah/guardian/internal/session"
	"github.com/ayoisaiah/guardian/internal/stats"
)

func runningEngine(t *testing.T) (*Engine, context.CancelFunc, *schedule.Loop) {
	t.Helper()

	loop := schedule.NewLoop()
	machine := session.New(loop, stats.NewLedger("Ada"), session.DefaultSettings())

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	return NewEngine(loop, machine), cancel, loop
}

func TestEngineCommands(t *testing.T) {
	e, _, _ := runningEngine(t)

	require.NoError(t, e.Start("Write report", 25))

	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, session.Focusing, snap.Phase)
	assert.Equal(t, "Write report", snap.Task)
	assert.Equal(t, 25*60, snap.Total)

	require.NoError(t, e.Pause())
	assert.ErrorIs(t, e.Pause(), session.ErrInvalidTransition)

	snap, err = e.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.Paused)

	require.NoError(t, e.Resume())
	require.NoError(t, e.EndEarly())

	report, err := e.Report()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Profile.AbortedMissions)
	require.Len(t, report.History, 1)
	assert.False(t, report.History[0].Completed)
}

func TestEngineRejectsInvalidInput(t *testing.T) {
	e, _, _ := runningEngine(t)

	assert.ErrorIs(t, e.Start("   ", 25), session.ErrInvalidInput)
	assert.ErrorIs(t, e.Start("Study", 0), session.ErrInvalidInput)
	assert.ErrorIs(t, e.EndEarly(), session.ErrInvalidTransition)
}

func TestEngineAfterLoopStops(t *testing.T) {
	e, cancel, loop := runningEngine(t)

	require.NoError(t, e.Start("Study", 25))
	require.NoError(t, e.Close())

	cancel()

	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	assert.ErrorIs(t, e.Pause(), schedule.ErrStopped)

	_, err := e.Snapshot()
	assert.ErrorIs(t, err, schedule.ErrStopped)
}
