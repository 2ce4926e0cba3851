package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/guardian/internal/session"
)

func paths(t *testing.T) (dbPath, statusPath string) {
	t.Helper()

	dir := t.TempDir()

	return filepath.Join(dir, "guardian.db"), filepath.Join(dir, "status.json")
}

func init() {
	lockTimeout = 50 * time.Millisecond
	probeTimeout = 20 * time.Millisecond
}

func TestAcquireIsExclusive(t *testing.T) {
	dbPath, statusPath := paths(t)

	inst, err := Acquire(dbPath, statusPath, "v1.0.0")
	require.NoError(t, err)

	_, err = Acquire(dbPath, statusPath, "v1.0.0")
	assert.ErrorIs(t, err, ErrRunning)

	require.NoError(t, inst.Release())

	inst, err = Acquire(dbPath, statusPath, "v1.0.0")
	require.NoError(t, err)
	require.NoError(t, inst.Release())
}

func TestInstanceInfo(t *testing.T) {
	dbPath, statusPath := paths(t)

	inst, err := Acquire(dbPath, statusPath, "v1.2.3")
	require.NoError(t, err)

	defer inst.Release()

	info, err := inst.Info()
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, os.Getpid(), info.PID)
	assert.WithinDuration(t, time.Now(), info.StartedAt, time.Minute)
}

func TestStatusRoundTrip(t *testing.T) {
	dbPath, statusPath := paths(t)

	inst, err := Acquire(dbPath, statusPath, "v1.0.0")
	require.NoError(t, err)

	s, err := ReadStatus(dbPath, statusPath)
	require.NoError(t, err)
	assert.Nil(t, s, "no status is published before the first write")

	want := Status{
		UpdatedAt: time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC),
		Snapshot: session.Snapshot{
			Phase:     session.Focusing,
			Task:      "Study",
			Minutes:   25,
			Remaining: 1200,
			Total:     1500,
			Progress:  20,
		},
	}

	require.NoError(t, inst.WriteStatus(want))

	got, err := ReadStatus(dbPath, statusPath)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, inst.Release())

	_, err = os.Stat(statusPath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	got, err = ReadStatus(dbPath, statusPath)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadStatusWithoutInstance(t *testing.T) {
	dbPath, statusPath := paths(t)

	s, err := ReadStatus(dbPath, statusPath)
	require.NoError(t, err)
	assert.Nil(t, s)

	// a stale status file is ignored when nobody holds the lock
	require.NoError(t, os.WriteFile(statusPath, []byte(`{"phase":"focusing"}`), 0o600))

	inst, err := Acquire(dbPath, filepath.Join(t.TempDir(), "other.json"), "v1")
	require.NoError(t, err)
	require.NoError(t, inst.Release())

	s, err = ReadStatus(dbPath, statusPath)
	require.NoError(t, err)
	assert.Nil(t, s)
}
