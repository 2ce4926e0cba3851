package notify

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/guardian/internal/stats"
)

type recorder struct {
	alerts []string
	sounds []string
	argv   [][]string
	env    [][]string
	mu     sync.Mutex
}

func (r *recorder) options() []Option {
	return []Option{
		WithAlerter(func(title, _, _ string) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.alerts = append(r.alerts, title)

			return nil
		}),
		WithPlayer(func(path string) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.sounds = append(r.sounds, path)

			return nil
		}),
		WithRunner(func(argv, env []string) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			r.argv = append(r.argv, argv)
			r.env = append(r.env, env)

			return nil
		}),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var record = stats.MissionRecord{
	ID:              "mission-1",
	Task:            "Write report",
	DurationMinutes: 25,
	Completed:       true,
}

func TestMissionComplete(t *testing.T) {
	r := &recorder{}

	n := New(Settings{
		Enabled:      true,
		MissionSound: "/sounds/bell.ogg",
		Cmd:          `notify-send "all done"`,
	}, discardLogger(), r.options()...)

	n.MissionComplete(record)
	n.Wait()

	assert.Equal(t, []string{"Mission complete: Write report"}, r.alerts)
	assert.Equal(t, []string{"/sounds/bell.ogg"}, r.sounds)
	require.Len(t, r.argv, 1)
	assert.Equal(t, []string{"notify-send", "all done"}, r.argv[0])
	assert.Equal(t, []string{
		"GUARDIAN_TASK=Write report",
		"GUARDIAN_MINUTES=25",
		"GUARDIAN_MISSION_ID=mission-1",
	}, r.env[0])
}

func TestRestComplete(t *testing.T) {
	r := &recorder{}

	n := New(Settings{Enabled: true}, discardLogger(), r.options()...)

	n.RestComplete()
	n.Wait()

	assert.Equal(t, []string{"Rest is over"}, r.alerts)
	assert.Empty(t, r.sounds)
	assert.Empty(t, r.argv)
}

func TestDisabledNotificationsStillRunCmd(t *testing.T) {
	r := &recorder{}

	n := New(Settings{
		Enabled:      false,
		MissionSound: "/sounds/bell.ogg",
		Cmd:          "touch done",
	}, discardLogger(), r.options()...)

	n.MissionComplete(record)
	n.RestComplete()
	n.Wait()

	assert.Empty(t, r.alerts)
	assert.Empty(t, r.sounds)
	assert.Len(t, r.argv, 1)
}

func TestRunCmdInvalid(t *testing.T) {
	r := &recorder{}

	n := New(Settings{Cmd: `echo "unterminated`}, discardLogger(), r.options()...)

	n.RunCmd(record)
	n.Wait()

	assert.Empty(t, r.argv)
}

func TestFailuresAreLogged(t *testing.T) {
	var buf safeBuffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := New(Settings{Enabled: true, RestSound: "/x.ogg"}, logger,
		WithAlerter(func(string, string, string) error {
			return errors.New("no notification daemon")
		}),
		WithPlayer(func(string) error {
			return errors.New("no audio device")
		}),
	)

	n.RestComplete()
	n.Wait()

	out := buf.String()
	assert.Contains(t, out, "no notification daemon")
	assert.Contains(t, out, "no audio device")
}

func TestDecodeSoundRejectsUnknownFormat(t *testing.T) {
	path := t.TempDir() + "/bell.txt"
	require.NoError(t, writeFile(path))

	_, _, err := decodeSound(path)
	assert.ErrorIs(t, err, errInvalidSoundFormat)
}
