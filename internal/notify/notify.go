// Package notify tells the player about finished missions and rest periods
// through desktop notifications, alert sounds and a user-defined command
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/guardian/internal/stats"
)

type (
	// Settings controls what the notifier does.
	Settings struct {
		// MissionSound and RestSound are paths to audio files. Empty
		// disables the sound.
		MissionSound   string
		RestSound      string
		MissionMessage string
		RestMessage    string
		// Cmd is run after every completed mission.
		Cmd     string
		IconDir string
		Enabled bool
	}

	// Alerter shows a desktop notification.
	Alerter func(title, message, icon string) error

	// Player plays an audio file to completion.
	Player func(path string) error

	// Runner executes argv with env appended to the process environment.
	Runner func(argv, env []string) error

	// Option customises a Notifier.
	Option func(*Notifier)
)

// Notifier sends notifications in the background so that callers are never
// blocked.
type Notifier struct {
	alert    Alerter
	play     Player
	run      Runner
	logger   *slog.Logger
	settings Settings
	wg       sync.WaitGroup
	// playback is serialised since the speaker is a process-wide resource
	soundMu sync.Mutex
}

func WithAlerter(a Alerter) Option {
	return func(n *Notifier) {
		n.alert = a
	}
}

func WithPlayer(p Player) Option {
	return func(n *Notifier) {
		n.play = p
	}
}

func WithRunner(r Runner) Option {
	return func(n *Notifier) {
		n.run = r
	}
}

// New creates a Notifier that reports failures to logger.
func New(settings Settings, logger *slog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		alert:    desktopAlert,
		play:     playSound,
		run:      runCommand,
		logger:   logger,
		settings: settings,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// MissionComplete announces a completed mission and starts the session
// command if one is configured.
func (n *Notifier) MissionComplete(rec stats.MissionRecord) {
	title := fmt.Sprintf("Mission complete: %s", rec.Task)
	msg := fmt.Sprintf(
		"%d minute mission done. %s",
		rec.DurationMinutes,
		n.settings.MissionMessage,
	)

	n.send(title, msg, n.settings.MissionSound)
	n.RunCmd(rec)
}

// RestComplete announces the end of a rest period.
func (n *Notifier) RestComplete() {
	n.send("Rest is over", n.settings.RestMessage, n.settings.RestSound)
}

// RunCmd executes the configured session command. The mission is described
// to the command through GUARDIAN_TASK, GUARDIAN_MINUTES and
// GUARDIAN_MISSION_ID.
func (n *Notifier) RunCmd(rec stats.MissionRecord) {
	if n.settings.Cmd == "" {
		return
	}

	argv, err := shellquote.Split(n.settings.Cmd)
	if err != nil {
		n.logger.Error(
			"unable to parse session command",
			slog.String("cmd", n.settings.Cmd),
			slog.Any("error", err),
		)

		return
	}

	if len(argv) == 0 {
		return
	}

	env := []string{
		"GUARDIAN_TASK=" + rec.Task,
		"GUARDIAN_MINUTES=" + strconv.Itoa(rec.DurationMinutes),
		"GUARDIAN_MISSION_ID=" + rec.ID,
	}

	n.wg.Add(1)

	go func() {
		defer n.wg.Done()

		if err := n.run(argv, env); err != nil {
			n.logger.Error(
				"session command failed",
				slog.String("cmd", n.settings.Cmd),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until every notification in flight has been delivered.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) send(title, msg, sound string) {
	if !n.settings.Enabled {
		return
	}

	n.wg.Add(1)

	go func() {
		defer n.wg.Done()

		if err := n.alert(title, msg, n.icon()); err != nil {
			n.logger.Error(
				"unable to display notification",
				slog.String("title", title),
				slog.Any("error", err),
			)
		}

		if sound == "" {
			return
		}

		n.soundMu.Lock()
		defer n.soundMu.Unlock()

		if err := n.play(sound); err != nil {
			n.logger.Error(
				"unable to play sound",
				slog.String("sound", sound),
				slog.Any("error", err),
			)
		}
	}()
}

// icon is empty if no icon has been installed.
func (n *Notifier) icon() string {
	if n.settings.IconDir == "" {
		return ""
	}

	path, _ := xdg.SearchDataFile(filepath.Join(n.settings.IconDir, "icon.png"))

	return path
}

func desktopAlert(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

func runCommand(argv, env []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), env...)

	return cmd.Run()
}
