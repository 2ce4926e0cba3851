package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/guardian/internal/config"
	"github.com/ayoisaiah/guardian/internal/notify"
	"github.com/ayoisaiah/guardian/internal/osutil"
	"github.com/ayoisaiah/guardian/internal/schedule"
	"github.com/ayoisaiah/guardian/internal/server"
	"github.com/ayoisaiah/guardian/internal/session"
	"github.com/ayoisaiah/guardian/internal/stats"
	"github.com/ayoisaiah/guardian/internal/store"
	"github.com/ayoisaiah/guardian/internal/timeutil"
	"github.com/ayoisaiah/guardian/internal/tui"
	"github.com/ayoisaiah/guardian/internal/ui"
)

const (
	envNoColor         = "NO_COLOR"
	envGuardianNoColor = "GUARDIAN_NO_COLOR"
)

const shutdownTimeout = 2 * time.Second

var logFile io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the guardian
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// statusAction handles the status command and prints the state of the mission
// in the running instance, if any.
func statusAction(_ *cli.Context) error {
	status, err := store.ReadStatus(config.DBFilePath(), config.StatusFilePath())
	if err != nil {
		return err
	}

	if status == nil {
		pterm.Info.Println("guardian is not running")
		return nil
	}

	_, err = fmt.Fprintln(config.Stdout, formatStatus(status.Snapshot))

	return err
}

// formatStatus renders a snapshot as a single line.
func formatStatus(s session.Snapshot) string {
	var line string

	switch s.Phase {
	case session.Focusing:
		line = fmt.Sprintf(
			"[%s] %s: %s",
			ui.Green("Focusing"),
			s.Task,
			timeutil.Clock(s.Remaining),
		)
	case session.Tired:
		line = fmt.Sprintf(
			"[%s] %s: %s (resting shortly)",
			ui.Yellow("Tired"),
			s.Task,
			timeutil.Clock(s.Remaining),
		)
	case session.Resting:
		line = fmt.Sprintf(
			"[%s] %s: %s of rest left",
			ui.Blue("Resting"),
			s.Task,
			timeutil.Clock(s.RestRemaining),
		)
	case session.Completed:
		line = fmt.Sprintf("[%s] %s", ui.Green("Completed"), s.Task)
	case session.Aborted:
		line = fmt.Sprintf("[%s] %s", ui.Red("Aborted"), s.Task)
	default:
		return "No mission in progress"
	}

	if s.Paused {
		line += " (paused)"
	}

	return line
}

// badgesAction handles the badges command and lists every badge with its
// requirement.
func badgesAction(_ *cli.Context) error {
	printBadges(config.Stdout)

	return nil
}

func printBadges(w io.Writer) {
	rows := [][]string{{"BADGE", "DESCRIPTION", "REQUIREMENT"}}

	for _, r := range stats.Rules() {
		rows = append(rows, []string{
			r.Name,
			r.Description,
			strconv.Itoa(r.Requirement),
		})
	}

	ui.PrintTable(rows, w)
}

// instance is everything a running guardian owns.
type instance struct {
	loop     *schedule.Loop
	machine  *session.Machine
	engine   *Engine
	ledger   *stats.Ledger
	notifier *notify.Notifier
	logger   *slog.Logger
}

func newInstance(cfg *config.Config, lock *store.Instance, logger *slog.Logger) *instance {
	ledger := stats.NewLedger(cfg.Profile.UserName)
	loop := schedule.NewLoop()

	machine := session.New(loop, ledger, session.Settings{
		RestDuration:   cfg.Rest.Duration,
		GraceDelay:     cfg.Mission.GraceDelay,
		MaxMinutes:     cfg.Mission.MaxMinutes,
		OverrideActive: cfg.Mission.OverrideActive,
	})

	notifier := notify.New(notify.Settings{
		MissionSound:   config.SoundPath(cfg.Mission.Sound),
		RestSound:      config.SoundPath(cfg.Rest.Sound),
		MissionMessage: cfg.Mission.Message,
		RestMessage:    cfg.Rest.Message,
		Cmd:            cfg.Settings.Cmd,
		IconDir:        config.Dir(),
		Enabled:        cfg.Notifications.Enabled,
	}, logger)

	in := &instance{
		loop:     loop,
		machine:  machine,
		engine:   NewEngine(loop, machine),
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
	}

	machine.Subscribe(session.Hooks{
		OnMissionComplete: notifier.MissionComplete,
		OnRestComplete:    notifier.RestComplete,
	})

	machine.Subscribe(in.logHooks())

	if lock != nil {
		machine.Subscribe(in.statusHooks(lock))
	}

	return in
}

func (in *instance) logHooks() session.Hooks {
	return session.Hooks{
		OnPhaseChange: func(p session.Phase) {
			in.logger.Info("phase changed", slog.String("phase", p.String()))
		},
		OnMissionComplete: func(rec stats.MissionRecord) {
			in.logger.Info(
				"mission complete",
				slog.String("id", rec.ID),
				slog.String("task", rec.Task),
				slog.Int("minutes", rec.DurationMinutes),
			)
		},
		OnMissionAborted: func(rec stats.MissionRecord) {
			in.logger.Info(
				"mission aborted",
				slog.String("id", rec.ID),
				slog.String("task", rec.Task),
				slog.Int("minutes", rec.DurationMinutes),
			)
		},
	}
}

// statusHooks keeps the status file in step with the machine so that
// `guardian status` can read it from another process.
func (in *instance) statusHooks(lock *store.Instance) session.Hooks {
	write := func(s session.Snapshot) {
		err := lock.WriteStatus(store.Status{
			UpdatedAt: time.Now(),
			Snapshot:  s,
		})
		if err != nil {
			in.logger.Error("write status", slog.Any("error", err))
		}
	}

	return session.Hooks{
		OnTick: write,
		OnPhaseChange: func(session.Phase) {
			write(in.machine.Snapshot())
		},
	}
}

// shutdown stops the machine and the loop, then waits for pending
// notifications.
func (in *instance) shutdown(cancel context.CancelFunc) {
	if err := in.engine.Close(); err != nil {
		in.logger.Error("close machine", slog.Any("error", err))
	}

	cancel()
	<-in.loop.Done()
	in.notifier.Wait()
}

// defaultAction runs an interactive guardian instance and prints the player's
// report on exit.
func defaultAction(ctx *cli.Context) error {
	path := config.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(path),
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	if cfg.CLI.NoColor {
		disableStyling()
	}

	lock, err := store.Acquire(
		config.DBFilePath(),
		config.StatusFilePath(),
		config.Version,
	)
	if err != nil {
		return err
	}

	defer func() {
		if err := lock.Release(); err != nil {
			slog.Error("release instance lock", slog.Any("error", err))
		}
	}()

	logger := slog.Default()
	in := newInstance(cfg, lock, logger)

	var srv *server.Server

	if cfg.Settings.StatsPort > 0 {
		registry := server.NewRegistry()
		metrics := server.NewMetrics(registry)
		in.machine.Subscribe(metrics.Hooks())

		srv = server.New(cfg.Settings.StatsPort, in.engine.Report, registry, logger)
	}

	runCtx, cancel := context.WithCancel(ctx.Context)
	go in.loop.Run(runCtx)

	defer in.shutdown(cancel)

	if srv != nil {
		if err := srv.Start(); err != nil {
			return err
		}

		defer stopServer(srv, logger)

		pterm.Info.Printfln("Serving stats on http://%s", srv.Addr())
	}

	model := tui.New(in.engine, tui.Options{
		Logger: logger,
		Style: tui.NewStyle(
			cfg.Mission.Color,
			cfg.Rest.Color,
			cfg.Display.DarkTheme,
		),
		Task:           cfg.CLI.Task,
		UserName:       cfg.Profile.UserName,
		DefaultMinutes: cfg.MissionMinutes(),
		MaxMinutes:     cfg.Mission.MaxMinutes,
	})

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return err
	}

	report, err := in.engine.Report()
	if err != nil {
		return err
	}

	return report.Write(config.Stdout, stats.Format(cfg.CLI.Format))
}

func stopServer(srv *server.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("stop stats server", slog.Any("error", err))
	}
}

func disableStyling() {
	ui.DisableStyling()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/guardian/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envGuardianNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := config.InitializePaths(); err != nil {
		return err
	}

	file := rotatingFile(config.LogFilePath())
	logFile = file

	slog.SetDefault(newLogger(file))

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting guardian")

	if logFile != nil {
		return logFile.Close()
	}

	return nil
}
