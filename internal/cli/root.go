// Package cli wires configuration, logging and the todo services into the
// taskmaster command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Makepad-fr/taskmaster/internal/config"
	"github.com/Makepad-fr/taskmaster/internal/gateway"
	"github.com/Makepad-fr/taskmaster/internal/logging"
	"github.com/Makepad-fr/taskmaster/internal/reminder"
	"github.com/Makepad-fr/taskmaster/internal/store"
	"github.com/Makepad-fr/taskmaster/internal/todolist"
	"github.com/Makepad-fr/taskmaster/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Main runs the command line and returns the process exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCommand(os.Stdout, os.Stderr)
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(os.Stderr, err.Error())
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		return 1
	}
	return 0
}

// app holds what every command needs once flags are parsed.
type app struct {
	flags config.Flags
	out   io.Writer
	errw  io.Writer

	cfg      *config.Config
	log      *log.Logger
	closeLog func() error
	session  string
}

// NewRootCommand builds the command tree writing to out and errw.
func NewRootCommand(out, errw io.Writer) *cobra.Command {
	a := &app{out: out, errw: errw}

	root := &cobra.Command{
		Use:           "taskmaster",
		Short:         "A todo list with reminders, backed by a remote todo API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errw)
	config.BindFlags(root.PersistentFlags(), &a.flags)

	root.AddCommand(
		a.newRunCommand(),
		a.newListCommand(),
		a.newSeedCommand(),
		a.newRemindCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Sources{Explicit: a.flags.ConfigFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyFlags(a.flags); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := ui.SetTheme(cfg.UI.Theme); err != nil {
		return err
	}
	a.cfg = cfg
	a.session = uuid.NewString()

	// the interactive screen owns the terminal, so it only logs to a file
	fallback := a.errw
	if interactive(cmd) {
		fallback = io.Discard
	}
	logger, closeLog, err := logging.Open(cfg.Log.File, fallback, logging.FromConfig(cfg.Log.Level, cfg.Log.Format))
	if err != nil {
		return err
	}
	a.log = logger.With("session", a.session)
	a.closeLog = closeLog
	a.log.Debug("config loaded", "gateway", cfg.Gateway.BaseURL, "interval", cfg.Reminder.Interval)
	return nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "run" || !cmd.HasParent()
}

// services is one session's object graph.
type services struct {
	store     *store.Store
	gateway   *gateway.Client
	list      *todolist.Service
	scheduler *reminder.Scheduler
}

func (a *app) services(onAlert func(reminder.Alert)) *services {
	st := store.New()
	gw := gateway.New(a.cfg.Gateway.BaseURL, gateway.Options{Logger: a.log.With("component", "gateway")})
	return &services{
		store:   st,
		gateway: gw,
		list: todolist.New(st, gw, todolist.Options{
			SeedOnEmpty: a.cfg.Create.SeedOnEmpty,
			Logger:      a.log.With("component", "todolist"),
		}),
		scheduler: reminder.New(st, &reminder.Queue{}, reminder.Options{
			Interval: a.cfg.Reminder.Interval,
			Logger:   a.log.With("component", "reminder"),
			OnAlert:  onAlert,
		}),
	}
}
