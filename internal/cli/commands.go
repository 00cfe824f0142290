package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/reminder"
	"github.com/Makepad-fr/taskmaster/internal/tui"
	"github.com/Makepad-fr/taskmaster/internal/ui"
	"github.com/spf13/cobra"
)

const defaultPanelWidth = 80

func (a *app) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive todo list (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func (a *app) runTUI(ctx context.Context) error {
	svc := a.services(nil)
	return tui.Run(ctx, tui.Options{
		Service:      svc.list,
		Scheduler:    svc.scheduler,
		Logger:       a.log.With("component", "tui"),
		Email:        a.cfg.Email,
		SessionID:    a.session,
		InitialLimit: a.cfg.Gateway.InitialLimit,
		Detail: func(width int, it model.Item) string {
			return ui.RenderMarkdown(width, ui.ItemMarkdown(it))
		},
	})
}

func (a *app) newListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch todos from the API and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Gateway.InitialLimit
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			svc := a.services(nil)
			if err := svc.list.Populate(cmd.Context(), limit); err != nil {
				return err
			}
			a.printItems(svc.store.Get())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of todos to fetch (defaults to gateway.initial_limit)")
	return cmd
}

func (a *app) newSeedCommand() *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add one random sample todo from the API and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.services(nil)
			it, err := svc.list.Seed(cmd.Context())
			if err != nil {
				return err
			}
			ui.OK(a.out, fmt.Sprintf("added sample todo #%d", it.ID))
			if details {
				fmt.Fprintln(a.out, ui.RenderMarkdown(ui.Width(a.out, defaultPanelWidth), ui.ItemMarkdown(it)))
				return nil
			}
			a.printItems([]model.Item{it})
			return nil
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "render the todo as a detail page")
	return cmd
}

func (a *app) newRemindCommand() *cobra.Command {
	var date, clock string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "remind <title> <description>",
		Short: "Create a todo with a reminder and wait for it to fire",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			svc := a.services(func(reminder.Alert) { cancel() })
			res, err := svc.list.Create(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if err := svc.list.AttachReminder(res.Item.ID, date, clock); err != nil {
				return err
			}
			ui.OK(a.out, fmt.Sprintf("reminder set for #%d at %s %s", res.Item.ID, date, clock))

			// fire anything already due without waiting a full interval
			if len(svc.scheduler.Tick(time.Now())) == 0 {
				err := svc.scheduler.Run(ctx)
				if errors.Is(err, context.DeadlineExceeded) {
					return fmt.Errorf("reminder did not fire within %s", timeout)
				}
				if err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
			}
			alerts := svc.scheduler.Queue().Drain()
			if len(alerts) == 0 {
				return ctx.Err()
			}
			for _, al := range alerts {
				ui.Panel(a.out, ui.AlertLines(a.out, al))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "reminder date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clock, "time", "", "reminder time (HH:MM)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 waits forever)")
	return cmd
}

func (a *app) printItems(items []model.Item) {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d",
		ui.Color(a.out, t.Title, "Todos"),
		ui.Color(a.out, t.Accent, "Total"), len(items),
	)
	lines := append([]string{header, ""}, ui.ItemLines(a.out, items, ui.Width(a.out, defaultPanelWidth))...)
	ui.Panel(a.out, lines)
}
