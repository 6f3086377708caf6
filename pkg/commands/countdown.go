package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/countdown"
	"tableflip.dev/daybook/pkg/snake"
)

func addCountdown(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "countdown",
		Aliases: []string{"countdowns", "cd"},
		Short:   base.Wrap80("Count the days down to upcoming dates."),
		Example: `
daybook countdown add Launch --on=2026-12-01
daybook countdown list --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCountdownAdd(cmd)
	addCountdownList(cmd)
	addCountdownDate(cmd)
	addCountdownRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addCountdownAdd(parent *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add <name...> --on=<date>",
		Short: base.Wrap80("Add a countdown to a date."),
		Example: `
daybook countdown add Summer holiday --on=7/1
daybook countdown add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if in.Interactive {
				return nil
			}
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			if on.OnString == "" {
				return errors.New("requires --on")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return withSession(cmd, func(ctx context.Context, s *session) error {
				date := on.GetOn(s.svc.Today())
				if in.Interactive {
					var err error
					p := snake.New(cmd)
					if name, err = p.Name("Name", name); err != nil {
						return err
					}
					if date, err = p.Date("Date", date); err != nil {
						return err
					}
					date = options.NormalizeDate(date, s.svc.Today())
				}
				r := countdown.Add{
					Service: s.svc,
					Name:    name,
					Date:    date,
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOnArgs(cmd, on)
	options.InteractiveArgs(cmd, in)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addCountdownList(parent *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   base.Wrap80("List countdowns, soonest first."),
		Args:    cobra.NoArgs,
		Example: `
daybook countdown list
daybook countdown list -w --every=30s
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				every, err := s.refresh(wo)
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				r := countdown.List{
					Service:  s.svc,
					ShowID:   io.ShowID,
					JSON:     oo.JSON,
					Watch:    wo.Watch,
					Interval: every,
					Out:      cmd.OutOrStdout(),
				}
				if err := r.Do(ctx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddWatchArgs(cmd, wo)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addCountdownDate(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "date <ref> <date>",
		Short: base.Wrap80("Move a countdown to another date."),
		Args:  cobra.ExactArgs(2),
		Example: `
daybook countdown date 1 2027-01-15
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := countdown.Date{
					Service: s.svc,
					Ref:     args[0],
					Date:    options.NormalizeDate(args[1], s.svc.Today()),
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addCountdownRemove(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   base.Wrap80("Delete a countdown."),
		Args:    cobra.ExactArgs(1),
		Example: `
daybook countdown rm 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := countdown.Remove{
					Service: s.svc,
					Ref:     args[0],
					ShowID:  io.ShowID,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
