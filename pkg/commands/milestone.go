package commands

import (
	"context"
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/runner/milestone"
	"tableflip.dev/daybook/pkg/snake"
	"tableflip.dev/daybook/pkg/viewmodel"
)

func addMilestone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"milestones", "ms"},
		Short:   base.Wrap80("Track dated milestones and their status."),
		Example: `
daybook milestone add Beta --on=2026-11-15
daybook milestone status 1 completed
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMilestoneAdd(cmd)
	addMilestoneList(cmd)
	addMilestoneStatus(cmd)
	addMilestoneDate(cmd)
	addMilestoneRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addMilestoneAdd(parent *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add <name...> --on=<date>",
		Short: base.Wrap80("Add a pending milestone."),
		Example: `
daybook milestone add Code freeze --on=11/30
daybook milestone add -i
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
				r := milestone.Add{
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

func addMilestoneList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   base.Wrap80("List milestones, pending ones first."),
		Args:    cobra.NoArgs,
		Example: `
daybook milestone list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := milestone.List{
					Service: s.svc,
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

func addMilestoneStatus(parent *cobra.Command) {
	io := &options.IDOptions{}
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "status <ref> [pending|completed|cancelled]",
		Short: base.Wrap80("Set the status of a milestone. Completing one stamps today as its completion date."),
		Args: func(cmd *cobra.Command, args []string) error {
			if in.Interactive {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, 0, 3)
			for _, st := range record.AllStatuses() {
				names = append(names, string(st))
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		Example: `
daybook milestone status 1 completed
daybook milestone status 1 -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				status := ""
				if len(args) > 1 {
					status = args[1]
				}
				if in.Interactive {
					current, err := currentStatus(s.svc, args[0])
					if err != nil {
						return err
					}
					st, err := snake.New(cmd).Status(current)
					if err != nil {
						return err
					}
					status = string(st)
				}
				r := milestone.Status{
					Service: s.svc,
					Ref:     args[0],
					Status:  status,
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, in)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

// currentStatus preselects the prompt with the status ref has now.
func currentStatus(svc *app.Service, ref string) (record.Status, error) {
	rows := viewmodel.Milestones(svc.Milestones(), svc.Today()).Rows
	id, err := app.Resolve(rows, ref)
	if err != nil {
		return "", err
	}
	for _, r := range rows {
		if r.ID == id {
			return r.Status, nil
		}
	}
	return record.StatusPending, nil
}

func addMilestoneDate(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "date <ref> <date>",
		Short: base.Wrap80("Move a milestone to another date."),
		Args:  cobra.ExactArgs(2),
		Example: `
daybook milestone date 2 2026-12-01
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := milestone.Date{
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

func addMilestoneRemove(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   base.Wrap80("Delete a milestone."),
		Args:    cobra.ExactArgs(1),
		Example: `
daybook milestone rm 3
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := milestone.Remove{
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
