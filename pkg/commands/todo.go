package commands

import (
	"context"
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/todo"
	"tableflip.dev/daybook/pkg/snake"
	"tableflip.dev/daybook/pkg/viewmodel"
)

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos", "t"},
		Short:   base.Wrap80("Manage the todo list."),
		Example: `
daybook todo add buy milk
daybook todo list active
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTodoAdd(cmd)
	addTodoList(cmd)
	addTodoToggle(cmd)
	addTodoRemove(cmd)
	addTodoClear(cmd)

	topLevel.AddCommand(cmd)
}

func addTodoAdd(parent *cobra.Command) {
	io := &options.IDOptions{}
	in := &options.InteractiveOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: base.Wrap80("Add a todo."),
		Example: `
daybook todo add call the plumber
`,
		Args: func(cmd *cobra.Command, args []string) error {
			text = strings.Join(args, " ")
			if len(args) < 1 && !in.Interactive {
				return errors.New("requires the todo text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Interactive && strings.TrimSpace(text) == "" {
				var err error
				if text, err = snake.New(cmd).Name("Todo", ""); err != nil {
					return err
				}
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := todo.Add{
					Service: s.svc,
					Text:    text,
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

func addTodoList(parent *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:       "list [all|active|completed]",
		Aliases:   []string{"ls"},
		Short:     base.Wrap80("List todos, optionally filtered."),
		ValidArgs: []string{"all", "active", "completed"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
daybook todo list
daybook todo list completed --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				fo.Filter = args[0]
			}
			filter, err := fo.Get()
			if err != nil {
				return oo.HandleError(err)
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := todo.List{
					Service: s.svc,
					Filter:  filter,
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	addFilterArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTodoToggle(parent *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:     "toggle <ref>",
		Aliases: []string{"done", "x"},
		Short:   base.Wrap80("Mark a todo done, or open again. A ref is an id, an id prefix or the number shown by list."),
		Args:    cobra.ExactArgs(1),
		Example: `
daybook todo toggle 2
daybook todo toggle 2 --filter=active
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := fo.Get()
			if err != nil {
				return oo.HandleError(err)
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := todo.Toggle{
					Service: s.svc,
					Filter:  filter,
					Ref:     args[0],
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	addFilterArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTodoRemove(parent *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   base.Wrap80("Delete a todo."),
		Args:    cobra.ExactArgs(1),
		Example: `
daybook todo rm 1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := fo.Get()
			if err != nil {
				return oo.HandleError(err)
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := todo.Remove{
					Service: s.svc,
					Filter:  filter,
					Ref:     args[0],
					ShowID:  io.ShowID,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	addFilterArgs(cmd, fo)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTodoClear(parent *cobra.Command) {
	in := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: base.Wrap80("Delete every completed todo."),
		Args:  cobra.NoArgs,
		Example: `
daybook todo clear
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Interactive {
				ok, err := snake.New(cmd).Confirm("Delete all completed todos")
				if err != nil || !ok {
					return oo.HandleError(err)
				}
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := todo.Clear{
					Service: s.svc,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.InteractiveArgs(cmd, in)
	base.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addFilterArgs(cmd *cobra.Command, fo *options.FilterOptions) {
	options.AddFilterArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("filter", filterArg)
}

// filterArg completes todo list filters.
func filterArg(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, 3)
	for _, f := range viewmodel.Filters() {
		names = append(names, string(f))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
