package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/refresh"
	"tableflip.dev/daybook/pkg/runner/ui"
	"tableflip.dev/daybook/pkg/timeline"
)

func addUI(topLevel *cobra.Command) {
	demo := false

	cmd := &cobra.Command{
		Use:   "ui",
		Short: base.Wrap80("Open the tabbed text user interface."),
		Example: `
daybook ui
daybook ui --demo
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := interruptible(cmd)
			defer stop()

			if demo {
				cmd.SilenceUsage = true
				i := ui.UI{
					Demo:     true,
					Refresh:  refresh.DefaultInterval,
					Timeline: timeline.Options{},
				}
				return oo.HandleError(quietCancel(i.Do(ctx)))
			}
			return withSessionContext(ctx, cmd, func(ctx context.Context, s *session) error {
				every, err := s.refresh(nil)
				if err != nil {
					return err
				}
				i := ui.UI{
					Service:  s.svc,
					Refresh:  every,
					Timeline: s.timeline(),
				}
				return quietCancel(i.Do(ctx))
			})
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "Run over sample data kept in memory. Nothing is saved.")

	topLevel.AddCommand(cmd)
}

// quietCancel drops the error an interrupt leaves behind.
func quietCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
