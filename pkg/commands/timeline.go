package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/timeline"
)

func addTimeline(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	to := &options.TimelineOptions{}

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   base.Wrap80("Draw the pending milestones on a track that starts today."),
		Args:    cobra.NoArgs,
		Example: `
daybook timeline
daybook timeline --width=100
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := timeline.Timeline{
					Service: s.svc,
					Options: s.timeline(),
					Width:   to.Width,
					ShowID:  io.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddTimelineArgs(cmd, to)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
