package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: base.Wrap80("Details about where collections are stored and what they hold."),
		Example: `
daybook info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				i := info.Info{
					Settings:    s.settings,
					Persistence: s.persistence,
					Service:     s.svc,
					Out:         cmd.OutOrStdout(),
				}
				return i.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
