package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: base.Wrap80("Write every collection to stdout."),
		Args:  cobra.NoArgs,
		Example: `
daybook export > daybook.json
daybook export -o toml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := fo.Get()
			if err != nil {
				return oo.HandleError(err)
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := transfer.Export{
					Service: s.svc,
					Format:  format,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddFormatArgs(cmd, fo)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: base.Wrap80("Append records from an export or a browser localStorage dump. Records whose id is already stored are skipped."),
		Args:  cobra.ExactArgs(1),
		Example: `
daybook import daybook.json
daybook export | daybook import -
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := transfer.Import{
					Service: s.svc,
					Path:    args[0],
					In:      cmd.InOrStdin(),
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
