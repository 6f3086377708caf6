package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FormatOptions picks the export encoding.
type FormatOptions struct {
	Format string
}

func AddFormatArgs(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVarP(&o.Format, "format", "o", "json",
		"Output format. One of 'json' or 'toml'.")
}

func (o *FormatOptions) Get() (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(o.Format)); f {
	case "", "json":
		return "json", nil
	case "toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json or toml)", o.Format)
	}
}
