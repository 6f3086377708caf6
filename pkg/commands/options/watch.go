package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

// WatchOptions keeps a listing on screen and redraws it periodically.
type WatchOptions struct {
	Watch bool
	Every string
}

func AddWatchArgs(cmd *cobra.Command, o *WatchOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Keep redrawing until interrupted.")
	cmd.Flags().StringVar(&o.Every, "every", "",
		`Redraw interval, example: --every=30s. Defaults to the refresh setting.`)
}

// Interval parses Every, falling back to def. Zero means neither was set.
func (o *WatchOptions) Interval(def string) (time.Duration, error) {
	raw := o.Every
	if raw == "" {
		raw = def
	}
	if raw == "" {
		return 0, nil
	}
	return timeutil.Parse(raw)
}
