package options

import (
	"github.com/spf13/cobra"
)

// TimelineOptions sizes the printed track.
type TimelineOptions struct {
	Width int
}

func AddTimelineArgs(cmd *cobra.Command, o *TimelineOptions) {
	cmd.Flags().IntVar(&o.Width, "width", 60,
		"Width of the track in columns.")
}
