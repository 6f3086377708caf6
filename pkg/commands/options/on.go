package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/record"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions holds the date flag of dated records.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-2-28" or --on="2/28".`)
}

// GetOn normalizes the flag to YYYY-MM-DD. A month/day without a year means
// the next such day from today. Input that matches neither layout is returned
// as given so the service can reject it.
func (o *OnOptions) GetOn(today record.Date) string {
	return NormalizeDate(o.OnString, today)
}

// NormalizeDate is GetOn for a positional argument.
func NormalizeDate(raw string, today record.Date) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if t, err := time.Parse(layoutISO, raw); err == nil {
		return t.Format(record.DateLayout)
	}
	t, err := time.Parse(layoutISOShort, raw)
	if err != nil {
		return raw
	}
	d := record.NewDate(today.Year(), t.Month(), t.Day())
	// 1/3 on 12/5 means next January, not eleven months ago.
	if d.Compare(today) < 0 {
		d = record.NewDate(today.Year()+1, t.Month(), t.Day())
	}
	return d.String()
}
