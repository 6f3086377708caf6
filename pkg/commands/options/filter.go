package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/daybook/pkg/viewmodel"
)

// FilterOptions selects which todos a command sees. Indexes given to toggle
// and rm count within the filtered list.
type FilterOptions struct {
	Filter string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	o.Filter = string(viewmodel.FilterAll)
	cmd.Flags().VarP((*filterValue)(&o.Filter), "filter", "f",
		"Todo filter: all, active or completed.")
}

func (o *FilterOptions) Get() (viewmodel.Filter, error) {
	return viewmodel.ParseFilter(o.Filter)
}

// filterValue rejects unknown filters while flags are parsed.
type filterValue string

var _ pflag.Value = (*filterValue)(nil)

func (v *filterValue) String() string { return string(*v) }

func (v *filterValue) Set(raw string) error {
	f, err := viewmodel.ParseFilter(raw)
	if err != nil {
		return err
	}
	*v = filterValue(f)
	return nil
}

func (v *filterValue) Type() string { return "filter" }
