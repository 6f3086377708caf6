package options

import (
	"testing"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/viewmodel"
)

func TestFilterFlag(t *testing.T) {
	o := &FilterOptions{}
	cmd := &cobra.Command{Use: "test"}
	AddFilterArgs(cmd, o)

	if got, err := o.Get(); err != nil || got != viewmodel.FilterAll {
		t.Fatalf("expected all by default, got %q, %v", got, err)
	}
	if err := cmd.Flags().Set("filter", "Active"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := o.Get(); got != viewmodel.FilterActive {
		t.Fatalf("expected active, got %q", got)
	}
	if err := cmd.Flags().Set("filter", "someday"); err == nil {
		t.Fatalf("expected unknown filter to be rejected")
	}
}
