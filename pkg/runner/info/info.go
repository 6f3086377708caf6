// Package info reports where daybook keeps its data and what is in it.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

type Info struct {
	Settings    *store.Settings
	Persistence store.Persistence
	Service     *app.Service
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "DAYBOOK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "DAYBOOK_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:  ", n.Settings.BasePath())
	_, _ = fmt.Fprintln(out, "Config.driver:", n.Settings.Driver())

	if n.Persistence == nil {
		return errors.New("failed to create persistence object")
	}
	_, _ = fmt.Fprintln(out, "Location:     ", n.Persistence.Location())

	_, _ = fmt.Fprintf(out, "Keys:\n")
	keys := n.Persistence.Keys(ctx)
	for _, k := range keys {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no keys")
	}
	_, _ = fmt.Fprintln(out)

	if n.Service != nil {
		pp := printers.PrettyPrint{Out: out}
		pp.Summary(n.Service.Summary())
	}
	return nil
}
