// Package transfer moves collections in and out of daybook.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/record"
)

var errNoService = errors.New("transfer: no service")

// Export writes every collection as JSON or TOML.
type Export struct {
	Service *app.Service
	Format  string
	Out     io.Writer
}

func (n *Export) Do(_ context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	snap := n.Service.Snapshot()
	switch n.Format {
	case "toml":
		return toml.NewEncoder(out(n.Out)).Encode(snap)
	case "", "json":
		pp := printers.PrettyPrint{Out: n.Out}
		return pp.JSON(snap)
	default:
		return fmt.Errorf("transfer: unsupported format %q", n.Format)
	}
}

// Import appends the records of a localStorage dump or a previous JSON
// export. Path "-" reads stdin.
type Import struct {
	Service *app.Service
	Path    string
	In      io.Reader
	Out     io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	data, err := n.read()
	if err != nil {
		return err
	}
	snap, err := app.DecodeDump(data)
	if err != nil {
		return err
	}
	res, err := n.Service.Import(ctx, snap)
	if err != nil {
		return err
	}
	for _, kind := range record.AllKinds() {
		_, _ = fmt.Fprintf(out(n.Out), "%s: %d imported, %d skipped\n", kind.Title(), res.Added[kind], res.Skipped[kind])
	}
	return nil
}

func (n *Import) read() ([]byte, error) {
	if n.Path == "-" {
		if n.In == nil {
			return io.ReadAll(os.Stdin)
		}
		return io.ReadAll(n.In)
	}
	data, err := os.ReadFile(n.Path)
	if err != nil {
		return nil, fmt.Errorf("transfer: read %s: %w", n.Path, err)
	}
	return data, nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
