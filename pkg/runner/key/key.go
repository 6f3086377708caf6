// Package key prints the glyph legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/printers"
)

// Key prints what each glyph in the listings means.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Legend(glyph.DefaultGlyphs())
	pp.NewLine()
	return nil
}
