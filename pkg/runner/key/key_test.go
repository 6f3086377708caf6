package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/glyph"
)

func TestKeyListsEveryGlyph(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	k := Key{Out: &buf}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	for _, g := range glyph.DefaultGlyphs() {
		if !strings.Contains(buf.String(), g.Meaning) {
			t.Fatalf("missing %q in legend:\n%s", g.Meaning, buf.String())
		}
	}
}
