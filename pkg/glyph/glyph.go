// Package glyph holds the symbols used to mark records in printed output.
package glyph

import "fmt"

type Glyph struct {
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Italic(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, italicCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Mark selects a glyph.
type Mark int

const (
	Open Mark = iota
	Done
	Cancelled
	Countdown
	Today
	Past
	Node
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Symbol: "●", Meaning: "open"},
		{Symbol: "✘", Meaning: "done"},
		{Symbol: "⦵", Meaning: "cancelled"},
		{Symbol: "○", Meaning: "upcoming"},
		{Symbol: "✷", Meaning: "today"},
		{Symbol: "‹", Meaning: "past"},
		{Symbol: "◆", Meaning: "milestone"},
	}
}

func (m Mark) Glyph() Glyph {
	g := DefaultGlyphs()
	if int(m) < 0 || int(m) >= len(g) {
		return Glyph{Symbol: "?", Meaning: "unknown"}
	}
	return g[m]
}

func (m Mark) String() string {
	return m.Glyph().Symbol
}

func (g Glyph) String() string {
	return g.Symbol
}
