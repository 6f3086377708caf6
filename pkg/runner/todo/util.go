package todo

import (
	"io"

	"github.com/fatih/color"
)

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
