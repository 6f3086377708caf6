package printers

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/timeline"
	"tableflip.dev/daybook/pkg/viewmodel"
)

const (
	// DefaultTrackWidth is the track width used when none is given.
	DefaultTrackWidth = 60
	minTrackWidth     = 10
)

// Track draws the window as a single line with today at the left edge and a
// node per milestone. The second line numbers the nodes in date order. Nodes
// that land on the same column show the later one's number.
func Track(l timeline.Layout, width int) (track string, numbers string) {
	if width < minTrackWidth {
		width = minTrackWidth
	}
	line := make([]rune, width)
	nums := make([]rune, width)
	for i := range line {
		line[i] = '─'
		nums[i] = ' '
	}
	line[0] = []rune(glyph.Today.String())[0]
	line[width-1] = '┤'

	for i, p := range l.Points {
		col := int(math.Round(p.Position * float64(width-1)))
		if col < 0 {
			col = 0
		}
		if col > width-1 {
			col = width - 1
		}
		line[col] = []rune(glyph.Node.String())[0]
		nums[col] = marker(i + 1)
	}
	return string(line), strings.TrimRight(string(nums), " ")
}

func marker(n int) rune {
	if n > 9 {
		return '+'
	}
	return rune('0' + n)
}

// Timeline prints the window, the track and a numbered legend of the pending
// milestones.
func (pp *PrettyPrint) Timeline(l timeline.Layout, width int) {
	pp.TitleWithCount("Timeline", len(l.Points), "pending milestone")
	if len(l.Points) == 0 {
		pp.none()
		return
	}

	faint := color.New(color.Faint)
	red := color.New(color.FgRed)

	_, _ = faint.Fprintf(pp.out(), "%s → %s (%d days)\n", l.Start.Display(), l.End.Display(), l.Days())
	track, numbers := Track(l, width)
	_, _ = fmt.Fprintln(pp.out(), track)
	_, _ = fmt.Fprintln(pp.out(), numbers)
	_, _ = fmt.Fprintln(pp.out())

	tbl := pp.table()
	for i, p := range l.Points {
		m := p.Milestone
		label := viewmodel.MilestoneLabel(m, viewmodel.DaysRemaining(m.Date, l.Start))
		if p.Overdue {
			label = red.Sprint(label)
		}
		pp.addRow(tbl, m.ID, i+1, glyph.Node, name(m.Name), m.Date.Display(), label)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}
