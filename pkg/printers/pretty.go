package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/viewmodel"
)

// MaxNameWidth bounds names in tables; longer names end in an ellipsis.
const MaxNameWidth = 48

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", record.ShortLen+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints the title followed by "- N noun(s)".
func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out())
	default:
		_, _ = c.Fprintln(pp.out(), "s")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id record.ID) string {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	short := id.Short()
	return y.Sprint(short + strings.Repeat(" ", len(spacing)-len(short)-2))
}

// Todos prints an already filtered list. The count is the filtered count.
func (pp *PrettyPrint) Todos(todos []record.Todo, f viewmodel.Filter) {
	pp.TitleWithCount(fmt.Sprintf("Todos (%s)", f), len(todos), "todo")
	if len(todos) == 0 {
		pp.none()
		return
	}

	t := color.New()
	done := color.New(color.CrossedOut, color.Faint)
	for i, td := range todos {
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.out(), pp.id(td.ID)+"  ")
		}
		if td.Completed {
			_, _ = t.Fprintf(pp.out(), "%2d %s %s\n", i+1, glyph.Done, done.Sprint(td.Text))
		} else {
			_, _ = t.Fprintf(pp.out(), "%2d %s %s\n", i+1, glyph.Open, td.Text)
		}
	}
	_, _ = t.Fprintln(pp.out())
}

// Countdowns prints countdown rows in the order given.
func (pp *PrettyPrint) Countdowns(rows []viewmodel.CountdownRow) {
	pp.TitleWithCount("Countdowns", len(rows), "countdown")
	if len(rows) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl := pp.table()
	for i, r := range rows {
		mark := glyph.Countdown
		label := r.Label
		switch {
		case r.Days == 0:
			mark = glyph.Today
			label = bold.Sprint(label)
		case r.Days < 0:
			mark = glyph.Past
			label = faint.Sprint(label)
		}
		pp.addRow(tbl, r.ID, i+1, mark, name(r.Name), r.Date.Display(), label)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Milestones prints the sorted milestone list with a separator before the
// first milestone that is no longer pending.
func (pp *PrettyPrint) Milestones(v viewmodel.MilestoneView) {
	pp.TitleWithCount("Milestones", len(v.Rows), "milestone")
	if len(v.Rows) == 0 {
		pp.none()
		return
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)
	tbl := pp.table()
	for i, r := range v.Rows {
		if i == v.Split && v.HasSeparator() {
			sep := green.Sprintf("completed milestones (%d)", v.Completed)
			if pp.ShowID {
				tbl.AddRow("", "", "", sep)
			} else {
				tbl.AddRow("", "", sep)
			}
		}
		mark := glyph.Node
		label := r.Label
		switch {
		case r.Status == record.StatusCompleted:
			mark = glyph.Done
			label = green.Sprint(label)
		case r.Status == record.StatusCancelled:
			mark = glyph.Cancelled
			label = faint.Sprint(label)
		case r.Days < 0:
			label = red.Sprint(label)
		}
		pp.addRow(tbl, r.ID, i+1, mark, name(r.Name), r.Date.Display(), label)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Legend prints what every glyph means.
func (pp *PrettyPrint) Legend(glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Meaning"))
	for _, g := range glyfs {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.RightAlign(0)
	return tbl
}

func (pp *PrettyPrint) addRow(tbl *uitable.Table, id record.ID, n int, mark glyph.Mark, cells ...interface{}) {
	row := []interface{}{n}
	if pp.ShowID {
		row = append(row, pp.id(id))
	}
	row = append(row, mark.String())
	tbl.AddRow(append(row, cells...)...)
}

func name(s string) string {
	return truncate.StringWithTail(s, MaxNameWidth, "…")
}
