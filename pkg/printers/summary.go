package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/viewmodel"
)

// Summary prints the per collection counts reported by app.Summary.
func (pp *PrettyPrint) Summary(s app.Summary) {
	pp.Title("Today is " + s.Today.Display())

	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Todos"), fmt.Sprintf("%d open, %d completed", s.OpenTodos, s.CompletedTodos))
	tbl.AddRow(bold.Sprint("Countdowns"), fmt.Sprintf("%d total, %d past", s.Countdowns, s.PastCountdowns))
	overdue := fmt.Sprintf("%d overdue", s.OverdueMilestones)
	if s.OverdueMilestones > 0 {
		overdue = red.Sprint(overdue)
	}
	tbl.AddRow(bold.Sprint("Milestones"), fmt.Sprintf("%d pending, %s", s.PendingMilestones, overdue))
	if s.Next != nil {
		days := viewmodel.DaysRemaining(s.Next.Date, s.Today)
		tbl.AddRow(bold.Sprint("Next"), fmt.Sprintf("%s, %s", name(s.Next.Name), viewmodel.MilestoneLabel(*s.Next, days)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
