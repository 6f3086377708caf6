// Package viewmodel derives what each widget shows from its collection. All
// functions are pure and are recomputed on every render.
package viewmodel

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/daybook/pkg/record"
)

// Filter selects which todos are listed.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in the order the UI cycles through them.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter accepts a filter name. Empty selects all.
func ParseFilter(raw string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	case "done":
		return FilterCompleted, nil
	case "open":
		return FilterActive, nil
	default:
		return "", fmt.Errorf("unknown filter %q, expected all, active or completed", raw)
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t record.Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles to the following filter.
func (f Filter) Next() Filter {
	all := Filters()
	for i, g := range all {
		if g == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

// Todos returns the todos passing f in store order. The count shown next to
// the list is the length of the result.
func Todos(todos []record.Todo, f Filter) []record.Todo {
	out := make([]record.Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// DaysRemaining is the number of calendar days from today to target, negative
// once target has passed.
func DaysRemaining(target, today record.Date) int {
	return target.DaysSince(today)
}

// CountdownRow is a countdown with its derived display fields.
type CountdownRow struct {
	record.Countdown
	Days  int    `json:"daysRemaining"`
	Label string `json:"label"`
}

// Countdowns sorts by date ascending, keeping insertion order for equal
// dates.
func Countdowns(cs []record.Countdown, today record.Date) []CountdownRow {
	rows := make([]CountdownRow, len(cs))
	for i, c := range cs {
		days := DaysRemaining(c.Date, today)
		rows[i] = CountdownRow{Countdown: c, Days: days, Label: CountdownLabel(days)}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Compare(rows[j].Date) < 0
	})
	return rows
}

// CountdownLabel phrases a day count: "today", "3 days from now", "1 day ago".
func CountdownLabel(days int) string {
	switch {
	case days == 0:
		return "today"
	case days > 0:
		return plural(days) + " from now"
	default:
		return plural(-days) + " ago"
	}
}

// MilestoneRow is a milestone with its derived display fields.
type MilestoneRow struct {
	record.Milestone
	Days  int    `json:"daysRemaining"`
	Label string `json:"label"`
}

// MilestoneView is the sorted milestone list. Rows before Split are pending,
// Split is len(Rows) when every milestone is pending. Completed counts the
// completed milestones for the separator drawn at Split.
type MilestoneView struct {
	Rows      []MilestoneRow
	Split     int
	Completed int
}

// HasSeparator reports whether a separator belongs between the pending and
// the closed milestones.
func (v MilestoneView) HasSeparator() bool {
	return v.Split > 0 && v.Split < len(v.Rows)
}

// Milestones sorts pending milestones first, then by date ascending within
// each partition. Ties keep insertion order.
func Milestones(ms []record.Milestone, today record.Date) MilestoneView {
	v := MilestoneView{Rows: make([]MilestoneRow, len(ms))}
	for i, m := range ms {
		days := DaysRemaining(m.Date, today)
		v.Rows[i] = MilestoneRow{Milestone: m, Days: days, Label: MilestoneLabel(m, days)}
		if m.Status == record.StatusCompleted {
			v.Completed++
		}
	}
	sort.SliceStable(v.Rows, func(i, j int) bool {
		a, b := v.Rows[i], v.Rows[j]
		if a.Pending() != b.Pending() {
			return a.Pending()
		}
		return a.Date.Compare(b.Date) < 0
	})
	v.Split = len(v.Rows)
	for i, r := range v.Rows {
		if !r.Pending() {
			v.Split = i
			break
		}
	}
	return v
}

// MilestoneLabel phrases a milestone's state relative to today.
func MilestoneLabel(m record.Milestone, days int) string {
	switch m.Status {
	case record.StatusCompleted:
		if m.CompletedDate != nil {
			return "completed (" + m.CompletedDate.Display() + ")"
		}
		return "completed"
	case record.StatusCancelled:
		return "cancelled"
	}
	switch {
	case days == 0:
		return "due today"
	case days > 0:
		return plural(days) + " left"
	default:
		return plural(-days) + " overdue"
	}
}

func plural(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
