// Package timeline places pending milestones on a date window starting today.
package timeline

import (
	"sort"

	"tableflip.dev/daybook/pkg/record"
)

const (
	// DefaultMinDays is the shortest window shown, counted from today.
	DefaultMinDays = 30
	// DefaultMarginDays is appended after the latest milestone.
	DefaultMarginDays = 14
)

// Options tunes the window. Zero values fall back to the defaults.
type Options struct {
	MinDays    int
	MarginDays int
}

func (o Options) withDefaults() Options {
	if o.MinDays <= 0 {
		o.MinDays = DefaultMinDays
	}
	if o.MarginDays < 0 {
		o.MarginDays = 0
	} else if o.MarginDays == 0 {
		o.MarginDays = DefaultMarginDays
	}
	return o
}

// Window is the date range drawn by the timeline.
type Window struct {
	Start record.Date
	End   record.Date
}

// Days is the length of the window.
func (w Window) Days() int {
	return w.End.DaysSince(w.Start)
}

// Position maps d into [0, 1] relative to the window. Dates before the start
// are clamped to 0.
func (w Window) Position(d record.Date) float64 {
	span := w.Days()
	if span <= 0 {
		return 0
	}
	off := d.DaysSince(w.Start)
	if off < 0 {
		return 0
	}
	return float64(off) / float64(span)
}

// Point is one milestone on the track.
type Point struct {
	Milestone record.Milestone
	Position  float64
	// Overdue is set for milestones dated before today; they sit at 0.
	Overdue bool
}

// Layout is the computed window with its points ordered by date.
type Layout struct {
	Window
	Points []Point
}

// Compute lays out the pending milestones of ms. It returns false when no
// milestone is pending, in which case nothing should be drawn.
func Compute(ms []record.Milestone, today record.Date, opts Options) (Layout, bool) {
	opts = opts.withDefaults()

	var pending []record.Milestone
	for _, m := range ms {
		if m.Pending() {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		return Layout{}, false
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Date.Compare(pending[j].Date) < 0
	})

	end := today.AddDays(opts.MinDays)
	if last := pending[len(pending)-1].Date; last.Compare(end) > 0 {
		end = last
	}
	l := Layout{Window: Window{Start: today, End: end.AddDays(opts.MarginDays)}}
	for _, m := range pending {
		l.Points = append(l.Points, Point{
			Milestone: m,
			Position:  l.Position(m.Date),
			Overdue:   m.Date.Compare(today) < 0,
		})
	}
	return l, true
}
