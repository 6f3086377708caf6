// Package timeline prints the milestone timeline.
package timeline

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	tl "tableflip.dev/daybook/pkg/timeline"
)

// Timeline draws the pending milestones on a track starting today.
type Timeline struct {
	Service *app.Service
	Options tl.Options
	Width   int
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// layoutJSON is the machine readable form of a layout.
type layoutJSON struct {
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Days   int         `json:"days"`
	Points []pointJSON `json:"points"`
}

type pointJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Position float64 `json:"position"`
	Overdue  bool    `json:"overdue"`
}

func (n *Timeline) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("timeline: no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	l, ok := tl.Compute(n.Service.Milestones(), n.Service.Today(), n.Options)
	if n.JSON {
		if !ok {
			return pp.JSON(nil)
		}
		return pp.JSON(toJSON(l))
	}
	pp.Timeline(l, n.Width)
	return nil
}

func toJSON(l tl.Layout) layoutJSON {
	out := layoutJSON{
		Start:  l.Start.String(),
		End:    l.End.String(),
		Days:   l.Days(),
		Points: make([]pointJSON, 0, len(l.Points)),
	}
	for _, p := range l.Points {
		out.Points = append(out.Points, pointJSON{
			ID:       p.Milestone.ID.String(),
			Name:     p.Milestone.Name,
			Date:     p.Milestone.Date.String(),
			Position: p.Position,
			Overdue:  p.Overdue,
		})
	}
	return out
}
