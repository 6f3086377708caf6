// Package milestone runs the milestone subcommands.
package milestone

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/viewmodel"
)

var errNoService = errors.New("milestone: no service")

// List prints milestones pending first, each partition by date.
type List struct {
	Service *app.Service
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *List) Do(_ context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	v := viewmodel.Milestones(n.Service.Milestones(), n.Service.Today())
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(v.Rows)
	}
	pp.Milestones(v)
	return nil
}

// Add appends a pending milestone and prints the list.
type Add struct {
	Service *app.Service
	Name    string
	Date    string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	m, err := n.Service.AddMilestone(ctx, n.Name, n.Date)
	if err != nil {
		return err
	}
	return show(ctx, n.Service, m, n.ShowID, n.JSON, n.Out)
}

// Status sets the status of the referenced milestone. Ref is an id, an id
// prefix or a position in the list.
type Status struct {
	Service *app.Service
	Ref     string
	Status  string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *Status) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	id, err := resolve(n.Service, n.Ref)
	if err != nil {
		return err
	}
	m, err := n.Service.UpdateMilestoneStatus(ctx, id, n.Status)
	if err != nil {
		return err
	}
	return show(ctx, n.Service, m, n.ShowID, n.JSON, n.Out)
}

// Date moves the referenced milestone.
type Date struct {
	Service *app.Service
	Ref     string
	Date    string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *Date) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	id, err := resolve(n.Service, n.Ref)
	if err != nil {
		return err
	}
	m, err := n.Service.UpdateMilestoneDate(ctx, id, n.Date)
	if err != nil {
		return err
	}
	return show(ctx, n.Service, m, n.ShowID, n.JSON, n.Out)
}

// Remove deletes the referenced milestone.
type Remove struct {
	Service *app.Service
	Ref     string
	ShowID  bool
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	id, err := resolve(n.Service, n.Ref)
	if err != nil {
		return err
	}
	if err := n.Service.DeleteMilestone(ctx, id); err != nil {
		return err
	}
	list := List{Service: n.Service, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

// show prints m alone as JSON, or the whole list otherwise.
func show(ctx context.Context, svc *app.Service, m record.Milestone, showID, asJSON bool, out io.Writer) error {
	if asJSON {
		pp := printers.PrettyPrint{Out: out}
		return pp.JSON(m)
	}
	list := List{Service: svc, ShowID: showID, Out: out}
	return list.Do(ctx)
}

func resolve(svc *app.Service, ref string) (record.ID, error) {
	return app.Resolve(viewmodel.Milestones(svc.Milestones(), svc.Today()).Rows, ref)
}
