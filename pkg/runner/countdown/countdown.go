// Package countdown runs the countdown subcommands.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/refresh"
	"tableflip.dev/daybook/pkg/viewmodel"
)

var errNoService = errors.New("countdown: no service")

const clearScreen = "\x1b[H\x1b[2J"

// List prints the countdowns by date. With Watch set it redraws every
// Interval, re-reading the store each time, until ctx is cancelled.
type List struct {
	Service  *app.Service
	ShowID   bool
	JSON     bool
	Watch    bool
	Interval time.Duration
	Out      io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if !n.Watch || n.JSON {
		return n.render()
	}
	return refresh.Run(ctx, n.Interval, func(ctx context.Context) error {
		if err := n.Service.Reload(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprint(out(n.Out), clearScreen)
		return n.render()
	})
}

func (n *List) render() error {
	rows := viewmodel.Countdowns(n.Service.Countdowns(), n.Service.Today())
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(rows)
	}
	pp.Countdowns(rows)
	return nil
}

// Add appends a countdown and prints the list.
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
	c, err := n.Service.AddCountdown(ctx, n.Name, n.Date)
	if err != nil {
		return err
	}
	if n.JSON {
		pp := printers.PrettyPrint{Out: n.Out}
		return pp.JSON(c)
	}
	list := List{Service: n.Service, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

// Date moves the referenced countdown. Ref is an id, an id prefix or a
// position in the list.
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
	c, err := n.Service.UpdateCountdownDate(ctx, id, n.Date)
	if err != nil {
		return err
	}
	if n.JSON {
		pp := printers.PrettyPrint{Out: n.Out}
		return pp.JSON(c)
	}
	list := List{Service: n.Service, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

// Remove deletes the referenced countdown.
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
	if err := n.Service.DeleteCountdown(ctx, id); err != nil {
		return err
	}
	list := List{Service: n.Service, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

func resolve(svc *app.Service, ref string) (record.ID, error) {
	return app.Resolve(viewmodel.Countdowns(svc.Countdowns(), svc.Today()), ref)
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
