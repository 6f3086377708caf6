// Package todo runs the todo subcommands.
package todo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/viewmodel"
)

var errNoService = errors.New("todo: no service")

// List prints the todos passing Filter.
type List struct {
	Service *app.Service
	Filter  viewmodel.Filter
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *List) Do(_ context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	rows := viewmodel.Todos(n.Service.Todos(), n.Filter)
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(rows)
	}
	pp.Todos(rows, n.Filter)
	return nil
}

// Add appends a todo and prints the list.
type Add struct {
	Service *app.Service
	Text    string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	t, err := n.Service.AddTodo(ctx, n.Text)
	if err != nil {
		return err
	}
	if n.JSON {
		pp := printers.PrettyPrint{Out: n.Out}
		return pp.JSON(t)
	}
	list := List{Service: n.Service, Filter: viewmodel.FilterAll, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

// Toggle flips the completed flag of the referenced todo. Ref is an id, an id
// prefix or a position in the Filter listing.
type Toggle struct {
	Service *app.Service
	Filter  viewmodel.Filter
	Ref     string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *Toggle) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	id, err := app.Resolve(viewmodel.Todos(n.Service.Todos(), n.Filter), n.Ref)
	if err != nil {
		return err
	}
	t, err := n.Service.ToggleTodo(ctx, id)
	if err != nil {
		return err
	}
	if n.JSON {
		pp := printers.PrettyPrint{Out: n.Out}
		return pp.JSON(t)
	}
	list := List{Service: n.Service, Filter: n.Filter, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

// Remove deletes the referenced todo.
type Remove struct {
	Service *app.Service
	Filter  viewmodel.Filter
	Ref     string
	ShowID  bool
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	id, err := app.Resolve(viewmodel.Todos(n.Service.Todos(), n.Filter), n.Ref)
	if err != nil {
		return err
	}
	if err := n.Service.DeleteTodo(ctx, id); err != nil {
		return err
	}
	list := List{Service: n.Service, Filter: n.Filter, ShowID: n.ShowID, Out: n.Out}
	return list.Do(ctx)
}

// Clear removes every completed todo.
type Clear struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	removed, err := n.Service.ClearCompleted(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out(n.Out), "Cleared %d completed %s.\n", removed, plural(removed, "todo"))
	return err
}
