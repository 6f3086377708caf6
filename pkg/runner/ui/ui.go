// Package ui launches the interactive navigation shell.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeline"
	teaui "tableflip.dev/daybook/pkg/tui/app"
)

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("daybook ui needs an interactive terminal")

// UI runs the tab shell over Service. With Demo set it runs over an in-memory
// copy of StaticDemo instead and nothing is saved.
type UI struct {
	Service  *app.Service
	Demo     bool
	Refresh  time.Duration
	Timeline timeline.Options

	// IsTerminal reports whether the fd is a terminal. Defaults to isatty.
	IsTerminal func(fd uintptr) bool
}

func (d *UI) Do(ctx context.Context) error {
	isTerm := d.IsTerminal
	if isTerm == nil {
		isTerm = func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	if !isTerm(os.Stdin.Fd()) || !isTerm(os.Stdout.Fd()) {
		return ErrNoTerminal
	}

	svc := d.Service
	if d.Demo {
		demo, err := OpenDemo(ctx)
		if err != nil {
			return err
		}
		defer demo.Close(ctx)
		svc = demo
	}
	if svc == nil {
		return errors.New("ui: no service")
	}

	return teaui.Run(ctx, svc, teaui.Options{
		Refresh:  d.Refresh,
		Timeline: d.Timeline,
	})
}

// OpenDemo opens a service over a fresh in-memory store holding StaticDemo.
func OpenDemo(ctx context.Context) (*app.Service, error) {
	svc, err := app.Open(ctx, store.NewMemory(nil))
	if err != nil {
		return nil, err
	}
	if _, err := svc.Import(ctx, StaticDemo(svc.Today())); err != nil {
		return nil, fmt.Errorf("seed demo: %w", err)
	}
	return svc, nil
}
