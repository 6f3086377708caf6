package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/refresh"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeline"
)

// session is everything a command needs to read and change collections.
type session struct {
	settings    *store.Settings
	persistence store.Persistence
	svc         *app.Service
	log         *slog.Logger
}

func openSession(ctx context.Context) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))

	p, err := store.Load(settings)
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(ctx, p, app.WithLogger(log))
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	log.Debug("opened store", "driver", settings.Driver(), "location", p.Location())
	return &session{settings: settings, persistence: p, svc: svc, log: log}, nil
}

func (s *session) close(ctx context.Context) error {
	return s.svc.Close(ctx)
}

func (s *session) timeline() timeline.Options {
	return timeline.Options{
		MinDays:    s.settings.MinWindowDays,
		MarginDays: s.settings.MarginDays,
	}
}

func (s *session) refresh(wo *options.WatchOptions) (time.Duration, error) {
	if wo == nil {
		wo = &options.WatchOptions{}
	}
	d, err := wo.Interval(s.settings.RefreshEvery)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		d = refresh.DefaultInterval
	}
	return d, nil
}

// withSession opens the store, runs fn and closes the store again. Errors are
// reported through the --json aware output options.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	return withSessionContext(cmd.Context(), cmd, fn)
}

// withSessionContext is withSession under a context the command derived, such
// as one cancelled on interrupt.
func withSessionContext(ctx context.Context, cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cmd.SilenceUsage = true
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx)
	if err != nil {
		return oo.HandleError(err)
	}
	err = fn(ctx, s)
	if cerr := s.close(ctx); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return oo.HandleError(err)
}

// interruptible is the command context cancelled on SIGINT or SIGTERM.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
