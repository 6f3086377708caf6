package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/store"
)

// Service owns the three collections and every mutation on them. UIs, the CLI
// and the MCP server share it so validation and persistence stay in one
// place. It is safe for concurrent use.
type Service struct {
	mu         sync.Mutex
	p          store.Persistence
	todos      *store.Store[record.Todo]
	countdowns *store.Store[record.Countdown]
	milestones *store.Store[record.Milestone]

	now   func() time.Time
	newID func() record.ID
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, used for today and createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the random id generator.
func WithIDs(gen func() record.ID) Option {
	return func(s *Service) { s.newID = gen }
}

// WithLogger sets the diagnostics logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// Open loads every collection from p. Corrupt blobs are logged and read as
// empty collections; any other read failure is returned.
func Open(ctx context.Context, p store.Persistence, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, errors.New("app: no persistence configured")
	}
	s := &Service{
		p:          p,
		todos:      store.New[record.Todo](p, record.KindTodo),
		countdowns: store.New[record.Countdown](p, record.KindCountdown),
		milestones: store.New[record.Milestone](p, record.KindMilestone),
		now:        time.Now,
		newID:      func() record.ID { return record.ID(uuid.NewString()) },
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads all collections, discarding in-memory state.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, load := range []func(context.Context) error{s.todos.Load, s.countdowns.Load, s.milestones.Load} {
		if err := load(ctx); err != nil {
			if errors.Is(err, store.ErrCorrupt) {
				s.log.Debug("ignoring unreadable collection", "err", err)
				continue
			}
			return fmt.Errorf("app: load: %w", err)
		}
	}
	return nil
}

// Close releases the persistence. Mutations are saved as they happen, so Close
// writes nothing.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.p.Close(); err != nil {
		return fmt.Errorf("app: close: %w", err)
	}
	return nil
}

// Watch subscribes to changes made to the persistence by other processes.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.p.Watch(ctx)
}

// Location describes where collections are persisted.
func (s *Service) Location() string {
	return s.p.Location()
}

// Today is the current calendar date.
func (s *Service) Today() record.Date {
	return record.DateOf(s.now())
}

func (s *Service) Todos() []record.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.All()
}

func (s *Service) Countdowns() []record.Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdowns.All()
}

func (s *Service) Milestones() []record.Milestone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.milestones.All()
}

// AddTodo appends an open todo.
func (s *Service) AddTodo(ctx context.Context, text string) (record.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return record.Todo{}, invalid("text", "", ErrEmptyText)
	}
	t := record.Todo{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: record.Timestamp{Time: s.now()},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.todos.Append(ctx, t); err != nil {
		return record.Todo{}, err
	}
	return t, nil
}

// ToggleTodo flips the completed flag.
func (s *Service) ToggleTodo(ctx context.Context, id record.ID) (record.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.todos.Update(ctx, id, func(t *record.Todo) error {
		t.Completed = !t.Completed
		return nil
	})
	return t, notFound(err, record.KindTodo, id)
}

// DeleteTodo removes a todo.
func (s *Service) DeleteTodo(ctx context.Context, id record.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return notFound(s.todos.Remove(ctx, id), record.KindTodo, id)
}

// ClearCompleted removes every completed todo and reports how many went.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.RemoveWhere(ctx, func(t record.Todo) bool { return t.Completed })
}

// AddCountdown appends a countdown to date.
func (s *Service) AddCountdown(ctx context.Context, name, date string) (record.Countdown, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return record.Countdown{}, invalid("name", "", ErrEmptyName)
	}
	d, err := parseDate(date)
	if err != nil {
		return record.Countdown{}, err
	}
	c := record.Countdown{
		ID:        s.newID(),
		Name:      name,
		Date:      d,
		CreatedAt: record.Timestamp{Time: s.now()},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.countdowns.Append(ctx, c); err != nil {
		return record.Countdown{}, err
	}
	return c, nil
}

// UpdateCountdownDate moves a countdown to a new date.
func (s *Service) UpdateCountdownDate(ctx context.Context, id record.ID, date string) (record.Countdown, error) {
	d, err := parseDate(date)
	if err != nil {
		return record.Countdown{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.countdowns.Update(ctx, id, func(c *record.Countdown) error {
		c.Date = d
		return nil
	})
	return c, notFound(err, record.KindCountdown, id)
}

// DeleteCountdown removes a countdown.
func (s *Service) DeleteCountdown(ctx context.Context, id record.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return notFound(s.countdowns.Remove(ctx, id), record.KindCountdown, id)
}

// AddMilestone appends a pending milestone.
func (s *Service) AddMilestone(ctx context.Context, name, date string) (record.Milestone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return record.Milestone{}, invalid("name", "", ErrEmptyName)
	}
	d, err := parseDate(date)
	if err != nil {
		return record.Milestone{}, err
	}
	m := record.Milestone{
		ID:        s.newID(),
		Name:      name,
		Date:      d,
		Status:    record.StatusPending,
		CreatedAt: record.Timestamp{Time: s.now()},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.milestones.Append(ctx, m); err != nil {
		return record.Milestone{}, err
	}
	return m, nil
}

// UpdateMilestoneStatus sets the status. Completing stamps today as the
// completed date; any other status clears it.
func (s *Service) UpdateMilestoneStatus(ctx context.Context, id record.ID, status string) (record.Milestone, error) {
	st, err := record.ParseStatus(status)
	if err != nil {
		return record.Milestone{}, invalid("status", status, ErrInvalidStatus)
	}
	today := s.Today()
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.milestones.Update(ctx, id, func(m *record.Milestone) error {
		m.Status = st
		if st == record.StatusCompleted {
			m.CompletedDate = &today
		} else {
			m.CompletedDate = nil
		}
		return nil
	})
	return m, notFound(err, record.KindMilestone, id)
}

// UpdateMilestoneDate moves a milestone to a new date.
func (s *Service) UpdateMilestoneDate(ctx context.Context, id record.ID, date string) (record.Milestone, error) {
	d, err := parseDate(date)
	if err != nil {
		return record.Milestone{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.milestones.Update(ctx, id, func(m *record.Milestone) error {
		m.Date = d
		return nil
	})
	return m, notFound(err, record.KindMilestone, id)
}

// DeleteMilestone removes a milestone.
func (s *Service) DeleteMilestone(ctx context.Context, id record.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return notFound(s.milestones.Remove(ctx, id), record.KindMilestone, id)
}

func parseDate(raw string) (record.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return record.Date{}, invalid("date", "", ErrEmptyDate)
	}
	d, err := record.ParseDate(raw)
	if err != nil {
		return record.Date{}, invalid("date", raw, ErrInvalidDate)
	}
	return d, nil
}

func notFound(err error, kind record.Kind, id record.ID) error {
	if errors.Is(err, store.ErrNoRecord) {
		return fmt.Errorf("%w: %s in %s", ErrNotFound, id, kind)
	}
	return err
}
