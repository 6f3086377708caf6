// Package mcp provides the Model Context Protocol server integration for daybook.
package mcp

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/timeline"
	"tableflip.dev/daybook/pkg/viewmodel"
)

// ErrNoService is returned when the server was built without a service.
var ErrNoService = errors.New("mcp: no daybook service")

// Service adapts app.Service to the shapes returned by the MCP tools.
// References accepted by the mutating calls are resolved against the same
// ordering the list calls return.
type Service struct {
	App             *app.Service
	TimelineOptions timeline.Options
}

// TodoList is the result of list_todos.
type TodoList struct {
	Filter viewmodel.Filter `json:"filter"`
	Count  int              `json:"count"`
	Todos  []record.Todo    `json:"todos"`
}

// CountdownList is the result of list_countdowns.
type CountdownList struct {
	Today      string                   `json:"today"`
	Count      int                      `json:"count"`
	Countdowns []viewmodel.CountdownRow `json:"countdowns"`
}

// MilestoneList is the result of list_milestones.
type MilestoneList struct {
	Today      string                   `json:"today"`
	Count      int                      `json:"count"`
	Pending    int                      `json:"pending"`
	Completed  int                      `json:"completed"`
	Milestones []viewmodel.MilestoneRow `json:"milestones"`
}

// TimelinePoint is one pending milestone placed on the window.
type TimelinePoint struct {
	ID       record.ID `json:"id"`
	Name     string    `json:"name"`
	Date     string    `json:"date"`
	Position float64   `json:"position"`
	Overdue  bool      `json:"overdue"`
}

// TimelineLayout is the result of get_timeline. Empty is set when nothing is
// pending.
type TimelineLayout struct {
	Empty  bool            `json:"empty"`
	Start  string          `json:"start,omitempty"`
	End    string          `json:"end,omitempty"`
	Days   int             `json:"days,omitempty"`
	Points []TimelinePoint `json:"points"`
}

// SummaryDTO is the result of get_summary.
type SummaryDTO struct {
	Today             string            `json:"today"`
	OpenTodos         int               `json:"openTodos"`
	CompletedTodos    int               `json:"completedTodos"`
	Countdowns        int               `json:"countdowns"`
	PastCountdowns    int               `json:"pastCountdowns"`
	PendingMilestones int               `json:"pendingMilestones"`
	OverdueMilestones int               `json:"overdueMilestones"`
	Next              *record.Milestone `json:"next,omitempty"`
}

// NewService wraps svc for the MCP server.
func NewService(svc *app.Service, opts timeline.Options) *Service {
	return &Service{App: svc, TimelineOptions: opts}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return ErrNoService
	}
	return nil
}

// ListTodos returns the todos matching filter, in store order.
func (s *Service) ListTodos(filter string) (*TodoList, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	f, err := viewmodel.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	todos := viewmodel.Todos(s.App.Todos(), f)
	return &TodoList{Filter: f, Count: len(todos), Todos: todos}, nil
}

// AddTodo creates an open todo.
func (s *Service) AddTodo(ctx context.Context, text string) (record.Todo, error) {
	if err := s.ready(); err != nil {
		return record.Todo{}, err
	}
	return s.App.AddTodo(ctx, text)
}

// ToggleTodo flips the completion of the todo ref names. Indexes count within
// the unfiltered list.
func (s *Service) ToggleTodo(ctx context.Context, ref string) (record.Todo, error) {
	if err := s.ready(); err != nil {
		return record.Todo{}, err
	}
	id, err := app.Resolve(s.App.Todos(), ref)
	if err != nil {
		return record.Todo{}, err
	}
	return s.App.ToggleTodo(ctx, id)
}

// DeleteTodo removes the todo ref names and returns its id.
func (s *Service) DeleteTodo(ctx context.Context, ref string) (record.ID, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	id, err := app.Resolve(s.App.Todos(), ref)
	if err != nil {
		return "", err
	}
	return id, s.App.DeleteTodo(ctx, id)
}

// ClearCompleted removes every completed todo.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.App.ClearCompleted(ctx)
}

func (s *Service) countdownRows() []viewmodel.CountdownRow {
	return viewmodel.Countdowns(s.App.Countdowns(), s.App.Today())
}

// ListCountdowns returns countdowns sorted by date with days remaining.
func (s *Service) ListCountdowns() (*CountdownList, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows := s.countdownRows()
	return &CountdownList{Today: s.App.Today().String(), Count: len(rows), Countdowns: rows}, nil
}

// AddCountdown creates a countdown to date.
func (s *Service) AddCountdown(ctx context.Context, name, date string) (viewmodel.CountdownRow, error) {
	if err := s.ready(); err != nil {
		return viewmodel.CountdownRow{}, err
	}
	c, err := s.App.AddCountdown(ctx, name, date)
	if err != nil {
		return viewmodel.CountdownRow{}, err
	}
	return s.countdownRow(c), nil
}

// SetCountdownDate moves the countdown ref names to date.
func (s *Service) SetCountdownDate(ctx context.Context, ref, date string) (viewmodel.CountdownRow, error) {
	if err := s.ready(); err != nil {
		return viewmodel.CountdownRow{}, err
	}
	id, err := app.Resolve(s.countdownRows(), ref)
	if err != nil {
		return viewmodel.CountdownRow{}, err
	}
	c, err := s.App.UpdateCountdownDate(ctx, id, date)
	if err != nil {
		return viewmodel.CountdownRow{}, err
	}
	return s.countdownRow(c), nil
}

// DeleteCountdown removes the countdown ref names and returns its id.
func (s *Service) DeleteCountdown(ctx context.Context, ref string) (record.ID, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	id, err := app.Resolve(s.countdownRows(), ref)
	if err != nil {
		return "", err
	}
	return id, s.App.DeleteCountdown(ctx, id)
}

func (s *Service) countdownRow(c record.Countdown) viewmodel.CountdownRow {
	days := viewmodel.DaysRemaining(c.Date, s.App.Today())
	return viewmodel.CountdownRow{Countdown: c, Days: days, Label: viewmodel.CountdownLabel(days)}
}

func (s *Service) milestoneView() viewmodel.MilestoneView {
	return viewmodel.Milestones(s.App.Milestones(), s.App.Today())
}

// ListMilestones returns milestones with pending ones first.
func (s *Service) ListMilestones() (*MilestoneList, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	v := s.milestoneView()
	return &MilestoneList{
		Today:      s.App.Today().String(),
		Count:      len(v.Rows),
		Pending:    v.Split,
		Completed:  v.Completed,
		Milestones: v.Rows,
	}, nil
}

// AddMilestone creates a pending milestone due on date.
func (s *Service) AddMilestone(ctx context.Context, name, date string) (viewmodel.MilestoneRow, error) {
	if err := s.ready(); err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	m, err := s.App.AddMilestone(ctx, name, date)
	if err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	return s.milestoneRow(m), nil
}

// SetMilestoneStatus changes the status of the milestone ref names.
func (s *Service) SetMilestoneStatus(ctx context.Context, ref, status string) (viewmodel.MilestoneRow, error) {
	if err := s.ready(); err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	id, err := app.Resolve(s.milestoneView().Rows, ref)
	if err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	m, err := s.App.UpdateMilestoneStatus(ctx, id, status)
	if err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	return s.milestoneRow(m), nil
}

// SetMilestoneDate moves the milestone ref names to date.
func (s *Service) SetMilestoneDate(ctx context.Context, ref, date string) (viewmodel.MilestoneRow, error) {
	if err := s.ready(); err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	id, err := app.Resolve(s.milestoneView().Rows, ref)
	if err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	m, err := s.App.UpdateMilestoneDate(ctx, id, date)
	if err != nil {
		return viewmodel.MilestoneRow{}, err
	}
	return s.milestoneRow(m), nil
}

// DeleteMilestone removes the milestone ref names and returns its id.
func (s *Service) DeleteMilestone(ctx context.Context, ref string) (record.ID, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	id, err := app.Resolve(s.milestoneView().Rows, ref)
	if err != nil {
		return "", err
	}
	return id, s.App.DeleteMilestone(ctx, id)
}

func (s *Service) milestoneRow(m record.Milestone) viewmodel.MilestoneRow {
	days := viewmodel.DaysRemaining(m.Date, s.App.Today())
	return viewmodel.MilestoneRow{Milestone: m, Days: days, Label: viewmodel.MilestoneLabel(m, days)}
}

// Timeline lays the pending milestones out on the window starting today.
func (s *Service) Timeline() (*TimelineLayout, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	l, ok := timeline.Compute(s.App.Milestones(), s.App.Today(), s.TimelineOptions)
	if !ok {
		return &TimelineLayout{Empty: true, Points: []TimelinePoint{}}, nil
	}
	out := &TimelineLayout{
		Start:  l.Start.String(),
		End:    l.End.String(),
		Days:   l.Days(),
		Points: make([]TimelinePoint, 0, len(l.Points)),
	}
	for _, p := range l.Points {
		out.Points = append(out.Points, TimelinePoint{
			ID:       p.Milestone.ID,
			Name:     p.Milestone.Name,
			Date:     p.Milestone.Date.String(),
			Position: p.Position,
			Overdue:  p.Overdue,
		})
	}
	return out, nil
}

// Summary counts what needs attention today.
func (s *Service) Summary() (*SummaryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sum := s.App.Summary()
	return &SummaryDTO{
		Today:             sum.Today.String(),
		OpenTodos:         sum.OpenTodos,
		CompletedTodos:    sum.CompletedTodos,
		Countdowns:        sum.Countdowns,
		PastCountdowns:    sum.PastCountdowns,
		PendingMilestones: sum.PendingMilestones,
		OverdueMilestones: sum.OverdueMilestones,
		Next:              sum.Next,
	}, nil
}

// Refresh re-reads the store so changes made by other processes show up.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.App.Reload(ctx)
}
