package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeline"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.Local)

func newTestService(t *testing.T) *Service {
	t.Helper()
	n := 0
	svc, err := app.Open(context.Background(), store.NewMemory(nil),
		app.WithClock(func() time.Time { return fixedNow }),
		app.WithIDs(func() record.ID {
			n++
			return record.ID(fmt.Sprintf("id-%d", n))
		}),
	)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return NewService(svc, timeline.Options{})
}

func callTool(t *testing.T, svc *Service, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	srv := NewServer(svc, "", "")
	tool := srv.GetTool(name)
	if tool == nil {
		t.Fatalf("tool %s is not registered", name)
	}
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s returned error: %v", name, err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestServiceTodoLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddTodo(ctx, "buy milk"); err != nil {
		t.Fatalf("AddTodo failed: %v", err)
	}
	if _, err := svc.AddTodo(ctx, "walk dog"); err != nil {
		t.Fatalf("AddTodo failed: %v", err)
	}

	toggled, err := svc.ToggleTodo(ctx, "2")
	if err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}
	if toggled.ID != "id-2" || !toggled.Completed {
		t.Fatalf("expected id-2 completed, got %+v", toggled)
	}

	active, err := svc.ListTodos("active")
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if active.Count != 1 || active.Todos[0].Text != "buy milk" {
		t.Fatalf("unexpected active list: %+v", active)
	}

	n, err := svc.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 cleared, got %d", n)
	}

	id, err := svc.DeleteTodo(ctx, "id-1")
	if err != nil {
		t.Fatalf("DeleteTodo failed: %v", err)
	}
	if id != "id-1" {
		t.Fatalf("expected id-1 deleted, got %s", id)
	}
	if _, err := svc.DeleteTodo(ctx, "id-1"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceRefsFollowSortedOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddCountdown(ctx, "Launch", "2026-05-01"); err != nil {
		t.Fatalf("AddCountdown failed: %v", err)
	}
	if _, err := svc.AddCountdown(ctx, "Trip", "2026-03-20"); err != nil {
		t.Fatalf("AddCountdown failed: %v", err)
	}

	// Trip sorts first, so position 1 is the second countdown added.
	row, err := svc.SetCountdownDate(ctx, "1", "2026-03-11")
	if err != nil {
		t.Fatalf("SetCountdownDate failed: %v", err)
	}
	if row.Name != "Trip" || row.Days != 1 || row.Label != "1 day from now" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestServiceMilestoneStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddMilestone(ctx, "Beta", "2026-03-15"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}
	row, err := svc.SetMilestoneStatus(ctx, "id-1", "completed")
	if err != nil {
		t.Fatalf("SetMilestoneStatus failed: %v", err)
	}
	if row.CompletedDate == nil || row.CompletedDate.String() != "2026-03-10" {
		t.Fatalf("expected completion stamped today, got %+v", row.CompletedDate)
	}
	if !strings.HasPrefix(row.Label, "completed") {
		t.Fatalf("unexpected label %q", row.Label)
	}

	if _, err := svc.SetMilestoneStatus(ctx, "id-1", "someday"); !errors.Is(err, app.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	layout, err := svc.Timeline()
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if !layout.Empty || len(layout.Points) != 0 {
		t.Fatalf("expected empty timeline, got %+v", layout)
	}
}

func TestServiceTimelineWindow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.AddMilestone(ctx, "Beta", "2026-03-15"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}
	layout, err := svc.Timeline()
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if layout.Start != "2026-03-10" || layout.End != "2026-04-23" || layout.Days != 44 {
		t.Fatalf("unexpected window: %+v", layout)
	}
	if len(layout.Points) != 1 || layout.Points[0].Name != "Beta" {
		t.Fatalf("unexpected points: %+v", layout.Points)
	}
}

func TestServiceTimelineUsesConfiguredWindow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	svc.TimelineOptions = timeline.Options{MinDays: 10, MarginDays: 5}

	if _, err := svc.AddMilestone(ctx, "Beta", "2026-03-15"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}
	layout, err := svc.Timeline()
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if layout.End != "2026-03-25" || layout.Days != 15 {
		t.Fatalf("configured window ignored: %+v", layout)
	}
}

func TestServiceWithoutApp(t *testing.T) {
	var svc Service
	if _, err := svc.ListTodos(""); !errors.Is(err, ErrNoService) {
		t.Fatalf("expected ErrNoService, got %v", err)
	}
}

func TestToolAddTodo(t *testing.T) {
	svc := newTestService(t)

	res := callTool(t, svc, "add_todo", map[string]any{"text": "buy milk"})
	if res.IsError {
		t.Fatalf("add_todo failed: %s", resultText(t, res))
	}
	var got record.Todo
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if got.Text != "buy milk" || got.Completed || got.ID != "id-1" {
		t.Fatalf("unexpected todo: %+v", got)
	}
	if len(svc.App.Todos()) != 1 {
		t.Fatalf("expected 1 todo stored, got %d", len(svc.App.Todos()))
	}
}

func TestToolValidationIsToolError(t *testing.T) {
	svc := newTestService(t)

	res := callTool(t, svc, "add_countdown", map[string]any{"name": "Launch", "date": "2026-02-30"})
	if !res.IsError {
		t.Fatalf("expected tool error for invalid date")
	}
	if len(svc.App.Countdowns()) != 0 {
		t.Fatalf("expected no countdown stored")
	}

	res = callTool(t, svc, "toggle_todo", map[string]any{})
	if !res.IsError {
		t.Fatalf("expected tool error for missing ref")
	}
}

func TestToolListMilestones(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	if _, err := svc.AddMilestone(ctx, "GA", "2026-04-01"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}
	if _, err := svc.AddMilestone(ctx, "Beta", "2026-03-15"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}

	res := callTool(t, svc, "list_milestones", nil)
	if res.IsError {
		t.Fatalf("list_milestones failed: %s", resultText(t, res))
	}
	var got MilestoneList
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if got.Count != 2 || got.Pending != 2 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Milestones[0].Name != "Beta" || got.Milestones[0].Label != "5 days left" {
		t.Fatalf("unexpected first milestone: %+v", got.Milestones[0])
	}
}

func TestParseTransport(t *testing.T) {
	for raw, want := range map[string]Transport{"": TransportHTTP, "HTTP": TransportHTTP, "stdio": TransportStdio} {
		got, err := ParseTransport(raw)
		if err != nil {
			t.Fatalf("ParseTransport(%q) failed: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseTransport(%q) = %s, want %s", raw, got, want)
		}
	}
	if _, err := ParseTransport("carrier-pigeon"); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}
