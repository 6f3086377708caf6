package timeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/store"
	tl "tableflip.dev/daybook/pkg/timeline"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	svc, err := app.Open(context.Background(), store.NewMemory(nil),
		app.WithClock(func() time.Time { return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local) }),
	)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return svc
}

func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := Timeline{Service: newService(t), Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !strings.Contains(buf.String(), "0 pending milestones") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	r.JSON = true
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "null" {
		t.Fatalf("expected null layout, got %q", buf.String())
	}
}

func TestJSONLayout(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.AddMilestone(ctx, "Beta", "2026-03-30"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}
	if _, err := svc.AddMilestone(ctx, "Overdue", "2026-03-01"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}

	var buf bytes.Buffer
	r := Timeline{Service: svc, Options: tl.Options{MinDays: 10, MarginDays: 5}, JSON: true, Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	var got layoutJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v\n%s", err, buf.String())
	}
	// 20 days to Beta plus a 5 day margin.
	if got.Start != "2026-03-10" || got.End != "2026-04-04" || got.Days != 25 {
		t.Fatalf("unexpected window: %+v", got)
	}
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got.Points))
	}
	for _, p := range got.Points {
		if p.Name == "Overdue" && (!p.Overdue || p.Position != 0) {
			t.Fatalf("expected overdue point clamped to the start: %+v", p)
		}
	}
}

func TestTrackIsDrawn(t *testing.T) {
	svc := newService(t)
	if _, err := svc.AddMilestone(context.Background(), "Beta", "2026-03-15"); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}
	var buf bytes.Buffer
	r := Timeline{Service: svc, Width: 40, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "(44 days)") || !strings.Contains(got, "Beta") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}
