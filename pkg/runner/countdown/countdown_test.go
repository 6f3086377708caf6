package countdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	n := 0
	svc, err := app.Open(context.Background(), store.NewMemory(nil),
		app.WithClock(func() time.Time { return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local) }),
		app.WithIDs(func() record.ID {
			n++
			return record.ID(fmt.Sprintf("id-%d", n))
		}),
	)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return svc
}

func TestAddListsByDate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.AddCountdown(ctx, "Launch", "2026-04-01"); err != nil {
		t.Fatalf("AddCountdown failed: %v", err)
	}

	var buf bytes.Buffer
	r := Add{Service: svc, Name: "Today", Date: "2026-03-10", Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	got := buf.String()
	today := strings.Index(got, "Today")
	launch := strings.Index(got, "Launch")
	if today < 0 || launch < 0 || today > launch {
		t.Fatalf("expected Today before Launch:\n%s", got)
	}
	if !strings.Contains(got, "22 days from now") {
		t.Fatalf("expected days remaining:\n%s", got)
	}
}

func TestAddInvalidDate(t *testing.T) {
	svc := newService(t)
	r := Add{Service: svc, Name: "Launch", Date: "2026-02-30", Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); !errors.Is(err, app.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if len(svc.Countdowns()) != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestDateFollowsSortedPosition(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, c := range [][2]string{{"Late", "2026-09-01"}, {"Soon", "2026-03-12"}} {
		if _, err := svc.AddCountdown(ctx, c[0], c[1]); err != nil {
			t.Fatalf("AddCountdown failed: %v", err)
		}
	}

	// Position 1 is Soon, the second record added.
	var buf bytes.Buffer
	r := Date{Service: svc, Ref: "1", Date: "2026-12-24", JSON: true, Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "Soon"`) || !strings.Contains(buf.String(), `"date": "2026-12-24"`) {
		t.Fatalf("unexpected json:\n%s", buf.String())
	}
}

func TestRemove(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.AddCountdown(ctx, "Launch", "2026-04-01"); err != nil {
		t.Fatalf("AddCountdown failed: %v", err)
	}
	r := Remove{Service: svc, Ref: "id-1", Out: &bytes.Buffer{}}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if len(svc.Countdowns()) != 0 {
		t.Fatalf("expected countdown removed")
	}
}

func TestWatchRedraws(t *testing.T) {
	svc := newService(t)
	if _, err := svc.AddCountdown(context.Background(), "Launch", "2026-04-01"); err != nil {
		t.Fatalf("AddCountdown failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	var buf bytes.Buffer
	r := List{Service: svc, Watch: true, Interval: 10 * time.Millisecond, Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if n := strings.Count(buf.String(), clearScreen); n < 2 {
		t.Fatalf("expected at least two redraws, got %d", n)
	}
}

func TestWatchIgnoredForJSON(t *testing.T) {
	svc := newService(t)
	var buf bytes.Buffer
	r := List{Service: svc, Watch: true, JSON: true, Out: &buf}
	// Returns at once; a watch would block until the context ends.
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty json list, got %q", buf.String())
	}
}
