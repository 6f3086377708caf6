package milestone

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

func newService(t *testing.T, milestones ...[2]string) *app.Service {
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
	for _, m := range milestones {
		if _, err := svc.AddMilestone(context.Background(), m[0], m[1]); err != nil {
			t.Fatalf("AddMilestone failed: %v", err)
		}
	}
	return svc
}

func TestStatusMovesBelowSeparator(t *testing.T) {
	svc := newService(t, [2]string{"Beta", "2026-03-20"}, [2]string{"GA", "2026-04-20"})

	var buf bytes.Buffer
	r := Status{Service: svc, Ref: "1", Status: "completed", Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	got := buf.String()
	ga := strings.Index(got, "GA")
	sep := strings.Index(got, "completed milestones (1)")
	beta := strings.Index(got, "Beta")
	if ga < 0 || sep < 0 || beta < 0 || !(ga < sep && sep < beta) {
		t.Fatalf("expected GA, separator, Beta:\n%s", got)
	}
}

func TestStatusStampsCompletion(t *testing.T) {
	svc := newService(t, [2]string{"Beta", "2026-03-20"})

	var buf bytes.Buffer
	r := Status{Service: svc, Ref: "id-1", Status: "completed", JSON: true, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"completedDate": "2026-03-10"`) {
		t.Fatalf("expected completion date in json:\n%s", buf.String())
	}

	r = Status{Service: svc, Ref: "id-1", Status: "pending", JSON: true, Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if ms := svc.Milestones(); ms[0].CompletedDate != nil {
		t.Fatalf("expected completion date cleared, got %v", ms[0].CompletedDate)
	}
}

func TestStatusRejectsUnknown(t *testing.T) {
	svc := newService(t, [2]string{"Beta", "2026-03-20"})
	r := Status{Service: svc, Ref: "1", Status: "shipped", Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); !errors.Is(err, app.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if svc.Milestones()[0].Status != record.StatusPending {
		t.Fatalf("expected status unchanged")
	}
}

func TestDateAndRemove(t *testing.T) {
	svc := newService(t, [2]string{"Beta", "2026-03-20"})
	ctx := context.Background()

	d := Date{Service: svc, Ref: "1", Date: "2026-05-01", Out: &bytes.Buffer{}}
	if err := d.Do(ctx); err != nil {
		t.Fatalf("Date failed: %v", err)
	}
	if got := svc.Milestones()[0].Date.String(); got != "2026-05-01" {
		t.Fatalf("expected moved date, got %s", got)
	}

	rm := Remove{Service: svc, Ref: "1", Out: &bytes.Buffer{}}
	if err := rm.Do(ctx); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(svc.Milestones()) != 0 {
		t.Fatalf("expected milestone removed")
	}
}
