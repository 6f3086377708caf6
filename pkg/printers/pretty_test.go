package printers

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/testutil"
	"tableflip.dev/daybook/pkg/timeline"
	"tableflip.dev/daybook/pkg/viewmodel"
)

var today = record.NewDate(2026, time.March, 10)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newPrinter() (*PrettyPrint, *bytes.Buffer) {
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf}, &buf
}

func TestTodos(t *testing.T) {
	pp, buf := newPrinter()
	pp.Todos([]record.Todo{
		{ID: "a", Text: "buy milk"},
		{ID: "b", Text: "walk dog", Completed: true},
	}, viewmodel.FilterAll)
	testutil.Golden(t, "todos", buf.Bytes())
}

func TestTodosEmpty(t *testing.T) {
	pp, buf := newPrinter()
	pp.Todos(nil, viewmodel.FilterCompleted)
	testutil.Golden(t, "todos_empty", buf.Bytes())
}

func TestTodosShowID(t *testing.T) {
	pp, buf := newPrinter()
	pp.ShowID = true
	pp.Todos([]record.Todo{{ID: "0123456789abcdef", Text: "buy milk"}}, viewmodel.FilterActive)
	if !strings.Contains(buf.String(), "01234567   1 ● buy milk") {
		t.Fatalf("expected short id before row, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "89abcdef") {
		t.Fatalf("expected id to be shortened, got:\n%s", buf.String())
	}
}

func TestCountdowns(t *testing.T) {
	pp, buf := newPrinter()
	rows := viewmodel.Countdowns([]record.Countdown{
		{ID: "1", Name: "Launch", Date: today.AddDays(12)},
		{ID: "2", Name: "Birthday", Date: today},
		{ID: "3", Name: "Move", Date: today.AddDays(-3)},
	}, today)
	pp.Countdowns(rows)

	out := buf.String()
	if !strings.HasPrefix(out, "Countdowns - 3 countdowns\n") {
		t.Fatalf("unexpected title:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	wants := []struct {
		glyph, name, label string
	}{
		{glyph.Past.String(), "Move", "3 days ago"},
		{glyph.Today.String(), "Birthday", "today"},
		{glyph.Countdown.String(), "Launch", "12 days from now"},
	}
	for i, w := range wants {
		line := lines[i+1]
		for _, part := range []string{w.glyph, w.name, w.label} {
			if !strings.Contains(line, part) {
				t.Fatalf("line %d %q missing %q", i+1, line, part)
			}
		}
	}
	if !strings.Contains(out, "March 22, 2026") {
		t.Fatalf("expected display date, got:\n%s", out)
	}
}

func TestMilestonesSeparator(t *testing.T) {
	pp, buf := newPrinter()
	done := today.AddDays(-1)
	v := viewmodel.Milestones([]record.Milestone{
		{ID: "1", Name: "Shipped", Status: record.StatusCompleted, Date: today.AddDays(-2), CompletedDate: &done},
		{ID: "2", Name: "Beta", Status: record.StatusPending, Date: today.AddDays(5)},
		{ID: "3", Name: "Dropped", Status: record.StatusCancelled, Date: today.AddDays(1)},
	}, today)
	pp.Milestones(v)

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[1], "Beta") || !strings.Contains(lines[1], "5 days left") {
		t.Fatalf("expected pending Beta first, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "completed milestones (1)") {
		t.Fatalf("expected separator after pending rows, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "completed (March 9, 2026)") {
		t.Fatalf("expected completed row, got %q", lines[3])
	}
	if !strings.Contains(lines[4], "Dropped") || !strings.Contains(lines[4], "cancelled") {
		t.Fatalf("expected cancelled row, got %q", lines[4])
	}
}

func TestMilestonesNone(t *testing.T) {
	pp, buf := newPrinter()
	pp.Milestones(viewmodel.MilestoneView{})
	if buf.String() != "Milestones - 0 milestones\n none\n\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTrack(t *testing.T) {
	l, ok := timeline.Compute([]record.Milestone{
		{ID: "b", Name: "Beta", Status: record.StatusPending, Date: today.AddDays(20)},
		{ID: "a", Name: "Alpha", Status: record.StatusPending, Date: today.AddDays(5)},
	}, today, timeline.Options{})
	if !ok {
		t.Fatal("expected a layout")
	}
	track, numbers := Track(l, 45)
	testutil.GoldenString(t, "track", track+"\n"+numbers+"\n")
}

func TestTimeline(t *testing.T) {
	l, _ := timeline.Compute([]record.Milestone{
		{ID: "a", Name: "Alpha", Status: record.StatusPending, Date: today.AddDays(5)},
		{ID: "z", Name: "Late", Status: record.StatusPending, Date: today.AddDays(-2)},
	}, today, timeline.Options{})
	pp, buf := newPrinter()
	pp.Timeline(l, 0)

	out := buf.String()
	for _, want := range []string{
		"Timeline - 2 pending milestones",
		"March 10, 2026 → April 23, 2026 (44 days)",
		"2 days overdue",
		"5 days left",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTrackNarrowWidth(t *testing.T) {
	l, _ := timeline.Compute([]record.Milestone{
		{ID: "a", Status: record.StatusPending, Date: today.AddDays(3)},
	}, today, timeline.Options{})
	track, _ := Track(l, 2)
	if n := len([]rune(track)); n != minTrackWidth {
		t.Fatalf("expected track of %d runes, got %d", minTrackWidth, n)
	}
}

func TestName(t *testing.T) {
	long := strings.Repeat("x", MaxNameWidth+10)
	if got := name(long); len([]rune(got)) != MaxNameWidth {
		t.Fatalf("expected %d runes, got %d", MaxNameWidth, len([]rune(got)))
	}
	if got := name("short"); got != "short" {
		t.Fatalf("expected short name untouched, got %q", got)
	}
}
