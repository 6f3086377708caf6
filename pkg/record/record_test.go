package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseDateRejectsImpossibleDays(t *testing.T) {
	if _, err := ParseDate("2025-02-30"); err == nil {
		t.Fatalf("expected error for February 30th")
	}
	if _, err := ParseDate("   "); err == nil {
		t.Fatalf("expected error for blank date")
	}
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("unexpected date %s", d)
	}
}

func TestDaysSinceIsCalendarBased(t *testing.T) {
	today := NewDate(2026, time.March, 28)
	cases := map[int]Date{
		0:   today,
		1:   today.AddDays(1),
		-1:  today.AddDays(-1),
		5:   NewDate(2026, time.April, 2),
		365: NewDate(2027, time.March, 28),
	}
	for want, d := range cases {
		if got := d.DaysSince(today); got != want {
			t.Fatalf("%s: expected %d days, got %d", d, want, got)
		}
	}
}

func TestDateOfTruncatesClock(t *testing.T) {
	noon := time.Date(2026, time.January, 5, 12, 30, 0, 0, time.Local)
	d := DateOf(noon)
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", d.Time)
	}
	if d.Day() != 5 {
		t.Fatalf("expected day 5, got %d", d.Day())
	}
}

func TestIDAcceptsBrowserTimestamps(t *testing.T) {
	var todos []Todo
	blob := `[{"id":1718000000000,"text":"water plants","completed":true,"createdAt":"2024-06-10T06:13:20.000Z"},{"id":"abc","text":"x","completed":false}]`
	if err := json.Unmarshal([]byte(blob), &todos); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if todos[0].ID != "1718000000000" {
		t.Fatalf("unexpected numeric id conversion %q", todos[0].ID)
	}
	if todos[0].CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to parse")
	}
	if todos[1].ID != "abc" {
		t.Fatalf("unexpected string id %q", todos[1].ID)
	}
	if !todos[1].CreatedAt.IsZero() {
		t.Fatalf("expected missing createdAt to stay zero")
	}
}

func TestMilestoneCompletedDateNullWhenAbsent(t *testing.T) {
	m := Milestone{ID: "m1", Name: "ship", Date: NewDate(2026, time.May, 1), Status: StatusPending}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"completedDate":null`) {
		t.Fatalf("expected null completedDate, got %s", b)
	}
	if !strings.Contains(string(b), `"date":"2026-05-01"`) {
		t.Fatalf("expected calendar date on the wire, got %s", b)
	}

	var back Milestone
	if err := json.Unmarshal([]byte(`{"id":2,"name":"x","date":"2026-05-01","status":"completed","completedDate":"2026-04-20"}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.CompletedDate == nil || back.CompletedDate.String() != "2026-04-20" {
		t.Fatalf("unexpected completedDate %v", back.CompletedDate)
	}
}

func TestMilestoneWithoutStatusIsPending(t *testing.T) {
	if !(Milestone{}).Pending() {
		t.Fatalf("expected empty status to count as pending")
	}
	if (Milestone{Status: StatusCancelled}).Pending() {
		t.Fatalf("cancelled milestone reported pending")
	}
}

func TestParseStatusAliases(t *testing.T) {
	for raw, want := range map[string]Status{
		"done":     StatusCompleted,
		"Canceled": StatusCancelled,
		"pending":  StatusPending,
	} {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%s: expected %s, got %s", raw, want, got)
		}
	}
	if _, err := ParseStatus("blocked"); err == nil {
		t.Fatalf("expected unknown status error")
	}
}
