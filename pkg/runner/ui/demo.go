package ui

import (
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/record"
)

// StaticDemo is a small data set dated around today, used by `daybook ui --demo`.
func StaticDemo(today record.Date) app.Snapshot {
	completed := today.AddDays(-3)
	return app.Snapshot{
		Todos: []record.Todo{
			{Text: "buy milk"},
			{Text: "book flights for the offsite"},
			{Text: "renew passport", Completed: true},
			{Text: "water the plants"},
		},
		Countdowns: []record.Countdown{
			{Name: "Team offsite", Date: today.AddDays(12)},
			{Name: "Mom's birthday", Date: today},
			{Name: "Moved house", Date: today.AddDays(-40)},
			{Name: "Summer holiday", Date: today.AddDays(95)},
		},
		Milestones: []record.Milestone{
			{Name: "Design review", Date: today.AddDays(4)},
			{Name: "Beta", Date: today.AddDays(18)},
			{Name: "Launch", Date: today.AddDays(45)},
			{Name: "Kickoff", Date: today.AddDays(-10), Status: record.StatusCompleted, CompletedDate: &completed},
			{Name: "Public preview", Date: today.AddDays(9), Status: record.StatusCancelled},
		},
	}
}
