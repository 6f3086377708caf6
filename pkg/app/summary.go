package app

import (
	"tableflip.dev/daybook/pkg/record"
)

// Summary counts what needs attention across all collections.
type Summary struct {
	Today             record.Date
	OpenTodos         int
	CompletedTodos    int
	Countdowns        int
	PastCountdowns    int
	PendingMilestones int
	OverdueMilestones int
	Next              *record.Milestone
}

// Summary returns counts for every collection as of today. Next is the pending
// milestone with the earliest date that is not overdue, if any.
func (s *Service) Summary() Summary {
	today := s.Today()
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Today: today}
	for _, t := range s.todos.All() {
		if t.Completed {
			sum.CompletedTodos++
		} else {
			sum.OpenTodos++
		}
	}
	for _, c := range s.countdowns.All() {
		sum.Countdowns++
		if c.Date.DaysSince(today) < 0 {
			sum.PastCountdowns++
		}
	}
	for _, m := range s.milestones.All() {
		if !m.Pending() {
			continue
		}
		sum.PendingMilestones++
		if m.Date.DaysSince(today) < 0 {
			sum.OverdueMilestones++
			continue
		}
		if sum.Next == nil || m.Date.Compare(sum.Next.Date) < 0 {
			next := m
			sum.Next = &next
		}
	}
	return sum
}
