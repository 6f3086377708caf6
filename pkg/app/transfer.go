package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/daybook/pkg/record"
)

// Snapshot is a copy of every collection, used by export and import.
type Snapshot struct {
	Todos      []record.Todo      `json:"todos" toml:"todos"`
	Countdowns []record.Countdown `json:"countdowns" toml:"countdowns"`
	Milestones []record.Milestone `json:"milestones" toml:"milestones"`
}

// ImportResult counts what Import did per collection.
type ImportResult struct {
	Added   map[record.Kind]int
	Skipped map[record.Kind]int
}

// Snapshot copies every collection in store order.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Todos:      s.todos.All(),
		Countdowns: s.countdowns.All(),
		Milestones: s.milestones.All(),
	}
}

// DecodeDump reads a browser localStorage dump. Each of the todos, countdowns
// and milestones keys may hold the raw JSON string localStorage keeps, or the
// already decoded array. Unknown keys are ignored.
func DecodeDump(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("app: decode dump: %w", err)
	}
	var snap Snapshot
	targets := map[record.Kind]any{
		record.KindTodo:      &snap.Todos,
		record.KindCountdown: &snap.Countdowns,
		record.KindMilestone: &snap.Milestones,
	}
	for kind, target := range targets {
		blob, ok := raw[kind.Key()]
		if !ok {
			continue
		}
		blob = bytes.TrimSpace(blob)
		if len(blob) > 0 && blob[0] == '"' {
			var inner string
			if err := json.Unmarshal(blob, &inner); err != nil {
				return Snapshot{}, fmt.Errorf("app: decode %s: %w", kind, err)
			}
			blob = []byte(inner)
		}
		if err := json.Unmarshal(blob, target); err != nil {
			return Snapshot{}, fmt.Errorf("app: decode %s: %w", kind, err)
		}
	}
	return snap, nil
}

// Import appends the records of snap, keeping their ids. Records without an id
// get a fresh one. Records whose id is already present, or that break a
// collection invariant, are skipped.
func (s *Service) Import(ctx context.Context, snap Snapshot) (ImportResult, error) {
	res := ImportResult{Added: map[record.Kind]int{}, Skipped: map[record.Kind]int{}}
	s.mu.Lock()
	defer s.mu.Unlock()

	var todos []record.Todo
	seen := ids(s.todos.All())
	for _, t := range snap.Todos {
		t.Text = strings.TrimSpace(t.Text)
		if t.ID == "" {
			t.ID = s.newID()
		}
		if !s.admit(seen, t.ID, t.Text != "", record.KindTodo) {
			res.Skipped[record.KindTodo]++
			continue
		}
		todos = append(todos, t)
	}

	var countdowns []record.Countdown
	seen = ids(s.countdowns.All())
	for _, c := range snap.Countdowns {
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" {
			c.ID = s.newID()
		}
		if !s.admit(seen, c.ID, c.Name != "" && !c.Date.IsZero(), record.KindCountdown) {
			res.Skipped[record.KindCountdown]++
			continue
		}
		countdowns = append(countdowns, c)
	}

	var milestones []record.Milestone
	seen = ids(s.milestones.All())
	for _, m := range snap.Milestones {
		m.Name = strings.TrimSpace(m.Name)
		if m.ID == "" {
			m.ID = s.newID()
		}
		if !s.admit(seen, m.ID, m.Name != "" && !m.Date.IsZero(), record.KindMilestone) {
			res.Skipped[record.KindMilestone]++
			continue
		}
		if m.Status == "" {
			m.Status = record.StatusPending
		}
		if m.Status != record.StatusCompleted {
			m.CompletedDate = nil
		}
		milestones = append(milestones, m)
	}

	if len(todos) > 0 {
		if err := s.todos.Append(ctx, todos...); err != nil {
			return res, err
		}
		res.Added[record.KindTodo] = len(todos)
	}
	if len(countdowns) > 0 {
		if err := s.countdowns.Append(ctx, countdowns...); err != nil {
			return res, err
		}
		res.Added[record.KindCountdown] = len(countdowns)
	}
	if len(milestones) > 0 {
		if err := s.milestones.Append(ctx, milestones...); err != nil {
			return res, err
		}
		res.Added[record.KindMilestone] = len(milestones)
	}
	return res, nil
}

// admit reports whether a record may be imported and marks its id as seen.
func (s *Service) admit(seen map[record.ID]bool, id record.ID, valid bool, kind record.Kind) bool {
	if !valid {
		s.log.Debug("skipping invalid record", "kind", kind, "id", id)
		return false
	}
	if seen[id] {
		s.log.Debug("skipping duplicate record", "kind", kind, "id", id)
		return false
	}
	seen[id] = true
	return true
}

func ids[T record.Keyed](items []T) map[record.ID]bool {
	out := make(map[record.ID]bool, len(items))
	for _, it := range items {
		out[it.Key()] = true
	}
	return out
}
