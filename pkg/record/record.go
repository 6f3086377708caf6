// Package record defines the entity kinds persisted by daybook: todos,
// countdowns and milestones.
package record

import (
	"fmt"
	"strings"
)

// Kind names one entity kind. Its string form is the storage key holding the
// kind's JSON blob.
type Kind string

const (
	KindTodo      Kind = "todos"
	KindCountdown Kind = "countdowns"
	KindMilestone Kind = "milestones"
)

// AllKinds returns every kind in navigation order.
func AllKinds() []Kind {
	return []Kind{KindTodo, KindCountdown, KindMilestone}
}

// Key returns the storage key for the kind.
func (k Kind) Key() string {
	return string(k)
}

// Title is the human label used by printers and the UI tabs.
func (k Kind) Title() string {
	switch k {
	case KindTodo:
		return "Todos"
	case KindCountdown:
		return "Countdowns"
	case KindMilestone:
		return "Milestones"
	default:
		return string(k)
	}
}

// ParseKind accepts singular or plural kind names.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo", "todos":
		return KindTodo, nil
	case "countdown", "countdowns":
		return KindCountdown, nil
	case "milestone", "milestones", "roadmap":
		return KindMilestone, nil
	}
	return "", fmt.Errorf("record: unknown kind %q", raw)
}

// Keyed is implemented by every record kind.
type Keyed interface {
	Key() ID
}
