package record

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a milestone.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// AllStatuses lists the valid statuses in selector order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusCompleted, StatusCancelled}
}

// ParseStatus converts user input to a Status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "open", "active":
		return StatusPending, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	case "cancelled", "canceled", "cancel":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("record: unknown status %q", raw)
}

// Milestone is one node on the roadmap.
type Milestone struct {
	ID            ID        `json:"id" toml:"id"`
	Name          string    `json:"name" toml:"name"`
	Date          Date      `json:"date" toml:"date"`
	Status        Status    `json:"status" toml:"status"`
	CompletedDate *Date     `json:"completedDate" toml:"completedDate,omitempty"`
	CreatedAt     Timestamp `json:"createdAt" toml:"createdAt"`
}

func (m Milestone) Key() ID {
	return m.ID
}

// Pending reports whether the milestone is still open. Records persisted
// without a status count as pending.
func (m Milestone) Pending() bool {
	return m.Status == StatusPending || m.Status == ""
}
