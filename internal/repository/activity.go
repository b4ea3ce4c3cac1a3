package repository

import (
	"context"
	"time"
)

// ActivityEntry is one appended game event.
type ActivityEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

// Activity is the append-only bounded activity log.
type Activity interface {
	// Append stores an entry and trims the user's log to the retention
	// cap, oldest first.
	Append(ctx context.Context, entry ActivityEntry, keep int) error

	GetByUser(ctx context.Context, userID string, limit int) ([]ActivityEntry, error)
	GetRecent(ctx context.Context, limit int) ([]ActivityEntry, error)
}
