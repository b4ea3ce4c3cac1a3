package memory

import (
	"context"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// ActivityRepository is an in-memory repository.Activity implementation.
type ActivityRepository struct {
	mu      sync.Mutex
	nextID  int64
	entries []repository.ActivityEntry
}

// NewActivityRepository creates an empty in-memory activity repository.
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Append(ctx context.Context, entry repository.ActivityEntry, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, entry)

	if entry.UserID == nil || keep <= 0 {
		return nil
	}

	// Trim oldest entries for this user beyond the retention cap.
	count := 0
	for _, e := range r.entries {
		if e.UserID != nil && *e.UserID == *entry.UserID {
			count++
		}
	}
	if count <= keep {
		return nil
	}

	drop := count - keep
	kept := r.entries[:0]
	for _, e := range r.entries {
		if drop > 0 && e.UserID != nil && *e.UserID == *entry.UserID {
			drop--
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return nil
}

func (r *ActivityRepository) GetByUser(ctx context.Context, userID string, limit int) ([]repository.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []repository.ActivityEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (r *ActivityRepository) GetRecent(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []repository.ActivityEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
