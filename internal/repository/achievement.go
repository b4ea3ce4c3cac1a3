package repository

import (
	"context"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Achievement is the storage contract for per-user unlock state. The
// catalog itself is static and lives in code.
type Achievement interface {
	// GetUnlocked returns the user's unlocked achievement ids mapped to
	// their unlock timestamps.
	GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error)

	// Unlock records an unlock. Unlocking an already-unlocked
	// achievement is a no-op and must not move the original timestamp.
	Unlock(ctx context.Context, unlock domain.AchievementUnlock) error
}
