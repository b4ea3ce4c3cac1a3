package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// AchievementRepository is an in-memory repository.Achievement implementation.
type AchievementRepository struct {
	mu       sync.Mutex
	unlocked map[string]map[string]time.Time // userID -> achievementID -> unlockedAt
}

// NewAchievementRepository creates an empty in-memory achievement repository.
func NewAchievementRepository() *AchievementRepository {
	return &AchievementRepository{unlocked: make(map[string]map[string]time.Time)}
}

func (r *AchievementRepository) GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]time.Time, len(r.unlocked[userID]))
	for id, at := range r.unlocked[userID] {
		out[id] = at
	}
	return out, nil
}

func (r *AchievementRepository) Unlock(ctx context.Context, unlock domain.AchievementUnlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unlocked[unlock.UserID] == nil {
		r.unlocked[unlock.UserID] = make(map[string]time.Time)
	}
	// First unlock wins; re-unlock must not move the timestamp.
	if _, ok := r.unlocked[unlock.UserID][unlock.AchievementID]; ok {
		return nil
	}
	r.unlocked[unlock.UserID][unlock.AchievementID] = unlock.UnlockedAt
	return nil
}
