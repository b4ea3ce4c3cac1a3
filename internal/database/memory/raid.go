package memory

import (
	"context"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// RaidRepository is an in-memory repository.Raid implementation.
type RaidRepository struct {
	mu     sync.Mutex
	bosses map[string]*domain.RaidBoss
}

// NewRaidRepository creates an empty in-memory raid repository.
func NewRaidRepository() *RaidRepository {
	return &RaidRepository{bosses: make(map[string]*domain.RaidBoss)}
}

func (r *RaidRepository) CreateBoss(ctx context.Context, boss *domain.RaidBoss) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Spawning a boss retires any currently active one.
	for _, b := range r.bosses {
		b.Active = false
	}
	r.bosses[boss.ID] = clone(boss)
	return nil
}

func (r *RaidRepository) GetBoss(ctx context.Context, bossID string) (*domain.RaidBoss, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bosses[bossID]
	if !ok {
		return nil, domain.ErrBossNotFound
	}
	return clone(b), nil
}

func (r *RaidRepository) GetActiveBoss(ctx context.Context) (*domain.RaidBoss, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bosses {
		if b.Active {
			return clone(b), nil
		}
	}
	return nil, domain.ErrBossNotFound
}

func (r *RaidRepository) MutateBoss(ctx context.Context, bossID string, fn func(*domain.RaidBoss) error) (*domain.RaidBoss, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bosses[bossID]
	if !ok {
		return nil, domain.ErrBossNotFound
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}

	r.bosses[bossID] = next
	return clone(next), nil
}
