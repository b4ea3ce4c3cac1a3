package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// DuelRepository is an in-memory repository.Duel implementation.
type DuelRepository struct {
	mu    sync.Mutex
	duels map[string]*domain.Duel
}

// NewDuelRepository creates an empty in-memory duel repository.
func NewDuelRepository() *DuelRepository {
	return &DuelRepository{duels: make(map[string]*domain.Duel)}
}

func (r *DuelRepository) CreateDuel(ctx context.Context, duel *domain.Duel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.duels[duel.ID] = clone(duel)
	return nil
}

func (r *DuelRepository) GetDuel(ctx context.Context, duelID string) (*domain.Duel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.duels[duelID]
	if !ok {
		return nil, domain.ErrDuelNotFound
	}
	return clone(d), nil
}

func (r *DuelRepository) GetDuelsForUser(ctx context.Context, userID string, statuses ...domain.DuelStatus) ([]domain.Duel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Duel
	for _, d := range r.duels {
		if !d.Involves(userID) {
			continue
		}
		if len(statuses) > 0 && !statusIn(d.Status, statuses) {
			continue
		}
		out = append(out, *clone(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *DuelRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]domain.Duel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Duel
	for _, d := range r.duels {
		if d.Status.IsTerminal() || !d.Deadline.Before(cutoff) {
			continue
		}
		out = append(out, *clone(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *DuelRepository) MutateDuel(ctx context.Context, duelID string, fn func(*domain.Duel) error) (*domain.Duel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.duels[duelID]
	if !ok {
		return nil, domain.ErrDuelNotFound
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}

	r.duels[duelID] = next
	return clone(next), nil
}

func statusIn(status domain.DuelStatus, statuses []domain.DuelStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
