package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// TerritoryRepository is an in-memory repository.Territory implementation.
type TerritoryRepository struct {
	mu        sync.Mutex
	locations map[string]*domain.GymLocation
}

// NewTerritoryRepository creates an empty in-memory territory repository.
func NewTerritoryRepository() *TerritoryRepository {
	return &TerritoryRepository{locations: make(map[string]*domain.GymLocation)}
}

func (r *TerritoryRepository) CreateLocation(ctx context.Context, loc *domain.GymLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.locations[loc.ID] = clone(loc)
	return nil
}

func (r *TerritoryRepository) GetLocation(ctx context.Context, locationID string) (*domain.GymLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loc, ok := r.locations[locationID]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	return clone(loc), nil
}

func (r *TerritoryRepository) ListLocations(ctx context.Context) ([]domain.GymLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.GymLocation, 0, len(r.locations))
	for _, loc := range r.locations {
		out = append(out, *clone(loc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TerritoryRepository) MutateLocation(ctx context.Context, locationID string, fn func(*domain.GymLocation) error) (*domain.GymLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.locations[locationID]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}

	r.locations[locationID] = next
	return clone(next), nil
}

func (r *TerritoryRepository) CountControlledBy(ctx context.Context, clubID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, loc := range r.locations {
		if loc.ControllingClubID != nil && *loc.ControllingClubID == clubID {
			count++
		}
	}
	return count, nil
}
