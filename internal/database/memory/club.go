package memory

import (
	"context"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// ClubRepository is an in-memory repository.Club implementation.
type ClubRepository struct {
	mu    sync.Mutex
	clubs map[string]*domain.Club
}

// NewClubRepository creates an empty in-memory club repository.
func NewClubRepository() *ClubRepository {
	return &ClubRepository{clubs: make(map[string]*domain.Club)}
}

func (r *ClubRepository) CreateClub(ctx context.Context, club *domain.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clubs[club.ID] = clone(club)
	return nil
}

func (r *ClubRepository) GetClub(ctx context.Context, clubID string) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clubs[clubID]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	return clone(c), nil
}

func (r *ClubRepository) GetClubByMember(ctx context.Context, userID string) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clubs {
		if c.HasMember(userID) {
			return clone(c), nil
		}
	}
	return nil, domain.ErrClubNotFound
}

func (r *ClubRepository) MutateClub(ctx context.Context, clubID string, fn func(*domain.Club) error) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clubs[clubID]
	if !ok {
		return nil, domain.ErrClubNotFound
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}

	r.clubs[clubID] = next
	return clone(next), nil
}
