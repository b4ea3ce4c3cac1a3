package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// UserRepository is an in-memory repository.User implementation.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.UserProgress
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.UserProgress)}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.UserProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, user.Username)
		}
	}

	r.users[user.ID] = clone(user)
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *UserRepository) MutateUser(ctx context.Context, userID string, fn func(*domain.UserProgress) error) (*domain.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}

	r.users[userID] = next
	return clone(next), nil
}

func (r *UserRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]domain.LeaderboardEntry, 0, len(r.users))
	for _, u := range r.users {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:   u.ID,
			Username: u.Username,
			Level:    u.Level,
			XP:       u.XP,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level > entries[j].Level
		}
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
