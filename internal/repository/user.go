// Package repository defines the storage contracts the services depend
// on. Each entity has exactly one writing component; the Mutate methods
// are the per-document atomic read-modify-write primitive - the store
// serializes concurrent mutations of the same document, and the losing
// writer observes a fresh read inside its mutate callback.
package repository

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// User is the storage contract for UserProgress records.
type User interface {
	CreateUser(ctx context.Context, user *domain.UserProgress) error
	GetUser(ctx context.Context, userID string) (*domain.UserProgress, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.UserProgress, error)
	ListUserIDs(ctx context.Context) ([]string, error)

	// MutateUser applies fn to the current record under the store's
	// transactional primitive. If fn returns an error nothing is
	// written and the error is returned unchanged.
	MutateUser(ctx context.Context, userID string, fn func(*domain.UserProgress) error) (*domain.UserProgress, error)

	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
