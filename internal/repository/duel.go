package repository

import (
	"context"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Duel is the storage contract for duels.
type Duel interface {
	CreateDuel(ctx context.Context, duel *domain.Duel) error
	GetDuel(ctx context.Context, duelID string) (*domain.Duel, error)

	// GetDuelsForUser returns duels involving the user with any of the
	// given statuses, or all duels for the user when statuses is empty.
	GetDuelsForUser(ctx context.Context, userID string, statuses ...domain.DuelStatus) ([]domain.Duel, error)

	// ListExpired returns non-terminal duels whose deadline is before
	// the cutoff.
	ListExpired(ctx context.Context, cutoff time.Time) ([]domain.Duel, error)

	MutateDuel(ctx context.Context, duelID string, fn func(*domain.Duel) error) (*domain.Duel, error)
}
