package repository

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Club is the storage contract for clubs. Derived aggregates
// (territories controlled, total power) are recomputed, not stored.
type Club interface {
	CreateClub(ctx context.Context, club *domain.Club) error
	GetClub(ctx context.Context, clubID string) (*domain.Club, error)

	// GetClubByMember returns the club containing the user, or
	// domain.ErrClubNotFound.
	GetClubByMember(ctx context.Context, userID string) (*domain.Club, error)

	MutateClub(ctx context.Context, clubID string, fn func(*domain.Club) error) (*domain.Club, error)
}
