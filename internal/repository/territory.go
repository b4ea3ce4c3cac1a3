package repository

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Territory is the storage contract for gym locations. Simultaneous
// challenges on the same location serialize through MutateLocation.
type Territory interface {
	CreateLocation(ctx context.Context, loc *domain.GymLocation) error
	GetLocation(ctx context.Context, locationID string) (*domain.GymLocation, error)
	ListLocations(ctx context.Context) ([]domain.GymLocation, error)

	MutateLocation(ctx context.Context, locationID string, fn func(*domain.GymLocation) error) (*domain.GymLocation, error)

	// CountControlledBy recomputes a club's territory count.
	CountControlledBy(ctx context.Context, clubID string) (int, error)
}
