package repository

import (
	"context"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Raid is the storage contract for raid bosses.
type Raid interface {
	CreateBoss(ctx context.Context, boss *domain.RaidBoss) error
	GetBoss(ctx context.Context, bossID string) (*domain.RaidBoss, error)

	// GetActiveBoss returns the currently active boss, or
	// domain.ErrBossNotFound when none is active.
	GetActiveBoss(ctx context.Context) (*domain.RaidBoss, error)

	MutateBoss(ctx context.Context, bossID string, fn func(*domain.RaidBoss) error) (*domain.RaidBoss, error)
}
