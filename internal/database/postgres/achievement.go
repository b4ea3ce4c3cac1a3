package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// AchievementRepository implements repository.Achievement for PostgreSQL.
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT achievement_id, unlocked_at FROM achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocked[id] = at
	}
	return unlocked, rows.Err()
}

func (r *AchievementRepository) Unlock(ctx context.Context, unlock domain.AchievementUnlock) error {
	// DO NOTHING keeps the original unlock timestamp on replays.
	query := `
		INSERT INTO achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, unlock.UserID, unlock.AchievementID, unlock.UnlockedAt); err != nil {
		return fmt.Errorf("failed to record unlock: %w", err)
	}
	return nil
}
