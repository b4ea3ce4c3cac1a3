package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// RaidRepository implements repository.Raid for PostgreSQL.
type RaidRepository struct {
	db *pgxpool.Pool
}

// NewRaidRepository creates a new RaidRepository
func NewRaidRepository(db *pgxpool.Pool) *RaidRepository {
	return &RaidRepository{db: db}
}

const raidSelectSQL = `SELECT data FROM raid_bosses WHERE id = $1`
const raidSelectForUpdateSQL = raidSelectSQL + ` FOR UPDATE`
const raidUpdateSQL = `
	UPDATE raid_bosses
	SET data = $2::jsonb,
	    active = ($2::jsonb->>'active')::boolean
	WHERE id = $1
`

func (r *RaidRepository) CreateBoss(ctx context.Context, boss *domain.RaidBoss) error {
	data, err := marshalDoc(boss)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO raid_bosses (id, active, data)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query, boss.ID, boss.Active, data); err != nil {
		return fmt.Errorf("failed to insert raid boss: %w", err)
	}
	return nil
}

func (r *RaidRepository) GetBoss(ctx context.Context, bossID string) (*domain.RaidBoss, error) {
	return scanDoc[domain.RaidBoss](r.db.QueryRow(ctx, raidSelectSQL, bossID), domain.ErrBossNotFound)
}

func (r *RaidRepository) GetActiveBoss(ctx context.Context) (*domain.RaidBoss, error) {
	query := `
		SELECT data FROM raid_bosses
		WHERE active
		ORDER BY data->>'created_at' DESC
		LIMIT 1
	`
	return scanDoc[domain.RaidBoss](r.db.QueryRow(ctx, query), domain.ErrBossNotFound)
}

func (r *RaidRepository) MutateBoss(ctx context.Context, bossID string, fn func(*domain.RaidBoss) error) (*domain.RaidBoss, error) {
	return mutateDoc(ctx, r.db, raidSelectForUpdateSQL, raidUpdateSQL, domain.ErrBossNotFound, fn, bossID)
}
