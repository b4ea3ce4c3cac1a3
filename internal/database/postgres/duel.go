package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// DuelRepository implements repository.Duel for PostgreSQL.
type DuelRepository struct {
	db *pgxpool.Pool
}

// NewDuelRepository creates a new DuelRepository
func NewDuelRepository(db *pgxpool.Pool) *DuelRepository {
	return &DuelRepository{db: db}
}

const duelSelectSQL = `SELECT data FROM duels WHERE id = $1`
const duelSelectForUpdateSQL = duelSelectSQL + ` FOR UPDATE`
const duelUpdateSQL = `
	UPDATE duels
	SET data = $2::jsonb,
	    status = $2::jsonb->>'status'
	WHERE id = $1
`

func (r *DuelRepository) CreateDuel(ctx context.Context, duel *domain.Duel) error {
	data, err := marshalDoc(duel)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO duels (id, challenger_id, opponent_id, status, data)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(ctx, query, duel.ID, duel.ChallengerID, duel.OpponentID, string(duel.Status), data)
	if err != nil {
		return fmt.Errorf("failed to insert duel: %w", err)
	}
	return nil
}

func (r *DuelRepository) GetDuel(ctx context.Context, duelID string) (*domain.Duel, error) {
	return scanDoc[domain.Duel](r.db.QueryRow(ctx, duelSelectSQL, duelID), domain.ErrDuelNotFound)
}

func (r *DuelRepository) GetDuelsForUser(ctx context.Context, userID string, statuses ...domain.DuelStatus) ([]domain.Duel, error) {
	query := `
		SELECT data FROM duels
		WHERE (challenger_id = $1 OR opponent_id = $1)
	`
	args := []any{userID}
	if len(statuses) > 0 {
		states := make([]string, len(statuses))
		for i, s := range statuses {
			states[i] = string(s)
		}
		query += ` AND status = ANY($2)`
		args = append(args, states)
	}
	query += ` ORDER BY data->>'created_at' DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query duels: %w", err)
	}
	defer rows.Close()

	duels := []domain.Duel{}
	for rows.Next() {
		d, err := scanDoc[domain.Duel](rows, domain.ErrDuelNotFound)
		if err != nil {
			return nil, err
		}
		duels = append(duels, *d)
	}
	return duels, rows.Err()
}

func (r *DuelRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]domain.Duel, error) {
	query := `
		SELECT data FROM duels
		WHERE status IN ('pending', 'active')
		AND (data->>'deadline')::timestamptz < $1
		ORDER BY data->>'created_at'
	`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired duels: %w", err)
	}
	defer rows.Close()

	duels := []domain.Duel{}
	for rows.Next() {
		d, err := scanDoc[domain.Duel](rows, domain.ErrDuelNotFound)
		if err != nil {
			return nil, err
		}
		duels = append(duels, *d)
	}
	return duels, rows.Err()
}

func (r *DuelRepository) MutateDuel(ctx context.Context, duelID string, fn func(*domain.Duel) error) (*domain.Duel, error) {
	return mutateDoc(ctx, r.db, duelSelectForUpdateSQL, duelUpdateSQL, domain.ErrDuelNotFound, fn, duelID)
}
