package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// ClubRepository implements repository.Club for PostgreSQL.
type ClubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubSelectSQL = `SELECT data FROM clubs WHERE id = $1`
const clubSelectForUpdateSQL = clubSelectSQL + ` FOR UPDATE`
const clubUpdateSQL = `UPDATE clubs SET data = $2::jsonb WHERE id = $1`

func (r *ClubRepository) CreateClub(ctx context.Context, club *domain.Club) error {
	data, err := marshalDoc(club)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `INSERT INTO clubs (id, data) VALUES ($1, $2)`, club.ID, data); err != nil {
		return fmt.Errorf("failed to insert club: %w", err)
	}
	return nil
}

func (r *ClubRepository) GetClub(ctx context.Context, clubID string) (*domain.Club, error) {
	return scanDoc[domain.Club](r.db.QueryRow(ctx, clubSelectSQL, clubID), domain.ErrClubNotFound)
}

func (r *ClubRepository) GetClubByMember(ctx context.Context, userID string) (*domain.Club, error) {
	// Membership lives in the document's members array.
	query := `
		SELECT data FROM clubs
		WHERE data->'members' @> to_jsonb($1::text)
		LIMIT 1
	`
	return scanDoc[domain.Club](r.db.QueryRow(ctx, query, userID), domain.ErrClubNotFound)
}

func (r *ClubRepository) MutateClub(ctx context.Context, clubID string, fn func(*domain.Club) error) (*domain.Club, error) {
	return mutateDoc(ctx, r.db, clubSelectForUpdateSQL, clubUpdateSQL, domain.ErrClubNotFound, fn, clubID)
}
