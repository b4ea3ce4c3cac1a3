package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// TerritoryRepository implements repository.Territory for PostgreSQL.
type TerritoryRepository struct {
	db *pgxpool.Pool
}

// NewTerritoryRepository creates a new TerritoryRepository
func NewTerritoryRepository(db *pgxpool.Pool) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

const locationSelectSQL = `SELECT data FROM gym_locations WHERE id = $1`
const locationSelectForUpdateSQL = locationSelectSQL + ` FOR UPDATE`
const locationUpdateSQL = `
	UPDATE gym_locations
	SET data = $2::jsonb,
	    controlling_club_id = $2::jsonb->>'controlling_club_id'
	WHERE id = $1
`

func (r *TerritoryRepository) CreateLocation(ctx context.Context, loc *domain.GymLocation) error {
	data, err := marshalDoc(loc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO gym_locations (id, place_id, controlling_club_id, data)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.Exec(ctx, query, loc.ID, loc.PlaceID, loc.ControllingClubID, data)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	return nil
}

func (r *TerritoryRepository) GetLocation(ctx context.Context, locationID string) (*domain.GymLocation, error) {
	return scanDoc[domain.GymLocation](r.db.QueryRow(ctx, locationSelectSQL, locationID), domain.ErrLocationNotFound)
}

func (r *TerritoryRepository) ListLocations(ctx context.Context) ([]domain.GymLocation, error) {
	rows, err := r.db.Query(ctx, `SELECT data FROM gym_locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []domain.GymLocation{}
	for rows.Next() {
		loc, err := scanDoc[domain.GymLocation](rows, domain.ErrLocationNotFound)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

func (r *TerritoryRepository) MutateLocation(ctx context.Context, locationID string, fn func(*domain.GymLocation) error) (*domain.GymLocation, error) {
	return mutateDoc(ctx, r.db, locationSelectForUpdateSQL, locationUpdateSQL, domain.ErrLocationNotFound, fn, locationID)
}

func (r *TerritoryRepository) CountControlledBy(ctx context.Context, clubID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM gym_locations WHERE controlling_club_id = $1`, clubID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count controlled locations: %w", err)
	}
	return count, nil
}
