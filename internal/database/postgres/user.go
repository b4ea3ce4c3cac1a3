package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// UserRepository implements repository.User for PostgreSQL.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectSQL = `SELECT data FROM users WHERE id = $1`
const userSelectForUpdateSQL = userSelectSQL + ` FOR UPDATE`
const userUpdateSQL = `
	UPDATE users
	SET data = $2::jsonb,
	    username = $2::jsonb->>'username',
	    level = ($2::jsonb->>'level')::int,
	    xp = ($2::jsonb->>'xp')::int,
	    updated_at = NOW()
	WHERE id = $1
`

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.UserProgress) error {
	data, err := marshalDoc(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, username, level, xp, data)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.Exec(ctx, query, user.ID, user.Username, user.Level, user.XP, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, user.Username)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return scanDoc[domain.UserProgress](r.db.QueryRow(ctx, userSelectSQL, userID), domain.ErrUserNotFound)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.UserProgress, error) {
	query := `SELECT data FROM users WHERE username = $1`
	return scanDoc[domain.UserProgress](r.db.QueryRow(ctx, query, username), domain.ErrUserNotFound)
}

func (r *UserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) MutateUser(ctx context.Context, userID string, fn func(*domain.UserProgress) error) (*domain.UserProgress, error) {
	return mutateDoc(ctx, r.db, userSelectForUpdateSQL, userUpdateSQL, domain.ErrUserNotFound, fn, userID)
}

func (r *UserRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT id, username, level, xp
		FROM users
		ORDER BY level DESC, xp DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Level, &e.XP); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
