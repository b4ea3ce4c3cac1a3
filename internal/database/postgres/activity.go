package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/repository"
)

// ActivityRepository implements repository.Activity for PostgreSQL.
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, entry repository.ActivityEntry, keep int) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMarshalDocument, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	insert := `
		INSERT INTO activity_log (event_type, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insert, entry.EventType, entry.UserID, payload, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}

	// Trim the user's log to the retention cap, oldest first. Global
	// entries (nil user) are never trimmed here.
	if entry.UserID != nil && keep > 0 {
		trim := `
			DELETE FROM activity_log
			WHERE user_id = $1
			  AND id NOT IN (
				SELECT id FROM activity_log
				WHERE user_id = $1
				ORDER BY id DESC
				LIMIT $2
			  )
		`
		if _, err := tx.Exec(ctx, trim, *entry.UserID, keep); err != nil {
			return fmt.Errorf("failed to trim activity log: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *ActivityRepository) GetByUser(ctx context.Context, userID string, limit int) ([]repository.ActivityEntry, error) {
	query := `
		SELECT id, event_type, user_id, payload, created_at
		FROM activity_log
		WHERE user_id = $1
		ORDER BY id DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return r.queryEntries(ctx, query, args...)
}

func (r *ActivityRepository) GetRecent(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	query := `
		SELECT id, event_type, user_id, payload, created_at
		FROM activity_log
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.queryEntries(ctx, query, args...)
}

func (r *ActivityRepository) queryEntries(ctx context.Context, query string, args ...any) ([]repository.ActivityEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity log: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.ActivityEntry, error) {
		var e repository.ActivityEntry
		var payload []byte
		if err := row.Scan(&e.ID, &e.EventType, &e.UserID, &payload, &e.CreatedAt); err != nil {
			return e, err
		}
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return e, fmt.Errorf("%s: %w", ErrMsgUnmarshalDocument, err)
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity entries: %w", err)
	}
	return entries, nil
}
