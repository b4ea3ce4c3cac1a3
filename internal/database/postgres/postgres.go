// Package postgres implements the repository contracts on PostgreSQL.
// Aggregates are stored as JSONB documents alongside the few columns
// queries filter or sort on; the Mutate methods take a row lock, apply
// the callback, and write the document back, so concurrent mutations
// of the same record serialize and the loser sees fresh state.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironquest/IronQuest_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

// row is the subset of pgx row sources scanDoc accepts.
type row interface {
	Scan(dest ...any) error
}

// scanDoc scans a single jsonb column into T. A missing row maps to
// notFound so callers surface the domain sentinel directly.
func scanDoc[T any](r row, notFound error) (*T, error) {
	var data []byte
	if err := r.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgScanDocument, err)
	}

	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUnmarshalDocument, err)
	}
	return out, nil
}

// mutateDoc runs the shared read-modify-write cycle: lock the row with
// selectSQL (which must end in FOR UPDATE), apply fn, and write the
// updated document back with updateSQL. The key args bind $1..$n in
// both statements; updateSQL additionally receives the marshaled
// document as its last parameter.
func mutateDoc[T any](ctx context.Context, db *pgxpool.Pool, selectSQL, updateSQL string, notFound error, fn func(*T) error, keys ...any) (*T, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	doc, err := scanDoc[T](tx.QueryRow(ctx, selectSQL, keys...), notFound)
	if err != nil {
		return nil, err
	}

	if err := fn(doc); err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarshalDocument, err)
	}

	if _, err := tx.Exec(ctx, updateSQL, append(keys, data)...); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateDocument, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitTransaction, err)
	}
	return doc, nil
}

// marshalDoc marshals an aggregate for storage.
func marshalDoc(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgMarshalDocument, err)
	}
	return data, nil
}
