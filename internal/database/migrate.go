package database

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies any pending goose migrations from dir. It is run at
// startup when the postgres storage backend is selected so a fresh
// database is usable without a separate migration step.
func Migrate(ctx context.Context, connString, dir string) error {
	db, err := goose.OpenDBWithDriver("pgx", connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToOpenMigrationDB, err)
	}
	defer db.Close()

	goose.SetTableName(MigrationVersionTable)
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}
	return nil
}
