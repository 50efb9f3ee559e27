package db

import (
	"context"
	"database/sql"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// Migrate runs the embedded schema.sql against the database on startup.
// Every statement in the file is guarded with IF NOT EXISTS, so the call is
// safe to repeat on an already-migrated database.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
