// Package storage opens the catalog's SQLite database and applies embedded
// goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/applists/internal/filex"
	"github.com/dmitrijs2005/applists/internal/storage/migrations"
	"github.com/pressly/goose/v3"
)

// DSN builds a SQLite connection string for the given file path (or
// ":memory:") with foreign-key enforcement enabled. Cascade deletes and
// SET NULL re-parenting depend on that pragma.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
}

// RunMigrations applies all embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at path and migrates it to the
// current schema. The file is exclusive to this process.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
