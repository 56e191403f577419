package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/garrison-vtt/garrison/migrations"
)

// RunMigrations opens a connection to the database and applies all pending
// migrations, returning the number applied. With an empty dir the
// migrations embedded in the binary are used.
func RunMigrations(ctx context.Context, databaseURL, dir string) (int, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, MigrationFS(dir))
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}
	return len(results), nil
}

// MigrationFS returns the migration source for dir, falling back to the
// embedded core migrations when dir is empty.
func MigrationFS(dir string) fs.FS {
	if dir == "" {
		return migrations.Core()
	}
	return os.DirFS(dir)
}
