package pg

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies pending migrations. The embedded set is used unless
// cfg.MigrationsPath points at a directory.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	var migrations fs.FS = Migrations()
	if cfg.MigrationsPath != "" {
		if _, err := os.Stat(cfg.MigrationsPath); err != nil {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		migrations = os.DirFS(cfg.MigrationsPath)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", "error", err)
		}
	}()

	table := cfg.MigrationsTable
	if table == "" {
		table = "schema_migrations"
	}
	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	provider, err := goose.NewProvider("", db, migrations, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}
	return nil
}
