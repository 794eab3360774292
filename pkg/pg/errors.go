package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrFailedToOpenDBConnection = errors.New("pg.errors.failed_to_open_connection")
	ErrEmptyConnectionString    = errors.New("pg.errors.empty_connection_string")
	ErrHealthcheckFailed        = errors.New("pg.errors.healthcheck_failed")
	ErrFailedToParseDBConfig    = errors.New("pg.errors.failed_to_parse_config")
	ErrFailedToApplyMigrations  = errors.New("pg.errors.failed_to_apply_migrations")
	ErrMigrationsDirNotFound    = errors.New("pg.errors.migrations_dir_not_found")
)

// IsNotFoundError reports whether err wraps pgx.ErrNoRows.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}
