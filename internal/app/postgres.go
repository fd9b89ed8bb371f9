package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/findim/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open.
var sqlOpener = sql.Open

// pingTimeout bounds the connectivity check performed by InitPostgres.
const pingTimeout = 5 * time.Second

// InitPostgres opens a PostgreSQL pool for the dimension tables and pings it.
//
// Behavior:
//   - Builds the DSN from cfg.Postgres (cfg.Postgres.URL is not trusted, so tests
//     can pass partial configs).
//   - Caps the pool: exports run one COPY at a time.
//   - Closes the handle again when the ping fails.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres %s:%d/%s: %w", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName, err)
	}

	return db, nil
}

// postgresOpener is an indirection used by New; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
