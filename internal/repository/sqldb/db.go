// internal/repository/sqldb/db.go
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	_ "modernc.org/sqlite"
)

// DB wraps an sqlx connection pool for either backend. Queries are written
// with ? placeholders and rebound per dialect; business logic never branches
// on the driver.
type DB struct {
	*sqlx.DB
	sem      *semaphore.Weighted
	bindType int
}

// Open creates a database connection pool for the configured driver.
func Open(cfg *config.StorageConfig) (*DB, error) {
	var (
		db       *sqlx.DB
		bindType int
		err      error
	)

	switch cfg.Driver {
	case "sqlite", "":
		db, err = sqlx.Connect("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite database %s: %w", cfg.SQLitePath, err)
		}
		// modernc sqlite serializes writes through a single connection
		db.SetMaxOpenConns(1)
		bindType = sqlx.QUESTION
	case "postgres":
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		db, err = sqlx.Connect("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("could not connect to postgres: %w", err)
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		bindType = sqlx.DOLLAR
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	return &DB{
		DB:       db,
		sem:      semaphore.NewWeighted(10), // Limit to 10 concurrent operations
		bindType: bindType,
	}, nil
}

// Rebind converts ? placeholders to the dialect's native form.
func (db *DB) Rebind(query string) string {
	return sqlx.Rebind(db.bindType, query)
}

// WithTx executes a function within a transaction
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	// Acquire semaphore
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Error().Err(rbErr).Msg("could not rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}
