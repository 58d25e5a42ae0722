// Package store persists normalized statements and assessments. Postgres
// repositories keep the JSONB-blob layout; in-memory implementations back
// tests and single-process runs.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the shared connection pool.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS normalized_statements (
//	  document_id TEXT PRIMARY KEY,
//	  company_id  TEXT NOT NULL,
//	  statement_json JSONB NOT NULL,
//	  created_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE IF NOT EXISTS assessments (
//	  id          TEXT PRIMARY KEY,
//	  company_id  TEXT NOT NULL,
//	  assessment_json JSONB NOT NULL,
//	  created_at  TIMESTAMPTZ NOT NULL
//	);
func InitDB(ctx context.Context, databaseURL string) error {
	var err error
	once.Do(func() {
		if databaseURL == "" {
			err = fmt.Errorf("database URL not configured")
			return
		}

		config, parseErr := pgxpool.ParseConfig(databaseURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the shared connection pool.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
