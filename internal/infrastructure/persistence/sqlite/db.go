// Package sqlite stores the orphaned-order ledger in a local SQLite file for
// single-instance deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS orphaned_orders (
		order_id        TEXT PRIMARY KEY,
		environment     TEXT NOT NULL CHECK (environment IN ('sandbox', 'production')),
		location_id     TEXT NOT NULL,
		amount_cents    INTEGER NOT NULL CHECK (amount_cents > 0),
		currency        TEXT NOT NULL,
		reference_id    TEXT NOT NULL DEFAULT '',
		buyer_email     TEXT NOT NULL DEFAULT '',
		failure_details TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		resolved_at     TEXT,
		resolution      TEXT CHECK (resolution IN ('paid', 'canceled'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orphaned_orders_unresolved
		ON orphaned_orders (created_at)
		WHERE resolved_at IS NULL`,
}

// Open opens the database file and applies the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite ledger: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("opened sqlite ledger", "path", path)
	return db, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply sqlite migration %d: %w", i+1, err)
		}
	}
	return nil
}
