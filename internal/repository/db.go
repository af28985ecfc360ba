// Package repository persists user accounts and per-user saved data in
// SQLite. The schema is created on open; there is no separate migration
// step for a single-file embedded database.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT NOT NULL,
	user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	tx_date     TIMESTAMP NOT NULL,
	description TEXT NOT NULL,
	amount      TEXT NOT NULL,
	tx_type     TEXT NOT NULL,
	category    TEXT NOT NULL,
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS settings (
	user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	currency   TEXT NOT NULL,
	categories TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

type Config struct {
	Path        string
	DialTimeout time.Duration
}

// Open opens (creating if needed) the SQLite database and ensures the
// schema exists. Foreign keys are enabled per connection.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Path == "" {
		cfg.Path = "profitcalc.db"
	}
	logger.Info("db.open", "path", cfg.Path)

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("db.open.ok")
	return db, nil
}

// Close closes the database, logging rather than returning the error;
// callers invoke it on shutdown paths where nothing can act on it.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("db.close.failed", "err", err)
		return
	}
	logger.Info("db.close.ok")
}
