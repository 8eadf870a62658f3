package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-journal/internal/config"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Open connects to the configured database and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent workers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func sqliteDSN(path string) string {
	params := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

// Migrate creates missing tables. Statements are idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tsType := "TIMESTAMPTZ"
	if db.DriverName() == config.DriverSQLite {
		tsType = "TIMESTAMP"
	}

	for _, stmt := range schema {
		stmt = strings.ReplaceAll(stmt, "{{ts}}", tsType)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    {{ts}} NOT NULL,
		updated_at    {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL DEFAULT '',
		sort_order  INTEGER NOT NULL DEFAULT 0,
		version     INTEGER NOT NULL DEFAULT 1,
		created_at  {{ts}} NOT NULL,
		updated_at  {{ts}} NOT NULL,
		archived_at {{ts}},
		deleted_at  {{ts}}
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits (user_id, updated_at)`,
	`CREATE TABLE IF NOT EXISTS habit_logs (
		id           TEXT PRIMARY KEY,
		habit_id     TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		log_date     TEXT NOT NULL,
		completed    BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at {{ts}},
		version      INTEGER NOT NULL DEFAULT 1,
		created_at   {{ts}} NOT NULL,
		updated_at   {{ts}} NOT NULL,
		deleted_at   {{ts}}
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_habit_logs_day ON habit_logs (habit_id, log_date) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_habit_logs_user ON habit_logs (user_id, updated_at)`,
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		entry_date TEXT NOT NULL,
		title      TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL,
		mood       INTEGER,
		version    INTEGER NOT NULL DEFAULT 1,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL,
		deleted_at {{ts}}
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_journal_day ON journal_entries (user_id, entry_date) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries (user_id, updated_at)`,
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
	}
	return false
}
