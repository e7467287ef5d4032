// Package sqlite implements the repositories on an embedded SQLite
// database. It backs DB_DRIVER=sqlite for local runs and the repository
// tests, which use ":memory:".
//
// Arrays and nested records are stored as JSON text and timestamps as
// RFC 3339 text, so the schema stays portable across SQLite builds.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// Open connects to the database at path, ":memory:" included, and runs the
// migrations. The pool holds a single connection: SQLite allows one writer
// and every in-memory connection would otherwise see its own database.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	pragmas := []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id                   TEXT PRIMARY KEY,
		display_name         TEXT NOT NULL DEFAULT '',
		skills               TEXT NOT NULL DEFAULT '[]',
		professional_summary TEXT,
		education            TEXT NOT NULL DEFAULT '[]',
		employment_history   TEXT NOT NULL DEFAULT '[]',
		contact_email        TEXT,
		contact_phone        TEXT,
		address              TEXT,
		links                TEXT NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS opportunities (
		id              TEXT PRIMARY KEY,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		required_skills TEXT NOT NULL DEFAULT '',
		type            TEXT NOT NULL DEFAULT 'other',
		organization_id TEXT NOT NULL,
		work_mode       TEXT NOT NULL,
		position        INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id             TEXT PRIMARY KEY,
		opportunity_id TEXT NOT NULL,
		student_id     TEXT NOT NULL,
		score          INTEGER NOT NULL,
		matched_skills TEXT NOT NULL DEFAULT '[]',
		reasoning      TEXT NOT NULL DEFAULT '',
		analyzed_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_student ON matches (student_id, analyzed_at)`,
}

// Migrate creates the tables if they do not exist yet
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: running migrations: %w", err)
		}
	}
	return nil
}
