// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. databaseType is "postgres"
// or "sqlite"; url is a postgres DSN or a sqlite file path.
func Open(databaseType, url string) (*sql.DB, error) {
	switch databaseType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		return sql.Open("sqlite", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL stays portable across lib/pq and modernc sqlite: TEXT ids,
// no NOW() defaults (timestamps are always written from Go), answers
// and matched_home_ids stored as JSON text.
const schema = `
-- Applications
CREATE TABLE IF NOT EXISTS application (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    answers TEXT NOT NULL DEFAULT '{}',
    status TEXT NOT NULL DEFAULT 'in_progress' CHECK (status IN ('in_progress', 'frozen', 'submitted')),
    current_section TEXT,
    matched_home_ids TEXT,
    frozen_at TIMESTAMP,
    submitted_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_application_email ON application(email);
CREATE INDEX IF NOT EXISTS idx_application_status ON application(status);

-- Homes
CREATE TABLE IF NOT EXISTS home (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    color TEXT NOT NULL,
    logo_url TEXT,
    location TEXT NOT NULL,
    description_template TEXT NOT NULL,
    matching_prompt TEXT NOT NULL,
    question TEXT,
    video_url TEXT,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_home_active ON home(active);
CREATE INDEX IF NOT EXISTS idx_home_display_order ON home(display_order);
`
