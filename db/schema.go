// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/daily-drop/models"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// databaseType selects the DDL dialect ("sqlite" or "postgres"); all other
// SQL in the codebase is shared between the two drivers.
func CreateSchema(db *sql.DB, databaseType string) error {
	schema := schemaPostgres
	if databaseType == "sqlite" {
		schema = schemaSQLite
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SeedConfigDefaults inserts the default config entries, skipping any key
// that already exists. Operator-set values are never clobbered by a restart.
func SeedConfigDefaults(db *sql.DB) error {
	for key, value := range models.DefaultConfig {
		_, err := db.Exec(`
			INSERT INTO config (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to seed config key %q: %w", key, err)
		}
	}

	return nil
}

const schemaPostgres = `
-- Drops: the append-only ledger of recorded actions
CREATE TABLE IF NOT EXISTS drops (
    id BIGSERIAL PRIMARY KEY,
    device_hash TEXT NOT NULL,
    mode TEXT NOT NULL,
    char_count INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drops_device_hash ON drops(device_hash);
CREATE INDEX IF NOT EXISTS idx_drops_created_at ON drops(created_at);

-- Streaks: one mutable row per device
CREATE TABLE IF NOT EXISTS streaks (
    device_hash TEXT PRIMARY KEY,
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    last_drop_date TEXT
);

-- Config: runtime-mutable key/value settings
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const schemaSQLite = `
-- Drops: the append-only ledger of recorded actions
CREATE TABLE IF NOT EXISTS drops (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_hash TEXT NOT NULL,
    mode TEXT NOT NULL,
    char_count INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drops_device_hash ON drops(device_hash);
CREATE INDEX IF NOT EXISTS idx_drops_created_at ON drops(created_at);

-- Streaks: one mutable row per device
CREATE TABLE IF NOT EXISTS streaks (
    device_hash TEXT PRIMARY KEY,
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    last_drop_date TEXT
);

-- Config: runtime-mutable key/value settings
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
