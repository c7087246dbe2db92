// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and config seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The databaseType argument picks the DDL dialect; "sqlite" uses INTEGER
AUTOINCREMENT keys, "postgres" uses BIGSERIAL. Everything outside the DDL is
written once with $1 placeholders, which both drivers accept.

# Tables

  - drops: Append-only ledger of recorded actions
  - streaks: One mutable row per device (current, longest, last date)
  - config: Runtime-mutable key/value settings

# Config Seeding

SeedConfigDefaults runs at every boot and inserts each default key only if
absent (ON CONFLICT DO NOTHING). An operator-set value survives restarts.

	if err := db.SeedConfigDefaults(conn); err != nil {
		log.Fatal(err)
	}

# Indexes

Performance indexes on:

  - drops.device_hash
  - drops.created_at
*/
package db
