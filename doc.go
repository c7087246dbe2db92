// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Daily Drop API server.

Daily Drop is a small backend tracking one daily "drop" action per device
(type, speak, or draw), with streak bookkeeping, runtime-configurable
feature flags, and an admin dashboard feed. Devices are identified by a
salted hash of connection metadata; no accounts, no sessions.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	ADMIN_KEY=... DEVICE_HASH_SALT=... DATABASE_URL=dailydrop.db go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY (--admin-key): Shared secret for admin endpoints
  - DEVICE_HASH_SALT (--device-salt): Secret for device identity hashing

Optional settings:

  - PORT (-p): Server port (default: 3324)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (drops, admin) and the streak rule
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - models: Request/response types and config constants
  - auth: Device hashing and admin key validation
  - db: Schema creation and config default seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
