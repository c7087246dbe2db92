// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3324)
  - DatabaseURL: Connection string or SQLite file path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKey: Shared secret for admin endpoints (required)
  - DeviceHashSalt: Secret for device identity hashing (required)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--admin-key   Admin API key
	--device-salt Device hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	ADMIN_KEY        → --admin-key
	DEVICE_HASH_SALT → --device-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY must be provided - there is deliberately no built-in fallback
  - DEVICE_HASH_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
