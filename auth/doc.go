// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides device hashing and admin key validation.

# Device Hashing

Devices are identified by a salted one-way hash of connection metadata:

	hash := auth.HashDevice(clientIP, userAgent, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256 over the
concatenation of address and user-agent. The hash is stable for the same
pair and cannot be reversed. Collisions between devices sharing a NAT and
a user-agent string are tolerated.

# Admin Keys

Admin endpoints require a process-wide shared secret, checked in constant
time to avoid timing leaks:

	if err := auth.ValidateAdminKey(r.Header.Get("x-admin-key"), cfg.AdminKey); err != nil {
		// 401
	}

The secret has no default; startup fails if ADMIN_KEY is not configured.
*/
package auth
