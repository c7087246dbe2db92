// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Daily Drop API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - DropHandler: Public status, drop submission, live counter
  - AdminHandler: Stats, bypass insertion, config, maintenance

Handlers are created via constructor functions that accept *sql.DB and Config:

	dropHandler := handlers.NewDropHandler(db, cfg)

# Admission Flow

Submit is the core decision point. Every request reads a fresh config
snapshot, then runs the admission checks in order:

 1. Daily cap: today's per-device count vs drops_per_day → 429
 2. Mode enumeration: one of type/speak/draw → 400
 3. Mode enablement: {mode}_enabled flag → 403

A passing request appends the drop and advances the streak inside one
transaction; failing requests mutate nothing. charCount is clamped to
[0, max_chars] before recording.

# Streak Transition Rule

AdvanceStreak in streak.go is the pure transition function:

	next := AdvanceStreak(prev, deviceHash, today, yesterday)

First drop creates current=longest=1; a drop the day after the last one
increments current; a second drop the same day leaves it unchanged; any
gap resets current to 1. longest never decreases.

All calendar math is UTC, derived from a single timestamp captured at the
top of the request.

# Device Identity

Public endpoints resolve the caller to a salted 16-hex-char hash of
client IP + user-agent (see package auth). Admin endpoints skip identity
resolution entirely.

# Concurrency

The cap check and the insert are not atomic against concurrent requests
from the same device; two racing requests can both pass the check. The
window is documented rather than closed - a uniqueness constraint on
(device, day) could not express drops_per_day > 1.
*/
package handlers
