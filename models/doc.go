// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitDropRequest: mode, charCount

# Response Types

Types for JSON responses:

  - SubmitDropResponse: success, todayCount
  - StatusResponse: todayCount, hasDroppedToday, streak, longestStreak, config
  - CountResponse: count
  - StatsResponse: aggregate counters, histogram, recent drops
  - SuccessResponse: success
  - ErrorResponse: error

# Domain Types

Internal data structures:

  - Drop: one recorded action (mode, char count, timestamp)
  - Streak: per-device consecutive-day record
  - ConfigSnapshot: full config mapping with Bool/Int accessors

# Constants

Drop modes:

	ModeType  = "type"
	ModeSpeak = "speak"
	ModeDraw  = "draw"

Config keys (see DefaultConfig for seeded values):

	type_enabled, speak_enabled, draw_enabled
	streaks_enabled, global_drops_visible, live_counter_visible
	seasonal_accent, max_chars, drops_per_day, announcement
*/
package models
