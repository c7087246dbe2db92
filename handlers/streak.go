// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"time"

	"github.com/danielhkuo/daily-drop/models"
)

// All day arithmetic in this package is done in UTC. One time.Time is
// captured at the top of each request and reused for the cap check, the
// insert timestamp and the today/yesterday derivation, so a request
// straddling midnight stays internally consistent.

// DayString formats t as a calendar date (YYYY-MM-DD) in UTC.
func DayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayBounds returns the half-open UTC range [start, end) covering the
// calendar day containing t.
func DayBounds(t time.Time) (start, end time.Time) {
	u := t.UTC()
	start = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// AdvanceStreak applies the streak transition rule to the pre-write record
// prev (nil when the device has no streak row yet) for a successful drop on
// the given today/yesterday calendar dates:
//
//   - no prior row           → current 1, longest 1
//   - last date == yesterday → current + 1 (consecutive-day continuation)
//   - last date == today     → current unchanged (second drop same day)
//   - anything else          → current reset to 1
//
// longest never decreases and last_drop_date always becomes today.
func AdvanceStreak(prev *models.Streak, deviceHash, today, yesterday string) models.Streak {
	next := models.Streak{
		DeviceHash:    deviceHash,
		CurrentStreak: 1,
		LongestStreak: 1,
		LastDropDate:  &today,
	}

	if prev == nil {
		return next
	}

	switch {
	case prev.LastDropDate != nil && *prev.LastDropDate == today:
		next.CurrentStreak = prev.CurrentStreak
	case prev.LastDropDate != nil && *prev.LastDropDate == yesterday:
		next.CurrentStreak = prev.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}

	next.LongestStreak = prev.LongestStreak
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	return next
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx, so streak lookups
// work inside and outside the recording transaction.
type rowQuerier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// getStreak loads the streak row for a device. Returns (nil, nil) when the
// device has never dropped.
func getStreak(q rowQuerier, deviceHash string) (*models.Streak, error) {
	var s models.Streak
	err := q.QueryRow(`
		SELECT device_hash, current_streak, longest_streak, last_drop_date
		FROM streaks WHERE device_hash = $1
	`, deviceHash).Scan(&s.DeviceHash, &s.CurrentStreak, &s.LongestStreak, &s.LastDropDate)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
