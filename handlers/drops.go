// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/daily-drop/auth"
	"github.com/danielhkuo/daily-drop/cliparse"
	"github.com/danielhkuo/daily-drop/middleware"
	"github.com/danielhkuo/daily-drop/models"
)

type DropHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDropHandler(db *sql.DB, cfg cliparse.Config) *DropHandler {
	return &DropHandler{db: db, cfg: cfg}
}

// deviceHash resolves the caller's pseudonymous identity from connection
// metadata. Always succeeds, including on missing headers.
func (h *DropHandler) deviceHash(r *http.Request) string {
	return auth.HashDevice(middleware.GetClientIP(r), r.UserAgent(), h.cfg.DeviceHashSalt)
}

// LoadConfig reads the full config mapping. Called fresh at the start of
// each request so operator changes apply immediately.
func LoadConfig(db *sql.DB) (models.ConfigSnapshot, error) {
	rows, err := db.Query(`SELECT key, value FROM config`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := models.ConfigSnapshot{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		snapshot[key] = value
	}
	return snapshot, rows.Err()
}

// countDropsToday counts a single device's drops on the calendar day of now.
func countDropsToday(db *sql.DB, deviceHash string, now time.Time) (int, error) {
	start, end := DayBounds(now)
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM drops
		WHERE device_hash = $1 AND created_at >= $2 AND created_at < $3
	`, deviceHash, start, end).Scan(&count)
	return count, err
}

// countAllDropsToday counts drops across all devices on the calendar day of now.
func countAllDropsToday(db *sql.DB, now time.Time) (int, error) {
	start, end := DayBounds(now)
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM drops WHERE created_at >= $1 AND created_at < $2
	`, start, end).Scan(&count)
	return count, err
}

// clampCharCount bounds n to [0, maxChars].
func clampCharCount(n, maxChars int) int {
	if n < 0 {
		return 0
	}
	if n > maxChars {
		return maxChars
	}
	return n
}

// Status handles GET /api/status
// Returns the caller's today count, streak state, and the current config.
func (h *DropHandler) Status(w http.ResponseWriter, r *http.Request) {
	device := h.deviceHash(r)
	now := time.Now().UTC()

	config, err := LoadConfig(h.db)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	todayCount, err := countDropsToday(h.db, device, now)
	if err != nil {
		slog.Error("failed to count drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	streak, err := getStreak(h.db, device)
	if err != nil {
		slog.Error("failed to query streak", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.StatusResponse{
		TodayCount:      todayCount,
		HasDroppedToday: todayCount > 0,
		Config:          config,
	}
	if streak != nil {
		resp.Streak = streak.CurrentStreak
		resp.LongestStreak = streak.LongestStreak
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Submit handles POST /api/drop
// The admission path: daily cap, mode enumeration, mode enablement, then a
// single transaction appending the drop and advancing the streak. Failure
// paths mutate nothing.
func (h *DropHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitDropRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	device := h.deviceHash(r)
	// Whole-second timestamps keep the stored text form uniform on the
	// embedded driver, so range comparisons stay exact
	now := time.Now().UTC().Truncate(time.Second)
	today := DayString(now)
	yesterday := DayString(now.AddDate(0, 0, -1))

	config, err := LoadConfig(h.db)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	dropsPerDay := config.Int(models.KeyDropsPerDay, 1)
	deviceCount, err := countDropsToday(h.db, device, now)
	if err != nil {
		slog.Error("failed to count drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if deviceCount >= dropsPerDay {
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Already dropped today")
		return
	}

	if !models.IsValidMode(req.Mode) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	if !config.Bool(req.Mode + "_enabled") {
		middleware.ErrorResponse(w, http.StatusForbidden, "Mode disabled")
		return
	}

	charCount := clampCharCount(req.CharCount, config.Int(models.KeyMaxChars, 200))

	// Append the drop and advance the streak as one unit so a store failure
	// cannot leave a drop without its streak update.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO drops (device_hash, mode, char_count, created_at)
		VALUES ($1, $2, $3, $4)
	`, device, req.Mode, charCount, now)
	if err != nil {
		slog.Error("failed to insert drop", "error", err, "device", device)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record drop")
		return
	}

	prev, err := getStreak(tx, device)
	if err != nil {
		slog.Error("failed to query streak", "error", err, "device", device)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record drop")
		return
	}

	next := AdvanceStreak(prev, device, today, yesterday)
	_, err = tx.Exec(`
		INSERT INTO streaks (device_hash, current_streak, longest_streak, last_drop_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (device_hash) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_drop_date = excluded.last_drop_date
	`, next.DeviceHash, next.CurrentStreak, next.LongestStreak, next.LastDropDate)
	if err != nil {
		slog.Error("failed to upsert streak", "error", err, "device", device)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record drop")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record drop")
		return
	}

	total, err := countAllDropsToday(h.db, now)
	if err != nil {
		slog.Error("failed to count drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("drop recorded",
		"device", device,
		"mode", req.Mode,
		"char_count", charCount,
		"streak", next.CurrentStreak,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitDropResponse{
		Success:    true,
		TodayCount: total,
	})
}

// Count handles GET /api/count
// Returns today's total drop count across all devices.
func (h *DropHandler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := countAllDropsToday(h.db, time.Now().UTC())
	if err != nil {
		slog.Error("failed to count drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: total})
}
