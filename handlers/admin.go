// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/daily-drop/cliparse"
	"github.com/danielhkuo/daily-drop/middleware"
	"github.com/danielhkuo/daily-drop/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Stats handles GET /api/admin/stats
// Read-only rollups over the drop ledger as of now.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	todayStart, todayEnd := DayBounds(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayEnd.AddDate(0, 0, -7)

	stats := models.StatsResponse{
		ByMode:      map[string]int{},
		ByHour:      []models.HourBucket{},
		RecentDrops: []models.RecentDrop{},
	}

	counts := []struct {
		dest  *int
		query string
		args  []interface{}
	}{
		{&stats.TodayCount, `SELECT COUNT(*) FROM drops WHERE created_at >= $1 AND created_at < $2`, []interface{}{todayStart, todayEnd}},
		{&stats.YesterdayCount, `SELECT COUNT(*) FROM drops WHERE created_at >= $1 AND created_at < $2`, []interface{}{yesterdayStart, todayStart}},
		{&stats.WeekCount, `SELECT COUNT(*) FROM drops WHERE created_at >= $1 AND created_at < $2`, []interface{}{weekStart, todayEnd}},
		{&stats.AllTimeCount, `SELECT COUNT(*) FROM drops`, nil},
		{&stats.DevicesToday, `SELECT COUNT(DISTINCT device_hash) FROM drops WHERE created_at >= $1 AND created_at < $2`, []interface{}{todayStart, todayEnd}},
	}
	for _, c := range counts {
		if err := h.db.QueryRow(c.query, c.args...).Scan(c.dest); err != nil {
			slog.Error("failed to query stats count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Per-hour histogram: fetch today's timestamps and bucket in Go so the
	// query stays identical on both drivers.
	rows, err := h.db.Query(`
		SELECT created_at FROM drops WHERE created_at >= $1 AND created_at < $2
	`, todayStart, todayEnd)
	if err != nil {
		slog.Error("failed to query today's drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	byHour := map[int]int{}
	for rows.Next() {
		var createdAt time.Time
		if err := rows.Scan(&createdAt); err != nil {
			slog.Error("failed to scan drop timestamp", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		byHour[createdAt.UTC().Hour()]++
	}
	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	for _, hour := range hours {
		stats.ByHour = append(stats.ByHour, models.HourBucket{Hour: hour, Count: byHour[hour]})
	}

	modeRows, err := h.db.Query(`
		SELECT mode, COUNT(*) FROM drops
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY mode
	`, todayStart, todayEnd)
	if err != nil {
		slog.Error("failed to query mode counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer modeRows.Close()

	for modeRows.Next() {
		var mode string
		var count int
		if err := modeRows.Scan(&mode, &count); err != nil {
			slog.Error("failed to scan mode count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		stats.ByMode[mode] = count
	}

	recentRows, err := h.db.Query(`
		SELECT mode, char_count, created_at FROM drops
		ORDER BY id DESC LIMIT 20
	`)
	if err != nil {
		slog.Error("failed to query recent drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer recentRows.Close()

	for recentRows.Next() {
		var d models.RecentDrop
		if err := recentRows.Scan(&d.Mode, &d.CharCount, &d.CreatedAt); err != nil {
			slog.Error("failed to scan recent drop", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		stats.RecentDrops = append(stats.RecentDrops, d)
	}

	slog.Info("admin stats computed",
		"today", stats.TodayCount,
		"all_time", humanize.Comma(int64(stats.AllTimeCount)),
	)

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Drop handles POST /api/admin/drop
// Unconditional insert under the synthetic "admin" identity. Skips the
// daily cap and mode gates; does not touch streaks.
func (h *AdminHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitDropRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	now := time.Now().UTC().Truncate(time.Second)

	config, err := LoadConfig(h.db)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	charCount := clampCharCount(req.CharCount, config.Int(models.KeyMaxChars, 200))

	_, err = h.db.Exec(`
		INSERT INTO drops (device_hash, mode, char_count, created_at)
		VALUES ($1, $2, $3, $4)
	`, models.DeviceAdmin, req.Mode, charCount, now)
	if err != nil {
		slog.Error("failed to insert admin drop", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record drop")
		return
	}

	total, err := countAllDropsToday(h.db, now)
	if err != nil {
		slog.Error("failed to count drops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("admin drop recorded", "mode", req.Mode, "char_count", charCount)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitDropResponse{
		Success:    true,
		TodayCount: total,
	})
}

// GetConfig handles GET /api/admin/config
func (h *AdminHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	config, err := LoadConfig(h.db)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, config)
}

// PutConfig handles PUT /api/admin/config
// Upserts an arbitrary key/value map as one atomic unit. Values arrive as
// JSON strings, numbers, or booleans and are coerced to text.
func (h *AdminHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.UseNumber() // keep numeric literals as written

	var entries map[string]interface{}
	if err := dec.Decode(&entries); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for key, value := range entries {
		_, err := tx.Exec(`
			INSERT INTO config (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`, key, coerceConfigValue(value))
		if err != nil {
			slog.Error("failed to upsert config", "error", err, "key", key)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update config")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit config update", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update config")
		return
	}

	slog.Info("config updated", "keys", len(entries))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ResetStreaks handles POST /api/admin/reset-streaks
// Zeroes current_streak for every device; longest_streak and last_drop_date
// are preserved.
func (h *AdminHandler) ResetStreaks(w http.ResponseWriter, r *http.Request) {
	_, err := h.db.Exec(`UPDATE streaks SET current_streak = 0`)
	if err != nil {
		slog.Error("failed to reset streaks", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset streaks")
		return
	}

	slog.Info("streaks reset")

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ResetCounter handles POST /api/admin/reset-counter
// Deletes every drop recorded on the current calendar day. Irreversible.
func (h *AdminHandler) ResetCounter(w http.ResponseWriter, r *http.Request) {
	start, end := DayBounds(time.Now().UTC())
	_, err := h.db.Exec(`
		DELETE FROM drops WHERE created_at >= $1 AND created_at < $2
	`, start, end)
	if err != nil {
		slog.Error("failed to reset counter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset counter")
		return
	}

	slog.Info("today's drops deleted")

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// coerceConfigValue renders a decoded JSON value as config-table text.
func coerceConfigValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case nil:
		return ""
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}
