// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/daily-drop/cliparse"
	"github.com/danielhkuo/daily-drop/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema and seeded config defaults. Each test gets its own store.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// An in-memory database exists per connection; keep the pool at one
	// so every query sees the same store.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.SeedConfigDefaults(conn); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3324,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		AdminKey:       "test-admin-key",
		DeviceHashSalt: "test-device-salt",
	}
}

// InsertTestDrop inserts a drop row with an explicit timestamp, bypassing
// the admission path. Used to build up history (e.g. yesterday's drops).
func InsertTestDrop(t *testing.T, conn *sql.DB, deviceHash, mode string, charCount int, createdAt time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO drops (device_hash, mode, char_count, created_at)
		VALUES ($1, $2, $3, $4)
	`, deviceHash, mode, charCount, createdAt)
	if err != nil {
		t.Fatalf("Failed to insert test drop: %v", err)
	}
}

// InsertTestStreak inserts a streak row directly. lastDropDate may be
// empty for a null date.
func InsertTestStreak(t *testing.T, conn *sql.DB, deviceHash string, current, longest int, lastDropDate string) {
	t.Helper()

	var last interface{}
	if lastDropDate != "" {
		last = lastDropDate
	}
	_, err := conn.Exec(`
		INSERT INTO streaks (device_hash, current_streak, longest_streak, last_drop_date)
		VALUES ($1, $2, $3, $4)
	`, deviceHash, current, longest, last)
	if err != nil {
		t.Fatalf("Failed to insert test streak: %v", err)
	}
}

// SetTestConfig overwrites a config value directly.
func SetTestConfig(t *testing.T, conn *sql.DB, key, value string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		t.Fatalf("Failed to set test config: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
