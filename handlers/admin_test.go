package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/daily-drop/models"
	"github.com/danielhkuo/daily-drop/testutil"
)

func TestAdminStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg)

	// Fix timestamps inside the current day so hour bucketing is known
	start, _ := DayBounds(time.Now().UTC())
	at := func(hour, min int) time.Time {
		return start.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	testutil.InsertTestDrop(t, db, "device-a", models.ModeType, 10, at(9, 0))
	testutil.InsertTestDrop(t, db, "device-a", models.ModeSpeak, 20, at(9, 30))
	testutil.InsertTestDrop(t, db, "device-b", models.ModeType, 30, at(14, 5))
	testutil.InsertTestDrop(t, db, "device-c", models.ModeDraw, 40, start.AddDate(0, 0, -1))  // yesterday
	testutil.InsertTestDrop(t, db, "device-d", models.ModeDraw, 50, start.AddDate(0, 0, -10)) // outside the week

	req := testutil.MakeRequest("GET", "/api/admin/stats", nil, nil)
	w := httptest.NewRecorder()
	handler.Stats(w, req)
	testutil.AssertStatus(t, w, 200)

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)

	if stats.TodayCount != 3 {
		t.Errorf("Expected todayCount 3, got %d", stats.TodayCount)
	}
	if stats.YesterdayCount != 1 {
		t.Errorf("Expected yesterdayCount 1, got %d", stats.YesterdayCount)
	}
	if stats.WeekCount != 4 {
		t.Errorf("Expected weekCount 4, got %d", stats.WeekCount)
	}
	if stats.AllTimeCount != 5 {
		t.Errorf("Expected allTimeCount 5, got %d", stats.AllTimeCount)
	}
	if stats.DevicesToday != 2 {
		t.Errorf("Expected devicesToday 2, got %d", stats.DevicesToday)
	}

	expectedHours := []models.HourBucket{{Hour: 9, Count: 2}, {Hour: 14, Count: 1}}
	if len(stats.ByHour) != len(expectedHours) {
		t.Fatalf("Expected %d hour buckets, got %+v", len(expectedHours), stats.ByHour)
	}
	for i, expected := range expectedHours {
		if stats.ByHour[i] != expected {
			t.Errorf("Bucket %d: expected %+v, got %+v", i, expected, stats.ByHour[i])
		}
	}

	if stats.ByMode[models.ModeType] != 2 || stats.ByMode[models.ModeSpeak] != 1 {
		t.Errorf("Unexpected mode counts: %v", stats.ByMode)
	}
	if _, present := stats.ByMode[models.ModeDraw]; present {
		t.Error("Yesterday's draw drop should not appear in today's mode counts")
	}

	if len(stats.RecentDrops) != 5 {
		t.Fatalf("Expected 5 recent drops, got %d", len(stats.RecentDrops))
	}
	// Most recently created first (insertion order, newest id first)
	if stats.RecentDrops[0].CharCount != 50 || stats.RecentDrops[4].CharCount != 10 {
		t.Errorf("Recent drops not in newest-first order: %+v", stats.RecentDrops)
	}
}

func TestAdminStatsRecentLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig())

	now := time.Now().UTC()
	for i := 0; i < 25; i++ {
		testutil.InsertTestDrop(t, db, "device-a", models.ModeType, i, now)
	}

	req := testutil.MakeRequest("GET", "/api/admin/stats", nil, nil)
	w := httptest.NewRecorder()
	handler.Stats(w, req)

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)
	if len(stats.RecentDrops) != 20 {
		t.Errorf("Expected recent drops capped at 20, got %d", len(stats.RecentDrops))
	}
	if stats.RecentDrops[0].CharCount != 24 {
		t.Errorf("Expected newest drop first, got charCount %d", stats.RecentDrops[0].CharCount)
	}
}

func TestAdminDropBypass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig())

	// The daily cap does not apply to the bypass
	for i := 0; i < 3; i++ {
		req := testutil.MakeRequest("POST", "/api/admin/drop", models.SubmitDropRequest{
			Mode:      models.ModeType,
			CharCount: 500,
		}, nil)
		w := httptest.NewRecorder()
		handler.Drop(w, req)
		testutil.AssertStatus(t, w, 200)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM drops WHERE device_hash = $1`, models.DeviceAdmin).Scan(&count); err != nil {
		t.Fatalf("Failed to count drops: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 admin drops, got %d", count)
	}

	// charCount is still clamped on recording
	var stored int
	if err := db.QueryRow(`SELECT MAX(char_count) FROM drops WHERE device_hash = $1`, models.DeviceAdmin).Scan(&stored); err != nil {
		t.Fatalf("Failed to query char_count: %v", err)
	}
	if stored != 200 {
		t.Errorf("Expected clamped char_count 200, got %d", stored)
	}

	// The bypass never touches streaks
	streak, err := getStreak(db, models.DeviceAdmin)
	if err != nil {
		t.Fatalf("Failed to query streak: %v", err)
	}
	if streak != nil {
		t.Error("Admin bypass should not create a streak row")
	}
}

func TestAdminConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig())

	t.Run("get returns seeded defaults", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/api/admin/config", nil, nil)
		w := httptest.NewRecorder()
		handler.GetConfig(w, req)
		testutil.AssertStatus(t, w, 200)

		var config map[string]string
		testutil.AssertJSON(t, w, &config)
		if config[models.KeyDropsPerDay] != "1" || config[models.KeyMaxChars] != "200" {
			t.Errorf("Unexpected defaults: %v", config)
		}
		if len(config) != len(models.DefaultConfig) {
			t.Errorf("Expected %d keys, got %d", len(models.DefaultConfig), len(config))
		}
	})

	t.Run("put coerces values and upserts", func(t *testing.T) {
		body := map[string]interface{}{
			models.KeySpeakEnabled: false,
			models.KeyMaxChars:     300,
			models.KeyAnnouncement: "maintenance at noon",
			"brand_new_key":        "hello",
		}
		req := testutil.MakeRequest("PUT", "/api/admin/config", body, nil)
		w := httptest.NewRecorder()
		handler.PutConfig(w, req)
		testutil.AssertStatus(t, w, 200)

		var config map[string]string
		rows, err := db.Query(`SELECT key, value FROM config`)
		if err != nil {
			t.Fatalf("Failed to query config: %v", err)
		}
		defer rows.Close()
		config = map[string]string{}
		for rows.Next() {
			var k, v string
			if err := rows.Scan(&k, &v); err != nil {
				t.Fatalf("Failed to scan config: %v", err)
			}
			config[k] = v
		}

		if config[models.KeySpeakEnabled] != "false" {
			t.Errorf("Expected boolean coerced to \"false\", got %q", config[models.KeySpeakEnabled])
		}
		if config[models.KeyMaxChars] != "300" {
			t.Errorf("Expected number coerced to \"300\", got %q", config[models.KeyMaxChars])
		}
		if config[models.KeyAnnouncement] != "maintenance at noon" {
			t.Errorf("Unexpected announcement: %q", config[models.KeyAnnouncement])
		}
		if config["brand_new_key"] != "hello" {
			t.Errorf("Expected new key inserted, got %q", config["brand_new_key"])
		}
		// Untouched keys keep their values
		if config[models.KeyTypeEnabled] != "true" {
			t.Errorf("Untouched key changed: %q", config[models.KeyTypeEnabled])
		}
	})

	t.Run("put is idempotent", func(t *testing.T) {
		body := map[string]interface{}{models.KeyDropsPerDay: 2}

		for i := 0; i < 2; i++ {
			req := testutil.MakeRequest("PUT", "/api/admin/config", body, nil)
			w := httptest.NewRecorder()
			handler.PutConfig(w, req)
			testutil.AssertStatus(t, w, 200)
		}

		var value string
		if err := db.QueryRow(`SELECT value FROM config WHERE key = $1`, models.KeyDropsPerDay).Scan(&value); err != nil {
			t.Fatalf("Failed to query config: %v", err)
		}
		if value != "2" {
			t.Errorf("Expected \"2\", got %q", value)
		}
		var total int
		if err := db.QueryRow(`SELECT COUNT(*) FROM config WHERE key = $1`, models.KeyDropsPerDay).Scan(&total); err != nil {
			t.Fatalf("Failed to count config rows: %v", err)
		}
		if total != 1 {
			t.Errorf("Expected a single row, got %d", total)
		}
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/admin/config", "not a map", nil)
		w := httptest.NewRecorder()
		handler.PutConfig(w, req)
		testutil.AssertStatus(t, w, 400)
	})
}

func TestAdminResetStreaks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig())

	testutil.InsertTestStreak(t, db, "device-a", 5, 9, "2026-03-09")
	testutil.InsertTestStreak(t, db, "device-b", 2, 2, "2026-03-08")

	req := testutil.MakeRequest("POST", "/api/admin/reset-streaks", nil, nil)
	w := httptest.NewRecorder()
	handler.ResetStreaks(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.SuccessResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success {
		t.Error("Expected success response")
	}

	for _, device := range []string{"device-a", "device-b"} {
		streak, err := getStreak(db, device)
		if err != nil {
			t.Fatalf("Failed to query streak: %v", err)
		}
		if streak.CurrentStreak != 0 {
			t.Errorf("%s: expected current streak 0, got %d", device, streak.CurrentStreak)
		}
	}

	// Longest and last date are untouched
	streak, _ := getStreak(db, "device-a")
	if streak.LongestStreak != 9 {
		t.Errorf("Expected longest streak preserved at 9, got %d", streak.LongestStreak)
	}
	if streak.LastDropDate == nil || *streak.LastDropDate != "2026-03-09" {
		t.Errorf("Expected last drop date preserved, got %v", streak.LastDropDate)
	}
}

func TestAdminResetCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig())

	now := time.Now().UTC()
	testutil.InsertTestDrop(t, db, "device-a", models.ModeType, 10, now)
	testutil.InsertTestDrop(t, db, "device-b", models.ModeSpeak, 20, now)
	testutil.InsertTestDrop(t, db, "device-a", models.ModeType, 30, now.AddDate(0, 0, -1))

	req := testutil.MakeRequest("POST", "/api/admin/reset-counter", nil, nil)
	w := httptest.NewRecorder()
	handler.ResetCounter(w, req)
	testutil.AssertStatus(t, w, 200)

	var todayCount, total int
	start, end := DayBounds(now)
	if err := db.QueryRow(`SELECT COUNT(*) FROM drops WHERE created_at >= $1 AND created_at < $2`, start, end).Scan(&todayCount); err != nil {
		t.Fatalf("Failed to count today's drops: %v", err)
	}
	if todayCount != 0 {
		t.Errorf("Expected today's drops deleted, got %d", todayCount)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM drops`).Scan(&total); err != nil {
		t.Fatalf("Failed to count drops: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected historical drop preserved, got %d rows", total)
	}
}
