package models

import (
	"strconv"
	"time"
)

// Drop mode constants
const (
	ModeType  = "type"
	ModeSpeak = "speak"
	ModeDraw  = "draw"
)

// DeviceAdmin is the synthetic identity used for admin bypass insertions.
const DeviceAdmin = "admin"

// Config keys
const (
	KeyTypeEnabled        = "type_enabled"
	KeySpeakEnabled       = "speak_enabled"
	KeyDrawEnabled        = "draw_enabled"
	KeyStreaksEnabled     = "streaks_enabled"
	KeyGlobalDropsVisible = "global_drops_visible"
	KeyLiveCounterVisible = "live_counter_visible"
	KeySeasonalAccent     = "seasonal_accent"
	KeyMaxChars           = "max_chars"
	KeyDropsPerDay        = "drops_per_day"
	KeyAnnouncement       = "announcement"
)

// DefaultConfig is the set of config entries seeded at startup.
// Seeding is insert-if-absent; operator-set values survive restarts.
var DefaultConfig = map[string]string{
	KeyTypeEnabled:        "true",
	KeySpeakEnabled:       "true",
	KeyDrawEnabled:        "true",
	KeyStreaksEnabled:     "true",
	KeyGlobalDropsVisible: "true",
	KeyLiveCounterVisible: "true",
	KeySeasonalAccent:     "true",
	KeyMaxChars:           "200",
	KeyDropsPerDay:        "1",
	KeyAnnouncement:       "",
}

// IsValidMode reports whether mode is one of the fixed drop modes.
func IsValidMode(mode string) bool {
	switch mode {
	case ModeType, ModeSpeak, ModeDraw:
		return true
	}
	return false
}

// ConfigSnapshot is the full config mapping read fresh at the start of a
// request. Values are stored as text; consumers parse them here.
type ConfigSnapshot map[string]string

// Bool parses the value for key as a boolean flag. Anything other than the
// literal string "false" counts as enabled.
func (c ConfigSnapshot) Bool(key string) bool {
	return c[key] != "false"
}

// Int parses the value for key as a decimal integer, falling back to
// fallback when the key is missing or unparseable.
func (c ConfigSnapshot) Int(key string, fallback int) int {
	v, ok := c[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Request types

type SubmitDropRequest struct {
	Mode      string `json:"mode"`
	CharCount int    `json:"charCount"`
}

// Response types

type SubmitDropResponse struct {
	Success    bool `json:"success"`
	TodayCount int  `json:"todayCount"`
}

type StatusResponse struct {
	TodayCount      int            `json:"todayCount"`
	HasDroppedToday bool           `json:"hasDroppedToday"`
	Streak          int            `json:"streak"`
	LongestStreak   int            `json:"longestStreak"`
	Config          ConfigSnapshot `json:"config"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Domain types

type Drop struct {
	ID         int64     `json:"id"`
	DeviceHash string    `json:"-"` // Never expose in JSON
	Mode       string    `json:"mode"`
	CharCount  int       `json:"charCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Streak struct {
	DeviceHash    string  `json:"-"` // Never expose in JSON
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	LastDropDate  *string `json:"lastDropDate,omitempty"` // YYYY-MM-DD
}

// Stats types

type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type RecentDrop struct {
	Mode      string    `json:"mode"`
	CharCount int       `json:"charCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatsResponse struct {
	TodayCount     int            `json:"todayCount"`
	YesterdayCount int            `json:"yesterdayCount"`
	WeekCount      int            `json:"weekCount"`
	AllTimeCount   int            `json:"allTimeCount"`
	DevicesToday   int            `json:"devicesToday"`
	ByHour         []HourBucket   `json:"byHour"`
	ByMode         map[string]int `json:"byMode"`
	RecentDrops    []RecentDrop   `json:"recentDrops"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
