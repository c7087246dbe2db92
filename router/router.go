// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/daily-drop/auth"
	"github.com/danielhkuo/daily-drop/cliparse"
	"github.com/danielhkuo/daily-drop/handlers"
	"github.com/danielhkuo/daily-drop/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dropHandler := handlers.NewDropHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// All /api routes share one per-client rate limiter
	limiter := middleware.NewRateLimiter(100, 60)
	api := func(h http.HandlerFunc) http.HandlerFunc {
		limited := limiter.Handler(middleware.WithLogging(h))
		return limited.ServeHTTP
	}
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return api(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.ValidateAdminKey(r.Header.Get("x-admin-key"), cfg.AdminKey); err != nil {
				middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			h(w, r)
		})
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public endpoints (device identity resolved from connection metadata)
	mux.HandleFunc("GET /api/status", api(dropHandler.Status))
	mux.HandleFunc("POST /api/drop", api(dropHandler.Submit))
	mux.HandleFunc("GET /api/count", api(dropHandler.Count))

	// Admin endpoints (require x-admin-key)
	mux.HandleFunc("GET /api/admin/stats", adminOnly(adminHandler.Stats))
	mux.HandleFunc("POST /api/admin/drop", adminOnly(adminHandler.Drop))
	mux.HandleFunc("GET /api/admin/config", adminOnly(adminHandler.GetConfig))
	mux.HandleFunc("PUT /api/admin/config", adminOnly(adminHandler.PutConfig))
	mux.HandleFunc("POST /api/admin/reset-streaks", adminOnly(adminHandler.ResetStreaks))
	mux.HandleFunc("POST /api/admin/reset-counter", adminOnly(adminHandler.ResetCounter))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("daily-drop API v1"))
	})

	return mux
}
