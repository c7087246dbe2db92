// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Daily Drop API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Public (device identity from connection metadata):

	GET  /api/status - Today count, streak, config for the caller
	POST /api/drop   - Record today's drop
	GET  /api/count  - Today's global total

Admin (require x-admin-key):

	GET  /api/admin/stats         - Aggregate dashboard feed
	POST /api/admin/drop          - Bypass insertion under "admin"
	GET  /api/admin/config        - Full config mapping
	PUT  /api/admin/config        - Bulk config upsert
	POST /api/admin/reset-streaks - Zero all current streaks
	POST /api/admin/reset-counter - Delete today's drops

# Cross-cutting

Every /api route runs behind request logging and a shared per-client rate
limiter (100 requests per 60 seconds). The admin key check wraps admin
routes before the handler runs; a missing or wrong key returns
401 {"error":"Unauthorized"}.

# Handler Initialization

The router creates handler instances with dependency injection:

	dropHandler := handlers.NewDropHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
