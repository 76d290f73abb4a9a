// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/handlers"
	"github.com/residencyhq/intake/lifecycle"
	"github.com/residencyhq/intake/matching"
	"github.com/residencyhq/intake/middleware"
	"github.com/residencyhq/intake/schema"
	"github.com/residencyhq/intake/store"
)

// NewRouter wires stores, engines, and handlers. The ranker is
// injected so tests can stub the ranking collaborator; a nil ranker
// degrades matching to its fallback pick.
func NewRouter(db *sql.DB, cfg cliparse.Config, ranker matching.Ranker) *http.ServeMux {
	mux := http.NewServeMux()

	apps := store.NewApplicationStore(db)
	homes := store.NewHomeStore(db)
	lifecycleEngine := lifecycle.New(apps)
	matchEngine := matching.NewEngine(apps, homes, ranker)

	applicationHandler := handlers.NewApplicationHandler(lifecycleEngine, apps, cfg)
	matchHandler := handlers.NewMatchHandler(matchEngine)
	homeHandler := handlers.NewHomeHandler(homes, cfg)
	adminHandler := handlers.NewAdminHandler(apps, homes, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Question schema (single source of truth for client renderers)
	mux.HandleFunc("GET /schema", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, schema.Sections())
	}))

	// Applicant flow
	mux.HandleFunc("POST /applications", middleware.WithLogging(applicationHandler.CreateOrResume))
	mux.HandleFunc("GET /applications", middleware.WithLogging(applicationHandler.Get))
	mux.HandleFunc("PATCH /applications/{id}", middleware.WithLogging(applicationHandler.Update))
	mux.HandleFunc("POST /applications/{id}/freeze", middleware.WithLogging(applicationHandler.Freeze))
	mux.HandleFunc("POST /applications/{id}/match", middleware.WithLogging(matchHandler.Match))
	mux.HandleFunc("POST /applications/{id}/submit", middleware.WithLogging(applicationHandler.Submit))

	// Homes (public listing; admin CRUD)
	mux.HandleFunc("GET /homes", middleware.WithLogging(homeHandler.List))
	mux.HandleFunc("GET /homes/{id}", middleware.WithLogging(homeHandler.Get))
	mux.HandleFunc("POST /homes", middleware.WithLogging(middleware.RequireAdmin(cfg, homeHandler.Create)))
	mux.HandleFunc("PATCH /homes/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, homeHandler.Update)))
	mux.HandleFunc("DELETE /homes/{id}", middleware.WithLogging(middleware.RequireAdmin(cfg, homeHandler.Delete)))

	// Admin surface
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("DELETE /admin/login", middleware.WithLogging(adminHandler.Logout))
	mux.HandleFunc("GET /admin/session", middleware.WithLogging(adminHandler.Session))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(middleware.RequireAdmin(cfg, adminHandler.Stats)))
	mux.HandleFunc("GET /admin/applications", middleware.WithLogging(middleware.RequireAdmin(cfg, adminHandler.ListApplications)))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(middleware.RequireAdmin(cfg, adminHandler.Export)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("intake API v1"))
	})

	return mux
}
