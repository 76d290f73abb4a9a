// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/lifecycle"
	"github.com/residencyhq/intake/middleware"
	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/store"
)

type ApplicationHandler struct {
	engine *lifecycle.Engine
	apps   *store.ApplicationStore
	cfg    cliparse.Config
}

func NewApplicationHandler(engine *lifecycle.Engine, apps *store.ApplicationStore, cfg cliparse.Config) *ApplicationHandler {
	return &ApplicationHandler{engine: engine, apps: apps, cfg: cfg}
}

// CreateOrResume handles POST /applications
// Email is the idempotency key: an existing application is returned
// as-is, whatever its status.
func (h *ApplicationHandler) CreateOrResume(w http.ResponseWriter, r *http.Request) {
	var req models.CreateApplicationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	app, created, err := h.engine.CreateOrResume(r.Context(), req.Email)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, app)
}

// Get handles GET /applications?id=...|email=...
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	email := r.URL.Query().Get("email")

	switch {
	case id != "":
		app, err := h.apps.GetByID(r.Context(), id)
		if err != nil {
			middleware.DomainError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, app)
	case email != "":
		app, err := h.apps.GetByEmail(r.Context(), lifecycle.NormalizeEmail(email))
		if err != nil {
			middleware.DomainError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, app)
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "id or email is required")
	}
}

// Update handles PATCH /applications/{id}
// Partial answers merge per the lifecycle rules; current_section is an
// advisory resume marker.
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application id is required")
		return
	}

	var req models.UpdateApplicationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Answers == nil && req.CurrentSection == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers or current_section is required")
		return
	}
	if req.Answers == nil {
		req.Answers = map[string]string{}
	}

	app, err := h.engine.UpdateAnswers(r.Context(), id, req.Answers, req.CurrentSection)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, app)
}

// Freeze handles POST /applications/{id}/freeze
// The allow_partial escape hatch is honored only for admin sessions;
// applicants always get the completeness check.
func (h *ApplicationHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application id is required")
		return
	}

	var req models.FreezeRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}
	allowPartial := req.AllowPartial && middleware.IsAdmin(r, h.cfg)

	app, err := h.engine.Freeze(r.Context(), id, allowPartial)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, app)
}

// Submit handles POST /applications/{id}/submit
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application id is required")
		return
	}

	app, err := h.engine.Submit(r.Context(), id)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	slog.Info("application submitted via API", "application_id", id)
	middleware.JSONResponse(w, http.StatusOK, app)
}
