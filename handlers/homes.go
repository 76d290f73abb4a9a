// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/middleware"
	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/store"
)

type HomeHandler struct {
	homes *store.HomeStore
	cfg   cliparse.Config
}

func NewHomeHandler(homes *store.HomeStore, cfg cliparse.Config) *HomeHandler {
	return &HomeHandler{homes: homes, cfg: cfg}
}

// List handles GET /homes
// Public callers see active homes without matching prompts; admins see
// everything.
func (h *HomeHandler) List(w http.ResponseWriter, r *http.Request) {
	admin := middleware.IsAdmin(r, h.cfg)

	homes, err := h.homes.List(r.Context(), !admin)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	if admin {
		out := make([]models.HomeAdmin, 0, len(homes))
		for _, home := range homes {
			out = append(out, home.Admin())
		}
		middleware.JSONResponse(w, http.StatusOK, out)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, homes)
}

// Get handles GET /homes/{id}
// Inactive homes are not found for public callers.
func (h *HomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	home, err := h.homes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	if middleware.IsAdmin(r, h.cfg) {
		middleware.JSONResponse(w, http.StatusOK, home.Admin())
		return
	}
	if !home.Active {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, home)
}

// Create handles POST /homes (admin only)
func (h *HomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.HomeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validateHomeRequest(req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	home := models.Home{
		Name:                req.Name,
		Color:               req.Color,
		LogoURL:             req.LogoURL,
		Location:            req.Location,
		DescriptionTemplate: req.DescriptionTemplate,
		MatchingPrompt:      req.MatchingPrompt,
		Question:            req.Question,
		VideoURL:            req.VideoURL,
		Active:              true,
	}
	if req.Active != nil {
		home.Active = *req.Active
	}
	if req.DisplayOrder != nil {
		home.DisplayOrder = *req.DisplayOrder
	}

	created, err := h.homes.Insert(r.Context(), home)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	slog.Info("home created", "home_id", created.ID, "slug", created.Slug)
	middleware.JSONResponse(w, http.StatusCreated, created.Admin())
}

// Update handles PATCH /homes/{id} (admin only)
// Partial update: nil fields keep their stored value.
func (h *HomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	home, err := h.homes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	var req models.HomeUpdateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		home.Name = *req.Name
	}
	if req.Color != nil {
		home.Color = *req.Color
	}
	if req.LogoURL != nil {
		home.LogoURL = req.LogoURL
	}
	if req.Location != nil {
		home.Location = *req.Location
	}
	if req.DescriptionTemplate != nil {
		home.DescriptionTemplate = *req.DescriptionTemplate
	}
	if req.MatchingPrompt != nil {
		home.MatchingPrompt = *req.MatchingPrompt
	}
	if req.Question != nil {
		home.Question = req.Question
	}
	if req.VideoURL != nil {
		home.VideoURL = req.VideoURL
	}
	if req.Active != nil {
		home.Active = *req.Active
	}
	if req.DisplayOrder != nil {
		home.DisplayOrder = *req.DisplayOrder
	}

	updated, err := h.homes.Update(r.Context(), home)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	slog.Info("home updated", "home_id", updated.ID)
	middleware.JSONResponse(w, http.StatusOK, updated.Admin())
}

// Delete handles DELETE /homes/{id} (admin only)
func (h *HomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.homes.Delete(r.Context(), r.PathValue("id")); err != nil {
		middleware.DomainError(w, err)
		return
	}

	slog.Info("home deleted", "home_id", r.PathValue("id"))
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func validateHomeRequest(req models.HomeRequest) string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.Color == "":
		return "color is required"
	case req.Location == "":
		return "location is required"
	case req.DescriptionTemplate == "":
		return "description_template is required"
	case req.MatchingPrompt == "":
		// Active homes without a matching prompt degrade the matching
		// input, so require it at creation.
		return "matching_prompt is required"
	}
	return ""
}
