// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/hmac"
	"log/slog"
	"net/http"
	"time"

	"github.com/residencyhq/intake/auth"
	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/export"
	"github.com/residencyhq/intake/middleware"
	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/store"
)

type AdminHandler struct {
	apps  *store.ApplicationStore
	homes *store.HomeStore
	cfg   cliparse.Config
}

func NewAdminHandler(apps *store.ApplicationStore, homes *store.HomeStore, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{apps: apps, homes: homes, cfg: cfg}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !hmac.Equal([]byte(req.Secret), []byte(h.cfg.AdminSecret)) {
		slog.Warn("admin login rejected", "remote", r.RemoteAddr)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid secret")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    auth.SessionToken(h.cfg.AdminSecret, h.cfg.SessionSalt),
		Path:     "/",
		MaxAge:   auth.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("admin logged in", "remote", r.RemoteAddr)
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles DELETE /admin/login
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// Session handles GET /admin/session
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r, h.cfg) {
		middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Authenticated: true})
		return
	}
	middleware.JSONResponse(w, http.StatusUnauthorized, models.SessionResponse{Authenticated: false})
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.apps.CountByStatus(r.Context())
	if err != nil {
		middleware.DomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// ListApplications handles GET /admin/applications
func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.apps.List(r.Context())
	if err != nil {
		middleware.DomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, apps)
}

// Export handles GET /admin/export?status=...
// Streams a CSV of applications, optionally filtered by status.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	apps, err := h.apps.List(r.Context())
	if err != nil {
		middleware.DomainError(w, err)
		return
	}
	if statusFilter != "" {
		filtered := apps[:0]
		for _, app := range apps {
			if app.Status == statusFilter {
				filtered = append(filtered, app)
			}
		}
		apps = filtered
	}

	homes, err := h.homes.List(r.Context(), false)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}
	homeNames := make(map[string]string, len(homes))
	for _, home := range homes {
		homeNames[home.ID] = home.Name
	}

	filename := "applications_all_"
	if statusFilter != "" {
		filename = "applications_" + statusFilter + "_"
	}
	filename += time.Now().UTC().Format("2006-01-02") + ".csv"

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, apps, homeNames); err != nil {
		// Headers are out the door; all we can do is log.
		slog.Error("csv export failed", "error", err)
	}
}
