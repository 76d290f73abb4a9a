// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/residencyhq/intake/matching"
	"github.com/residencyhq/intake/middleware"
	"github.com/residencyhq/intake/models"
)

type MatchHandler struct {
	engine *matching.Engine
}

func NewMatchHandler(engine *matching.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// Match handles POST /applications/{id}/match
// Idempotent: repeated calls return the stored list, so clients can
// safely re-invoke after a timeout while the first call is in flight.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application id is required")
		return
	}

	matched, err := h.engine.Match(r.Context(), id)
	if err != nil {
		middleware.DomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MatchResponse{MatchedHomeIDs: matched})
}
