// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers.

# Helpers

  - WithLogging: request start/completion logging with duration
  - JSONResponse / ErrorResponse: JSON encoding with Content-Type
  - DomainError: engine sentinel → HTTP status mapping
  - ParseJSONBody: request body decoding
  - CORS: cross-origin headers and preflight handling

# Admin Guard

RequireAdmin wraps admin-only handlers, validating the session cookie
set by the admin login endpoint:

	mux.HandleFunc("GET /admin/stats",
		middleware.WithLogging(middleware.RequireAdmin(cfg, adminHandler.Stats)))

IsAdmin is the non-rejecting variant for routes whose behavior differs
for admins (the homes listing returns inactive homes and matching
prompts only to admins).
*/
package middleware
