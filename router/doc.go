// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the intake API.

Routes use Go 1.22+ method+path patterns on the standard ServeMux.
NewRouter is the composition root: it builds the stores and engines
from the database handle and hands them to the handlers, taking the
ranking collaborator as a parameter so tests can substitute a stub.

Public routes serve the applicant flow and the active-homes listing;
admin routes are wrapped in middleware.RequireAdmin. All handlers are
wrapped in middleware.WithLogging except the health and root probes.
*/
package router
