// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the intake API.

# Handler Types

Each handler is a struct with its dependencies injected via a
constructor:

  - ApplicationHandler: create-or-resume, fetch, answer updates, and
    the freeze/submit transitions
  - MatchHandler: the at-most-once home matching call
  - HomeHandler: public home listing and admin home CRUD
  - AdminHandler: login/logout/session, stats, application list, CSV
    export

# Applicant Flow

	POST  /applications                → CreateOrResume (email is the key)
	PATCH /applications/{id}           → Update (merge answers)
	POST  /applications/{id}/freeze    → Freeze (locks non-home answers)
	POST  /applications/{id}/match     → Match (assigns 1-3 homes, once)
	PATCH /applications/{id}           → home_<id> follow-up answers
	POST  /applications/{id}/submit    → Submit (terminal)

# Admin Surface

Admin routes require the session cookie set by POST /admin/login;
middleware.RequireAdmin guards them. The homes listing is shared with
the public but widens for admins (inactive homes, matching prompts).

Engine errors surface through middleware.DomainError, so every handler
maps models sentinels to the same HTTP statuses.
*/
package handlers
