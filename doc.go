// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Residency intake API
server.

The intake server runs the application pipeline for a residency
program: applicants fill a multi-section questionnaire, freeze their
answers, get matched to 1-3 homes by an AI ranking model (with a
deterministic fallback), answer per-home follow-up questions, and
submit. An admin surface lists, filters, and exports applications and
manages home records.

# Starting the Server

Configuration comes from env variables, a .env file, or CLI flags:

	DATABASE_URL=intake.db ADMIN_SECRET=... SESSION_SALT=... go run .

Or with flags:

	go run . -p 4680 -d intake.db -t sqlite -admin-secret ... -session-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): postgres DSN or sqlite file path
  - ADMIN_SECRET (-admin-secret): admin login credential
  - SESSION_SALT (-session-salt): secret for session-cookie HMAC

Optional settings:

  - PORT (-p): server port (default: 4680)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - OPENAI_API_KEY / OPENAI_MODEL: ranking model; without a key,
    matching uses its fallback pick
  - SEED_HOMES=1 (-seed): seed default homes into an empty database

# Architecture

The server uses a handler-based architecture with dependency injection:

  - schema: static questionnaire + conditional-visibility resolver
  - lifecycle: the in_progress → frozen → submitted state machine
  - matching: home ranking via the AI collaborator, with fallback
  - store: application and home persistence over database/sql
  - handlers: HTTP request handlers (applications, match, homes, admin)
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, JSON helpers, CORS, admin session guard
  - auth: admin session token crypto
  - export: CSV export for the admin surface
  - syncclient: debounced dual-write client sync library
  - db: schema creation and driver selection
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
