// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation for the
intake server.

# Drivers

Two drivers are supported, selected by DATABASE_TYPE:

  - postgres (github.com/lib/pq) for production
  - sqlite (modernc.org/sqlite) for development and tests

The DDL is written to run unchanged on both: no server-side time
defaults, JSON kept as TEXT, TEXT primary keys.

# Usage

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	...
	err = db.CreateSchema(conn)

CreateSchema is idempotent (IF NOT EXISTS throughout). SeedHomes
populates the default home set on an empty database for local
development; production homes are managed through the admin API.
*/
package db
