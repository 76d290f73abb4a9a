// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the record-store layer between the engines and
database/sql.

Two stores, one per table:

	apps  := store.NewApplicationStore(db)
	homes := store.NewHomeStore(db)

The stores do no policy: merge rules and transition gating live in the
lifecycle and matching engines. What the stores own is SQL, JSON
(un)marshaling of the answers map and matched-home list at the storage
boundary, and the sql.ErrNoRows → models.ErrNotFound translation.

Every mutation bumps updated_at, which the client sync strategy relies
on for its local-versus-remote reconciliation.
*/
package store
