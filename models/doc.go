// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types, request/response payloads, and
error sentinels shared across the intake server.

# Domain Types

Two records carry all persistent state:

  - Application: one applicant's record, keyed by email, moving one way
    through in_progress → frozen → submitted
  - Home: a candidate residency location that applicants are matched to

The answer map on an Application is string-keyed and string-valued. Keys
are either question IDs from the static schema or synthetic
"home_<homeID>" keys holding follow-up answers for matched homes.

# Status Lifecycle

	in_progress --freeze--> frozen --submit--> submitted

There is no transition back. The lifecycle engine owns the status field;
see the lifecycle package for the transition rules.

# Errors

The Err* sentinels are returned by the engines and mapped to HTTP
statuses at the handler boundary:

	ErrNotFound         → 404
	ErrInvalidState     → 409
	ErrAlreadySubmitted → 409
	ErrIncomplete       → 422
	ErrNoHomesAvailable → 503
	ErrInvalidEmail     → 400
*/
package models
