// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

var (
	// ErrNotFound: the referenced application or home does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidEmail: the email does not look like an address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidState: the operation is not permitted in the
	// application's current lifecycle state.
	ErrInvalidState = errors.New("operation not permitted in current state")

	// ErrAlreadySubmitted: write attempt after submission. A special
	// case of ErrInvalidState that is always rejected, no exceptions.
	ErrAlreadySubmitted = errors.New("application already submitted")

	// ErrIncomplete: freeze requested while a visible required
	// question is still unanswered.
	ErrIncomplete = errors.New("required questions unanswered")

	// ErrNoHomesAvailable: matching requested with zero active homes.
	ErrNoHomesAvailable = errors.New("no homes available")
)
