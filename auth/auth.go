// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "admin_session"

// SessionMaxAge is how long an admin session cookie lives, in seconds.
const SessionMaxAge = 7 * 24 * 60 * 60

var ErrInvalidSession = errors.New("invalid admin session")

// SessionToken derives the admin session token from the admin secret.
// HMAC keeps the secret itself out of the cookie while staying
// deterministic and verifiable without server-side session state.
func SessionToken(adminSecret, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(adminSecret))
	sum := h.Sum(nil)
	return base64.RawURLEncoding.EncodeToString(sum)
}

// ValidateSession checks a presented session token in constant time.
func ValidateSession(token, adminSecret, salt string) error {
	expected := SessionToken(adminSecret, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidSession
	}
	return nil
}
