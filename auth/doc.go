// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin session token scheme.

There is a single admin credential (ADMIN_SECRET). Logging in with it
sets an httpOnly cookie carrying an HMAC of the secret under
SESSION_SALT, so the secret itself never rides in the cookie and no
session table is needed. Validation is a constant-time recompute:

	token := auth.SessionToken(cfg.AdminSecret, cfg.SessionSalt)
	err := auth.ValidateSession(presented, cfg.AdminSecret, cfg.SessionSalt)

Expiry is handled by the cookie's MaxAge; rotating SESSION_SALT
invalidates all outstanding sessions at once.
*/
package auth
