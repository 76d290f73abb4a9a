// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration for the intake server.

Settings come from CLI flags with env-variable fallbacks; main loads a
.env file (via godotenv) before parsing, so local development needs no
exported variables.

Required:

  - DATABASE_URL (-d): postgres DSN or sqlite file path
  - ADMIN_SECRET (-admin-secret): admin login credential
  - SESSION_SALT (-session-salt): admin session HMAC salt

Optional:

  - PORT (-p): listen port (default 4680)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - OPENAI_API_KEY (-openai-key): ranking model key; without it every
    match uses the fallback pick
  - OPENAI_MODEL (-openai-model): model name (default gpt-4o-mini)
  - SEED_HOMES=1 (-seed): seed default homes into an empty database
*/
package cliparse
