// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncclient is the client-side answer sync strategy: a
convenience layer, not a server authority.

Edits land in an in-memory map synchronously, then flush through two
independent trailing-edge debounce timers — a short one to a local
JSON cache file and a longer one to the remote store. Each new edit
resets both timers, so a typing burst persists once, not per
keystroke. SaveNow forces both writes immediately and is meant for
navigation and the freeze/submit transition points.

On Load the client fetches the remote application and reads the cache,
preferring the cache only when its timestamp is newer than the remote
updated_at — a whole-snapshot last-writer-wins policy with no per-key
merging.

Debounced remote failures are swallowed (the cache still holds the
data and the next edit retries); only SaveNow reports remote errors to
its caller.
*/
package syncclient
