// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle implements the application state machine.

# States and Transitions

	in_progress --Freeze--> frozen --Submit--> submitted

submitted is terminal. Any other transition attempt fails with
models.ErrInvalidState and performs no mutation.

# Write Rules by State

  - in_progress: UpdateAnswers merges any keys
  - frozen: only "home_"-prefixed keys merge; other keys are silently
    dropped (no error — tolerates stale clients re-sending locked
    answers)
  - submitted: every write fails with models.ErrAlreadySubmitted

# Freeze Policy

Freeze enforces completeness server-side: every visible required
question (per the schema package's resolver) needs a non-empty trimmed
answer. The allowPartial flag bypasses the check and is reachable only
through the admin surface.

# Matching Gate

Submit additionally requires a non-empty matched home list, so an
application cannot be submitted before matching ran.
*/
package lifecycle
