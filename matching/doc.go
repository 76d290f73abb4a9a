// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matching assigns homes to frozen applications.

# Algorithm

 1. Load active homes in display order; zero active homes is
    models.ErrNoHomesAvailable.
 2. Narrow to the applicant's selected locations (the |-delimited
    "locations" answer); if that leaves nothing, use the full active
    set instead.
 3. matchCount = min(3, candidates).
 4. Send the applicant profile (non-home_ answers) and per-home
    criteria to the Ranker with a strict JSON-array instruction.
 5. Validate the response: JSON array, at least matchCount entries,
    ids from the candidate set. Stable-sort by ascending rank, take
    matchCount, pad from display order on shortfall.
 6. On any collaborator failure or malformed response, shuffle the
    candidates and take matchCount — the applicant flow never sees a
    ranking error.
 7. Persist the ordered list on the application.

# Idempotence

Match runs at most once per application. A second call returns the
stored list without touching the collaborator, so re-polling a slow
match is safe and re-ranking is impossible.

# Ranker

The production Ranker is OpenAIRanker; tests inject stubs. A nil
Ranker (no API key configured) behaves as a permanently failing
collaborator, which degrades every match to the fallback pick.
*/
package matching
