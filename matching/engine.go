// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/store"
)

// Ranker is the external ranking collaborator: given a system
// instruction and an applicant/homes content block it returns free-form
// text expected (but not guaranteed) to be a JSON array of
// {homeId, rank} objects. Any error or malformed output is absorbed by
// the fallback path; matching never hard-fails the applicant flow.
type Ranker interface {
	Rank(ctx context.Context, system, user string) (string, error)
}

var errNoRanker = errors.New("no ranker configured")

// Engine matches frozen applications to homes, at most once each.
type Engine struct {
	apps   *store.ApplicationStore
	homes  *store.HomeStore
	ranker Ranker
}

func NewEngine(apps *store.ApplicationStore, homes *store.HomeStore, ranker Ranker) *Engine {
	return &Engine{apps: apps, homes: homes, ranker: ranker}
}

// Match ranks active homes against the application's profile and
// persists the resulting ordered id list. It is idempotent: once
// matched_home_ids is set, the stored list is returned without another
// collaborator call.
func (e *Engine) Match(ctx context.Context, applicationID string) ([]string, error) {
	app, err := e.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusFrozen {
		return nil, models.ErrInvalidState
	}
	if len(app.MatchedHomeIDs) > 0 {
		return app.MatchedHomeIDs, nil
	}

	active, err := e.homes.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, models.ErrNoHomesAvailable
	}

	candidates := filterByLocations(active, app.Answers["locations"])
	matchCount := models.MaxMatches
	if len(candidates) < matchCount {
		matchCount = len(candidates)
	}

	matched, err := e.rank(ctx, app, candidates, matchCount)
	if err != nil {
		// Collaborator failure is an operator concern, not the
		// applicant's; fall back to a random pick.
		slog.Error("ranking failed, using fallback", "application_id", applicationID, "error", err)
		matched = fallbackPick(candidates, matchCount)
	}

	if _, err := e.apps.SetMatchedHomes(ctx, applicationID, matched); err != nil {
		return nil, err
	}

	slog.Info("application matched", "application_id", applicationID, "home_ids", matched)
	return matched, nil
}

func (e *Engine) rank(ctx context.Context, app models.Application, candidates []models.Home, matchCount int) ([]string, error) {
	if e.ranker == nil {
		return nil, errNoRanker
	}

	raw, err := e.ranker.Rank(ctx, systemPrompt(matchCount), userPrompt(app, candidates, matchCount))
	if err != nil {
		return nil, fmt.Errorf("ranking collaborator: %w", err)
	}

	rankings, err := parseRankings(raw, matchCount)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(candidates))
	for _, h := range candidates {
		known[h.ID] = true
	}

	// Stable sort on rank: the collaborator contract leaves equal-rank
	// order unspecified, so ties keep list order as returned.
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Rank < rankings[j].Rank
	})

	matched := make([]string, 0, matchCount)
	seen := map[string]bool{}
	for _, r := range rankings {
		if len(matched) == matchCount {
			break
		}
		if known[r.HomeID] && !seen[r.HomeID] {
			matched = append(matched, r.HomeID)
			seen[r.HomeID] = true
		}
	}

	// Unknown ids may leave a shortfall; pad deterministically from the
	// candidate list in display order, skipping ids already chosen.
	for _, h := range candidates {
		if len(matched) == matchCount {
			break
		}
		if !seen[h.ID] {
			matched = append(matched, h.ID)
			seen[h.ID] = true
		}
	}

	return matched, nil
}

// filterByLocations narrows candidates to homes whose slug or location
// appears in the applicant's |-delimited locations answer. A filter
// that would leave zero candidates is abandoned so an applicant whose
// chosen locations have no homes still gets matches.
func filterByLocations(homes []models.Home, locationsAnswer string) []models.Home {
	locationsAnswer = strings.TrimSpace(locationsAnswer)
	if locationsAnswer == "" {
		return homes
	}

	wanted := map[string]bool{}
	for _, loc := range strings.Split(locationsAnswer, "|") {
		if loc = strings.TrimSpace(strings.ToLower(loc)); loc != "" {
			wanted[loc] = true
		}
	}
	if len(wanted) == 0 {
		return homes
	}

	var filtered []models.Home
	for _, h := range homes {
		if wanted[strings.ToLower(h.Slug)] || wanted[strings.ToLower(h.Location)] {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) == 0 {
		return homes
	}
	return filtered
}

func parseRankings(raw string, matchCount int) ([]models.MatchResult, error) {
	cleaned := strings.TrimSpace(raw)
	// Models sometimes wrap the array in a markdown fence despite the
	// instruction not to.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var rankings []models.MatchResult
	if err := json.Unmarshal([]byte(cleaned), &rankings); err != nil {
		return nil, fmt.Errorf("malformed ranking response: %w", err)
	}
	if len(rankings) < matchCount {
		return nil, fmt.Errorf("ranking response has %d entries, want at least %d", len(rankings), matchCount)
	}
	return rankings, nil
}

// fallbackPick shuffles candidates and takes the first matchCount.
// Unseeded on purpose: reproducibility is not a goal here, validity is.
func fallbackPick(candidates []models.Home, matchCount int) []string {
	shuffled := make([]models.Home, len(candidates))
	copy(shuffled, candidates)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	ids := make([]string, 0, matchCount)
	for _, h := range shuffled[:matchCount] {
		ids = append(ids, h.ID)
	}
	return ids
}

func systemPrompt(matchCount int) string {
	return fmt.Sprintf(`You are an AI matching system for a residency program. You will be given an applicant's answers and descriptions of available homes. Your job is to rank the top %d homes that would be the best fit for this applicant.

Consider the applicant's project, background, interests, work style, and goals. Match them with homes whose culture, focus, and community would help them thrive.

Return ONLY a valid JSON array of exactly %d objects with "homeId" (the UUID) and "rank" (1=best). No other text.

Example response:
[{"homeId":"uuid-1","rank":1},{"homeId":"uuid-2","rank":2},{"homeId":"uuid-3","rank":3}]`, matchCount, matchCount)
}

func userPrompt(app models.Application, candidates []models.Home, matchCount int) string {
	var answers []string
	for _, q := range answerKeysInOrder(app.Answers) {
		answers = append(answers, q+": "+app.Answers[q])
	}

	var homes []string
	for _, h := range candidates {
		homes = append(homes, fmt.Sprintf("Home ID: %s\nHome Name: %s\nLocation: %s\nMatching Criteria: %s",
			h.ID, h.Name, h.Location, h.MatchingPrompt))
	}

	return fmt.Sprintf("## Applicant Answers:\n%s\n\n## Available Homes:\n%s\n\nReturn the top %d best matching homes as a JSON array.",
		strings.Join(answers, "\n"), strings.Join(homes, "\n\n---\n\n"), matchCount)
}

// answerKeysInOrder returns the applicant's answer keys sorted, with
// home_-prefixed follow-up answers excluded from the profile.
func answerKeysInOrder(answers map[string]string) []string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		if !strings.HasPrefix(k, models.HomeAnswerPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
