// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/schema"
	"github.com/residencyhq/intake/store"
)

// Engine owns the application state machine:
//
//	in_progress --Freeze--> frozen --Submit--> submitted
//
// Transitions are one-directional and all-or-nothing; a rejected
// operation leaves the record untouched.
type Engine struct {
	apps *store.ApplicationStore
}

func New(apps *store.ApplicationStore) *Engine {
	return &Engine{apps: apps}
}

// CreateOrResume looks up an application by normalized email, creating
// one when none exists. Email is the idempotency key: an existing
// record is returned unchanged regardless of its status, so applicants
// can resume or view a finished application. The bool reports whether
// a new record was created.
func (e *Engine) CreateOrResume(ctx context.Context, email string) (models.Application, bool, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return models.Application{}, false, models.ErrInvalidEmail
	}

	app, err := e.apps.GetByEmail(ctx, email)
	if err == nil {
		return app, false, nil
	}
	if err != models.ErrNotFound {
		return models.Application{}, false, err
	}

	app, err = e.apps.Insert(ctx, email)
	if err != nil {
		return models.Application{}, false, err
	}

	slog.Info("application created", "application_id", app.ID)
	return app, true, nil
}

// UpdateAnswers merges partial into the stored answer map. Merge, not
// replace: keys absent from partial are preserved.
//
// While in_progress every key is writable. While frozen only
// home_-prefixed keys are accepted and the rest are silently dropped —
// a frozen application with nothing accepted is an idempotent no-op,
// not an error, so a stale client re-sending locked answers doesn't
// surface a failure. After submission every write is rejected.
//
// section, when non-nil, is stored as the resume marker and never
// validated against the section list.
func (e *Engine) UpdateAnswers(ctx context.Context, id string, partial map[string]string, section *string) (models.Application, error) {
	app, err := e.apps.GetByID(ctx, id)
	if err != nil {
		return models.Application{}, err
	}

	switch app.Status {
	case models.StatusSubmitted:
		return models.Application{}, models.ErrAlreadySubmitted

	case models.StatusFrozen:
		accepted := map[string]string{}
		for k, v := range partial {
			if strings.HasPrefix(k, models.HomeAnswerPrefix) {
				accepted[k] = v
			}
		}
		if len(accepted) == 0 && section == nil {
			return app, nil
		}
		return e.apps.SetAnswers(ctx, id, merge(app.Answers, accepted), section)

	default:
		return e.apps.SetAnswers(ctx, id, merge(app.Answers, partial), section)
	}
}

// Freeze locks applicant answers and enables matching. Permitted only
// from in_progress. Unless allowPartial is set, every visible required
// question must have a non-empty trimmed answer; allowPartial is an
// admin escape hatch, never exposed to applicants.
func (e *Engine) Freeze(ctx context.Context, id string, allowPartial bool) (models.Application, error) {
	app, err := e.apps.GetByID(ctx, id)
	if err != nil {
		return models.Application{}, err
	}
	if app.Status != models.StatusInProgress {
		return models.Application{}, models.ErrInvalidState
	}
	if !allowPartial && !schema.IsComplete(app.Answers) {
		return models.Application{}, models.ErrIncomplete
	}

	frozen, err := e.apps.SetFrozen(ctx, id, time.Now())
	if err != nil {
		return models.Application{}, err
	}

	slog.Info("application frozen", "application_id", id, "allow_partial", allowPartial)
	return frozen, nil
}

// Submit makes the record permanently read-only. Permitted only from
// frozen, and only after matching has assigned at least one home.
func (e *Engine) Submit(ctx context.Context, id string) (models.Application, error) {
	app, err := e.apps.GetByID(ctx, id)
	if err != nil {
		return models.Application{}, err
	}
	if app.Status != models.StatusFrozen || len(app.MatchedHomeIDs) == 0 {
		return models.Application{}, models.ErrInvalidState
	}

	submitted, err := e.apps.SetSubmitted(ctx, id, time.Now())
	if err != nil {
		return models.Application{}, err
	}

	slog.Info("application submitted", "application_id", id)
	return submitted, nil
}

// NormalizeEmail trims whitespace and lowercases.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail is a shape check, not deliverability: exactly one @ with
// non-empty local part and a dotted domain.
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func merge(existing, partial map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(partial))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}
