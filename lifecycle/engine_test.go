// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"reflect"
	"testing"

	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/store"
	"github.com/residencyhq/intake/testutil"
)

func setup(t *testing.T) (*Engine, *store.ApplicationStore) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	apps := store.NewApplicationStore(conn)
	return New(apps), apps
}

func TestCreateOrResume(t *testing.T) {
	engine, _ := setup(t)
	ctx := context.Background()

	app, created, err := engine.CreateOrResume(ctx, "  A@Example.COM ")
	if err != nil {
		t.Fatalf("CreateOrResume failed: %v", err)
	}
	if !created {
		t.Error("expected a new application")
	}
	if app.Email != "a@example.com" {
		t.Errorf("email = %q, want normalized a@example.com", app.Email)
	}
	if app.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in_progress", app.Status)
	}
	if len(app.Answers) != 0 {
		t.Errorf("new application should have empty answers, got %v", app.Answers)
	}

	// Same email resumes, even with different casing
	again, created, err := engine.CreateOrResume(ctx, "a@EXAMPLE.com")
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if created {
		t.Error("resume should not create a second application")
	}
	if again.ID != app.ID {
		t.Errorf("resume returned id %s, want %s", again.ID, app.ID)
	}
}

func TestCreateOrResumeInvalidEmail(t *testing.T) {
	engine, _ := setup(t)

	for _, email := range []string{"", "no-at-sign", "@nodomain.com", "a@b", "two@@signs.com", "a@tld."} {
		_, _, err := engine.CreateOrResume(context.Background(), email)
		if err != models.ErrInvalidEmail {
			t.Errorf("CreateOrResume(%q) error = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestUpdateAnswersInProgress(t *testing.T) {
	engine, apps := setup(t)
	ctx := context.Background()

	app, _, _ := engine.CreateOrResume(ctx, "a@example.com")

	_, err := engine.UpdateAnswers(ctx, app.ID, map[string]string{"pitch": "first", "details": "d"}, nil)
	if err != nil {
		t.Fatalf("UpdateAnswers failed: %v", err)
	}

	// Merge, not replace: absent keys survive
	section := "the-project"
	updated, err := engine.UpdateAnswers(ctx, app.ID, map[string]string{"pitch": "second"}, &section)
	if err != nil {
		t.Fatalf("UpdateAnswers failed: %v", err)
	}
	if updated.Answers["pitch"] != "second" || updated.Answers["details"] != "d" {
		t.Errorf("merge broken: %v", updated.Answers)
	}
	if updated.CurrentSection == nil || *updated.CurrentSection != "the-project" {
		t.Errorf("current_section not stored: %v", updated.CurrentSection)
	}

	stored, _ := apps.GetByID(ctx, app.ID)
	if !reflect.DeepEqual(stored.Answers, updated.Answers) {
		t.Errorf("stored answers %v differ from returned %v", stored.Answers, updated.Answers)
	}
}

func TestUpdateAnswersFrozenDropsLockedKeys(t *testing.T) {
	engine, apps := setup(t)
	ctx := context.Background()

	app, _, _ := engine.CreateOrResume(ctx, "a@example.com")
	if _, err := engine.UpdateAnswers(ctx, app.ID, testutil.CompleteAnswers(), nil); err != nil {
		t.Fatalf("seeding answers failed: %v", err)
	}
	if _, err := engine.Freeze(ctx, app.ID, false); err != nil {
		t.Fatalf("freeze failed: %v", err)
	}
	before, _ := apps.GetByID(ctx, app.ID)

	// Only non-home keys: silent no-op, not an error
	after, err := engine.UpdateAnswers(ctx, app.ID, map[string]string{"pitch": "x"}, nil)
	if err != nil {
		t.Fatalf("locked-key update should not error: %v", err)
	}
	if !reflect.DeepEqual(after.Answers, before.Answers) {
		t.Errorf("answers changed while frozen: %v", after.Answers)
	}

	// home_ keys merge; everything else is preserved
	after, err = engine.UpdateAnswers(ctx, app.ID, map[string]string{"home_abc": "y", "pitch": "x"}, nil)
	if err != nil {
		t.Fatalf("home answer update failed: %v", err)
	}
	if after.Answers["home_abc"] != "y" {
		t.Errorf("home answer not stored: %v", after.Answers)
	}
	if after.Answers["pitch"] != before.Answers["pitch"] {
		t.Errorf("locked key leaked through the frozen merge: %v", after.Answers)
	}
	if len(after.Answers) != len(before.Answers)+1 {
		t.Errorf("existing answers not preserved: had %d, now %d", len(before.Answers), len(after.Answers))
	}
}

func TestUpdateAnswersAfterSubmit(t *testing.T) {
	engine, apps := setup(t)
	ctx := context.Background()

	app, _, _ := engine.CreateOrResume(ctx, "a@example.com")
	engine.UpdateAnswers(ctx, app.ID, testutil.CompleteAnswers(), nil)
	engine.Freeze(ctx, app.ID, false)
	apps.SetMatchedHomes(ctx, app.ID, []string{"h1"})
	if _, err := engine.Submit(ctx, app.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	before, _ := apps.GetByID(ctx, app.ID)

	for _, partial := range []map[string]string{
		{"pitch": "x"},
		{"home_h1": "y"},
		{},
	} {
		_, err := engine.UpdateAnswers(ctx, app.ID, partial, nil)
		if err != models.ErrAlreadySubmitted {
			t.Errorf("UpdateAnswers(%v) after submit error = %v, want ErrAlreadySubmitted", partial, err)
		}
	}

	after, _ := apps.GetByID(ctx, app.ID)
	if !reflect.DeepEqual(after.Answers, before.Answers) {
		t.Errorf("answers mutated after submission: %v", after.Answers)
	}
}

func TestFreeze(t *testing.T) {
	engine, _ := setup(t)
	ctx := context.Background()

	app, _, _ := engine.CreateOrResume(ctx, "a@example.com")

	// Incomplete applications don't freeze without the escape hatch
	if _, err := engine.Freeze(ctx, app.ID, false); err != models.ErrIncomplete {
		t.Errorf("freeze of incomplete application error = %v, want ErrIncomplete", err)
	}

	engine.UpdateAnswers(ctx, app.ID, testutil.CompleteAnswers(), nil)
	frozen, err := engine.Freeze(ctx, app.ID, false)
	if err != nil {
		t.Fatalf("freeze failed: %v", err)
	}
	if frozen.Status != models.StatusFrozen {
		t.Errorf("status = %s, want frozen", frozen.Status)
	}
	if frozen.FrozenAt == nil {
		t.Fatal("frozen_at not set")
	}

	// Second freeze is rejected and frozen_at untouched
	_, err = engine.Freeze(ctx, app.ID, false)
	if err != models.ErrInvalidState {
		t.Errorf("double freeze error = %v, want ErrInvalidState", err)
	}
	again, _ := engine.UpdateAnswers(ctx, app.ID, map[string]string{}, nil)
	if !again.FrozenAt.Equal(*frozen.FrozenAt) {
		t.Errorf("frozen_at changed on rejected freeze: %v vs %v", again.FrozenAt, frozen.FrozenAt)
	}
}

func TestFreezeAllowPartial(t *testing.T) {
	engine, _ := setup(t)
	ctx := context.Background()

	app, _, _ := engine.CreateOrResume(ctx, "a@example.com")
	frozen, err := engine.Freeze(ctx, app.ID, true)
	if err != nil {
		t.Fatalf("allowPartial freeze failed: %v", err)
	}
	if frozen.Status != models.StatusFrozen {
		t.Errorf("status = %s, want frozen", frozen.Status)
	}
}

func TestSubmit(t *testing.T) {
	engine, apps := setup(t)
	ctx := context.Background()

	app, _, _ := engine.CreateOrResume(ctx, "a@example.com")

	// From in_progress: rejected
	if _, err := engine.Submit(ctx, app.ID); err != models.ErrInvalidState {
		t.Errorf("submit from in_progress error = %v, want ErrInvalidState", err)
	}

	engine.UpdateAnswers(ctx, app.ID, testutil.CompleteAnswers(), nil)
	engine.Freeze(ctx, app.ID, false)

	// Frozen but unmatched: rejected
	if _, err := engine.Submit(ctx, app.ID); err != models.ErrInvalidState {
		t.Errorf("submit before matching error = %v, want ErrInvalidState", err)
	}

	apps.SetMatchedHomes(ctx, app.ID, []string{"h1", "h2"})
	submitted, err := engine.Submit(ctx, app.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != models.StatusSubmitted || submitted.SubmittedAt == nil {
		t.Errorf("submit did not finalize: status=%s submitted_at=%v", submitted.Status, submitted.SubmittedAt)
	}

	// Terminal: a second submit is rejected
	if _, err := engine.Submit(ctx, app.ID); err != models.ErrInvalidState {
		t.Errorf("double submit error = %v, want ErrInvalidState", err)
	}
}

func TestOperationsOnMissingApplication(t *testing.T) {
	engine, _ := setup(t)
	ctx := context.Background()

	if _, err := engine.UpdateAnswers(ctx, "nope", map[string]string{"a": "b"}, nil); err != models.ErrNotFound {
		t.Errorf("UpdateAnswers error = %v, want ErrNotFound", err)
	}
	if _, err := engine.Freeze(ctx, "nope", false); err != models.ErrNotFound {
		t.Errorf("Freeze error = %v, want ErrNotFound", err)
	}
	if _, err := engine.Submit(ctx, "nope"); err != models.ErrNotFound {
		t.Errorf("Submit error = %v, want ErrNotFound", err)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.example.com", "x+tag@example.io"}
	invalid := []string{"", "plain", "@x.com", "a@", "a@b", "a@b.", "a@@b.com"}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}
