// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/residencyhq/intake/lifecycle"
	"github.com/residencyhq/intake/matching"
	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/store"
	"github.com/residencyhq/intake/testutil"
)

// failingRanker simulates a down ranking provider so matching takes
// the fallback path.
type failingRanker struct{}

func (failingRanker) Rank(ctx context.Context, system, user string) (string, error) {
	return "", errors.New("provider unavailable")
}

// TestFullApplicationWorkflow tests the complete end-to-end workflow:
// 1. Create application
// 2. Save answers section by section
// 3. Resume by email
// 4. Freeze
// 5. Match homes
// 6. Answer a home follow-up question while frozen
// 7. Submit
// 8. Verify the record is read-only
func TestFullApplicationWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	apps := store.NewApplicationStore(db)
	homes := store.NewHomeStore(db)
	appHandler := NewApplicationHandler(lifecycle.New(apps), apps, cfg)
	matchHandler := NewMatchHandler(matching.NewEngine(apps, homes, failingRanker{}))

	for i, name := range []string{"Vienna", "Lisbon", "Berlin", "Austin"} {
		testutil.CreateTestHome(t, db, name, store.Slugify(name), name, true, i)
	}

	// Step 1: Create application
	req := testutil.MakeRequest("POST", "/applications", models.CreateApplicationRequest{Email: "Founder@Example.com"}, nil)
	w := httptest.NewRecorder()
	appHandler.CreateOrResume(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var app models.Application
	testutil.AssertJSON(t, w, &app)
	if app.ID == "" || app.Status != models.StatusInProgress {
		t.Fatalf("Step 1 - unexpected application: %+v", app)
	}
	appID := app.ID
	t.Logf("Step 1 - Created application: %s", appID)

	// Step 2: Save answers in two PATCHes, verifying the merge
	section := "the-idea"
	req = testutil.MakeRequest("PATCH", "/applications/"+appID, models.UpdateApplicationRequest{
		Answers:        map[string]string{"pitch": "AI legal review"},
		CurrentSection: &section,
	}, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("PATCH", "/applications/"+appID, models.UpdateApplicationRequest{
		Answers: testutil.CompleteAnswers(),
	}, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &app)
	if app.Answers["pitch"] == "" {
		t.Fatal("Step 2 - merge lost an answer")
	}

	// Step 3: Resume by email returns the same application, not a new one
	req = testutil.MakeRequest("POST", "/applications", models.CreateApplicationRequest{Email: "founder@example.com"}, nil)
	w = httptest.NewRecorder()
	appHandler.CreateOrResume(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &app)
	if app.ID != appID {
		t.Fatalf("Step 3 - resume created a new application: %s", app.ID)
	}
	t.Logf("Step 3 - Resumed application by email")

	// Step 4: Freeze
	req = testutil.MakeRequest("POST", "/applications/"+appID+"/freeze", nil, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Freeze(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &app)
	if app.Status != models.StatusFrozen || app.FrozenAt == nil {
		t.Fatalf("Step 4 - freeze did not stick: %+v", app)
	}

	// Step 5: Match (fallback path; the ranker is down)
	req = testutil.MakeRequest("POST", "/applications/"+appID+"/match", nil, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	matchHandler.Match(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var matchResp models.MatchResponse
	testutil.AssertJSON(t, w, &matchResp)
	if len(matchResp.MatchedHomeIDs) != 3 {
		t.Fatalf("Step 5 - got %d matches, want 3", len(matchResp.MatchedHomeIDs))
	}
	t.Logf("Step 5 - Matched homes: %v", matchResp.MatchedHomeIDs)

	// A second match call returns the same list
	req = testutil.MakeRequest("POST", "/applications/"+appID+"/match", nil, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	matchHandler.Match(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var again models.MatchResponse
	testutil.AssertJSON(t, w, &again)
	for i := range matchResp.MatchedHomeIDs {
		if again.MatchedHomeIDs[i] != matchResp.MatchedHomeIDs[i] {
			t.Fatalf("Step 5 - repeat match changed the list: %v vs %v", again.MatchedHomeIDs, matchResp.MatchedHomeIDs)
		}
	}

	// Step 6: Follow-up answer for a matched home is accepted while
	// frozen; an ordinary answer is silently dropped
	followUpKey := "home_" + matchResp.MatchedHomeIDs[0]
	req = testutil.MakeRequest("PATCH", "/applications/"+appID, models.UpdateApplicationRequest{
		Answers: map[string]string{followUpKey: "I'd bring board games", "pitch": "rewritten"},
	}, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &app)
	if app.Answers[followUpKey] != "I'd bring board games" {
		t.Fatal("Step 6 - follow-up answer not stored")
	}
	if app.Answers["pitch"] == "rewritten" {
		t.Fatal("Step 6 - locked answer changed while frozen")
	}

	// Step 7: Submit
	req = testutil.MakeRequest("POST", "/applications/"+appID+"/submit", nil, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &app)
	if app.Status != models.StatusSubmitted || app.SubmittedAt == nil {
		t.Fatalf("Step 7 - submit did not stick: %+v", app)
	}

	// Step 8: All writes now rejected
	req = testutil.MakeRequest("PATCH", "/applications/"+appID, models.UpdateApplicationRequest{
		Answers: map[string]string{followUpKey: "changed my mind"},
	}, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Update(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	req = testutil.MakeRequest("POST", "/applications/"+appID+"/submit", nil, nil)
	req.SetPathValue("id", appID)
	w = httptest.NewRecorder()
	appHandler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
	t.Logf("Step 8 - Submitted application is read-only")
}

func TestFreezeIncompleteRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	apps := store.NewApplicationStore(db)
	handler := NewApplicationHandler(lifecycle.New(apps), apps, cfg)

	appID := testutil.CreateTestApplication(t, db, "a@example.com", models.StatusInProgress, map[string]string{"pitch": "only this"})

	req := testutil.MakeRequest("POST", "/applications/"+appID+"/freeze", nil, nil)
	req.SetPathValue("id", appID)
	w := httptest.NewRecorder()
	handler.Freeze(w, req)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
}

func TestFreezeAllowPartialRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	apps := store.NewApplicationStore(db)
	handler := NewApplicationHandler(lifecycle.New(apps), apps, cfg)

	appID := testutil.CreateTestApplication(t, db, "a@example.com", models.StatusInProgress, nil)

	// Without an admin session the flag is ignored
	req := testutil.MakeRequest("POST", "/applications/"+appID+"/freeze", models.FreezeRequest{AllowPartial: true}, nil)
	req.SetPathValue("id", appID)
	w := httptest.NewRecorder()
	handler.Freeze(w, req)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	// With one it is honored
	req = testutil.MakeRequest("POST", "/applications/"+appID+"/freeze", models.FreezeRequest{AllowPartial: true}, nil)
	req.SetPathValue("id", appID)
	req.AddCookie(testutil.AdminCookie(cfg))
	w = httptest.NewRecorder()
	handler.Freeze(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCreateApplicationInvalidEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	apps := store.NewApplicationStore(db)
	handler := NewApplicationHandler(lifecycle.New(apps), apps, cfg)

	req := testutil.MakeRequest("POST", "/applications", models.CreateApplicationRequest{Email: "not-an-email"}, nil)
	w := httptest.NewRecorder()
	handler.CreateOrResume(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetApplicationByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	apps := store.NewApplicationStore(db)
	handler := NewApplicationHandler(lifecycle.New(apps), apps, cfg)

	testutil.CreateTestApplication(t, db, "a@example.com", models.StatusInProgress, nil)

	req := testutil.MakeRequest("GET", "/applications?email=A@Example.com", nil, nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var app models.Application
	testutil.AssertJSON(t, w, &app)
	if app.Email != "a@example.com" {
		t.Errorf("got %s, want the normalized-email lookup to hit", app.Email)
	}

	req = testutil.MakeRequest("GET", "/applications?email=missing@example.com", nil, nil)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestMatchBeforeFreeze(t *testing.T) {
	db := testutil.SetupTestDB(t)
	apps := store.NewApplicationStore(db)
	homes := store.NewHomeStore(db)
	handler := NewMatchHandler(matching.NewEngine(apps, homes, failingRanker{}))

	testutil.CreateTestHome(t, db, "Vienna", "vienna", "Vienna", true, 0)
	appID := testutil.CreateTestApplication(t, db, "a@example.com", models.StatusInProgress, nil)

	req := testutil.MakeRequest("POST", "/applications/"+appID+"/match", nil, nil)
	req.SetPathValue("id", appID)
	w := httptest.NewRecorder()
	handler.Match(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestMatchNoActiveHomes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	apps := store.NewApplicationStore(db)
	homes := store.NewHomeStore(db)
	handler := NewMatchHandler(matching.NewEngine(apps, homes, failingRanker{}))

	appID := testutil.CreateTestApplication(t, db, "a@example.com", models.StatusFrozen, nil)

	req := testutil.MakeRequest("POST", "/applications/"+appID+"/match", nil, nil)
	req.SetPathValue("id", appID)
	w := httptest.NewRecorder()
	handler.Match(w, req)
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}
