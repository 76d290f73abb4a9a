// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/residencyhq/intake/auth"
	"github.com/residencyhq/intake/cliparse"
	"github.com/residencyhq/intake/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema in
// the test's temp directory. No external services needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "intake_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// sqlite misbehaves with concurrent writers on separate conns
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4680,
		DatabaseURL:  "test.db",
		DatabaseType: "sqlite",
		AdminSecret:  "test-admin-secret",
		SessionSalt:  "test-session-salt",
	}
}

// AdminCookie returns a valid admin session cookie for the config.
func AdminCookie(cfg cliparse.Config) *http.Cookie {
	return &http.Cookie{
		Name:  auth.SessionCookieName,
		Value: auth.SessionToken(cfg.AdminSecret, cfg.SessionSalt),
	}
}

// CreateTestApplication inserts an application and returns its ID.
// status should be "in_progress", "frozen", or "submitted"; answers
// may be nil. Frozen and submitted rows get the matching timestamps.
func CreateTestApplication(t *testing.T, conn *sql.DB, email, status string, answers map[string]string) string {
	t.Helper()

	if answers == nil {
		answers = map[string]string{}
	}
	answersJSON, _ := json.Marshal(answers)

	id := uuid.NewString()
	now := time.Now().UTC()

	var frozenAt, submittedAt *time.Time
	if status == "frozen" || status == "submitted" {
		frozenAt = &now
	}
	if status == "submitted" {
		submittedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO application (id, email, answers, status, frozen_at, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, email, string(answersJSON), status, frozenAt, submittedAt, now, now)
	if err != nil {
		t.Fatalf("Failed to create test application: %v", err)
	}

	return id
}

// SetMatchedHomes writes matched home ids directly onto an application.
func SetMatchedHomes(t *testing.T, conn *sql.DB, applicationID string, homeIDs []string) {
	t.Helper()

	raw, _ := json.Marshal(homeIDs)
	_, err := conn.Exec(`UPDATE application SET matched_home_ids = $1 WHERE id = $2`, string(raw), applicationID)
	if err != nil {
		t.Fatalf("Failed to set matched homes: %v", err)
	}
}

// CreateTestHome inserts a home and returns its ID.
func CreateTestHome(t *testing.T, conn *sql.DB, name, slug, location string, active bool, displayOrder int) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO home (id, name, slug, color, location, description_template, matching_prompt, active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, '#333333', $4, $5, $6, $7, $8, $9, $10)
	`, id, name, slug, location, "Welcome to "+name+", {{name}}.", "Fit criteria for "+name, active, displayOrder, now, now)
	if err != nil {
		t.Fatalf("Failed to create test home: %v", err)
	}

	return id
}

// CompleteAnswers returns an answer map satisfying every required
// question that is visible given these values (applied_before=no keeps
// the conditional chain hidden).
func CompleteAnswers() map[string]string {
	return map[string]string{
		"citizenship":       "Austria",
		"locations":         "vienna|london",
		"accomplishments":   "Shipped two products",
		"pitch":             "AI-powered legal review",
		"details":           "More details about the project",
		"why_this":          "It matters",
		"how_know_needed":   "Users asked for it",
		"how_far":           "Beta with users",
		"duration":          "One year, six months full-time",
		"has_users":         "yes",
		"has_revenue":       "no",
		"competitors":       "BigCo",
		"unique_insight":    "Distribution is the moat",
		"world_impact":      "Cheaper legal help",
		"what_need":         "Focus time",
		"how_helps":         "Community and space",
		"looking_cofounder": "no",
		"has_investment":    "no",
		"focus_area":        "building",
		"accelerators":      "N/A",
		"had_roommates":     "yes",
		"applied_before":    "no",
		"what_convinced":    "A friend",
		"how_heard":         "twitter",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
