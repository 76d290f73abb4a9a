// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/residencyhq/intake/models"
)

const applicationColumns = `id, email, answers, status, current_section, matched_home_ids, frozen_at, submitted_at, created_at, updated_at`

// ApplicationStore persists applications. The answers map and the
// matched home id list are stored as JSON text.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Insert creates a new in_progress application with empty answers.
// The caller is responsible for email normalization.
func (s *ApplicationStore) Insert(ctx context.Context, email string) (models.Application, error) {
	now := time.Now().UTC()
	app := models.Application{
		ID:        uuid.NewString(),
		Email:     email,
		Answers:   map[string]string{},
		Status:    models.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO application (id, email, answers, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, app.ID, app.Email, "{}", app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to insert application: %w", err)
	}

	return app, nil
}

func (s *ApplicationStore) GetByID(ctx context.Context, id string) (models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM application
		WHERE id = $1
	`, id)
	return scanApplication(row)
}

func (s *ApplicationStore) GetByEmail(ctx context.Context, email string) (models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM application
		WHERE email = $1
	`, email)
	return scanApplication(row)
}

// List returns all applications, newest first.
func (s *ApplicationStore) List(ctx context.Context) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM application
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// SetAnswers replaces the stored answer map and, when section is
// non-nil, the current section marker. Merge policy lives in the
// lifecycle engine; the store writes what it is given.
func (s *ApplicationStore) SetAnswers(ctx context.Context, id string, answers map[string]string, section *string) (models.Application, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to encode answers: %w", err)
	}

	now := time.Now().UTC()
	var res sql.Result
	if section != nil {
		res, err = s.db.ExecContext(ctx, `
			UPDATE application SET answers = $1, current_section = $2, updated_at = $3 WHERE id = $4
		`, string(raw), *section, now, id)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE application SET answers = $1, updated_at = $2 WHERE id = $3
		`, string(raw), now, id)
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to update answers: %w", err)
	}
	if err := requireRow(res); err != nil {
		return models.Application{}, err
	}

	return s.GetByID(ctx, id)
}

// SetFrozen marks the application frozen at the given time.
func (s *ApplicationStore) SetFrozen(ctx context.Context, id string, at time.Time) (models.Application, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE application SET status = $1, frozen_at = $2, updated_at = $2 WHERE id = $3
	`, models.StatusFrozen, at.UTC(), id)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to freeze application: %w", err)
	}
	if err := requireRow(res); err != nil {
		return models.Application{}, err
	}
	return s.GetByID(ctx, id)
}

// SetSubmitted marks the application submitted at the given time.
func (s *ApplicationStore) SetSubmitted(ctx context.Context, id string, at time.Time) (models.Application, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE application SET status = $1, submitted_at = $2, updated_at = $2 WHERE id = $3
	`, models.StatusSubmitted, at.UTC(), id)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to submit application: %w", err)
	}
	if err := requireRow(res); err != nil {
		return models.Application{}, err
	}
	return s.GetByID(ctx, id)
}

// SetMatchedHomes stores the ordered matched home id list.
func (s *ApplicationStore) SetMatchedHomes(ctx context.Context, id string, homeIDs []string) (models.Application, error) {
	raw, err := json.Marshal(homeIDs)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to encode matched home ids: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE application SET matched_home_ids = $1, updated_at = $2 WHERE id = $3
	`, string(raw), time.Now().UTC(), id)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to update matched homes: %w", err)
	}
	if err := requireRow(res); err != nil {
		return models.Application{}, err
	}
	return s.GetByID(ctx, id)
}

// CountByStatus returns application counts per status plus the total.
func (s *ApplicationStore) CountByStatus(ctx context.Context) (models.StatsResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM application GROUP BY status
	`)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	var stats models.StatsResponse
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return models.StatsResponse{}, err
		}
		stats.Total += count
		switch status {
		case models.StatusInProgress:
			stats.InProgress = count
		case models.StatusFrozen:
			stats.Frozen = count
		case models.StatusSubmitted:
			stats.Submitted = count
		}
	}

	return stats, rows.Err()
}

// Delete removes an application. Admin tooling only; the applicant flow
// never deletes records.
func (s *ApplicationStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM application WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (models.Application, error) {
	var app models.Application
	var answersRaw string
	var matchedRaw, section sql.NullString
	var frozenAt, submittedAt sql.NullTime

	err := row.Scan(
		&app.ID, &app.Email, &answersRaw, &app.Status, &section,
		&matchedRaw, &frozenAt, &submittedAt, &app.CreatedAt, &app.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Application{}, models.ErrNotFound
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to scan application: %w", err)
	}

	if err := json.Unmarshal([]byte(answersRaw), &app.Answers); err != nil {
		return models.Application{}, fmt.Errorf("corrupt answers for application %s: %w", app.ID, err)
	}
	if app.Answers == nil {
		app.Answers = map[string]string{}
	}
	if matchedRaw.Valid && matchedRaw.String != "" {
		if err := json.Unmarshal([]byte(matchedRaw.String), &app.MatchedHomeIDs); err != nil {
			return models.Application{}, fmt.Errorf("corrupt matched home ids for application %s: %w", app.ID, err)
		}
	}
	if section.Valid {
		app.CurrentSection = &section.String
	}
	if frozenAt.Valid {
		t := frozenAt.Time
		app.FrozenAt = &t
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		app.SubmittedAt = &t
	}

	return app, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
