// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/residencyhq/intake/models"
)

const homeColumns = `id, name, slug, color, logo_url, location, description_template, matching_prompt, question, video_url, active, display_order, created_at, updated_at`

// HomeStore persists homes. Homes are created and edited only through
// admin actions.
type HomeStore struct {
	db *sql.DB
}

func NewHomeStore(db *sql.DB) *HomeStore {
	return &HomeStore{db: db}
}

// Insert creates a home, generating its id and slug.
func (s *HomeStore) Insert(ctx context.Context, h models.Home) (models.Home, error) {
	now := time.Now().UTC()
	h.ID = uuid.NewString()
	if h.Slug == "" {
		h.Slug = Slugify(h.Name)
	}
	h.CreatedAt = now
	h.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO home (id, name, slug, color, logo_url, location, description_template, matching_prompt, question, video_url, active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, h.ID, h.Name, h.Slug, h.Color, h.LogoURL, h.Location, h.DescriptionTemplate,
		h.MatchingPrompt, h.Question, h.VideoURL, h.Active, h.DisplayOrder, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return models.Home{}, fmt.Errorf("failed to insert home: %w", err)
	}

	return h, nil
}

func (s *HomeStore) GetByID(ctx context.Context, id string) (models.Home, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+homeColumns+`
		FROM home
		WHERE id = $1
	`, id)
	return scanHome(row)
}

// List returns homes ordered by display_order. With activeOnly set,
// inactive homes are excluded (the public listing and matching input).
func (s *HomeStore) List(ctx context.Context, activeOnly bool) ([]models.Home, error) {
	query := `SELECT ` + homeColumns + ` FROM home`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY display_order, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query homes: %w", err)
	}
	defer rows.Close()

	homes := []models.Home{}
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, err
		}
		homes = append(homes, h)
	}

	return homes, rows.Err()
}

// Update writes a full home row. The caller loads, mutates, and saves;
// id, slug, and created_at are never changed here.
func (s *HomeStore) Update(ctx context.Context, h models.Home) (models.Home, error) {
	h.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE home
		SET name = $1, color = $2, logo_url = $3, location = $4, description_template = $5,
		    matching_prompt = $6, question = $7, video_url = $8, active = $9, display_order = $10, updated_at = $11
		WHERE id = $12
	`, h.Name, h.Color, h.LogoURL, h.Location, h.DescriptionTemplate,
		h.MatchingPrompt, h.Question, h.VideoURL, h.Active, h.DisplayOrder, h.UpdatedAt, h.ID)
	if err != nil {
		return models.Home{}, fmt.Errorf("failed to update home: %w", err)
	}
	if err := requireRow(res); err != nil {
		return models.Home{}, err
	}

	return s.GetByID(ctx, h.ID)
}

func (s *HomeStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM home WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete home: %w", err)
	}
	return requireRow(res)
}

// Slugify lowercases a name and collapses non-alphanumeric runs to
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func scanHome(row rowScanner) (models.Home, error) {
	var h models.Home
	var logoURL, question, videoURL sql.NullString

	err := row.Scan(
		&h.ID, &h.Name, &h.Slug, &h.Color, &logoURL, &h.Location,
		&h.DescriptionTemplate, &h.MatchingPrompt, &question, &videoURL,
		&h.Active, &h.DisplayOrder, &h.CreatedAt, &h.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Home{}, models.ErrNotFound
	}
	if err != nil {
		return models.Home{}, fmt.Errorf("failed to scan home: %w", err)
	}

	if logoURL.Valid {
		h.LogoURL = &logoURL.String
	}
	if question.Valid {
		h.Question = &question.String
	}
	if videoURL.Valid {
		h.VideoURL = &videoURL.String
	}

	return h, nil
}
