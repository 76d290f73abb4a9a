// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type seedHome struct {
	name     string
	slug     string
	color    string
	location string
	prompt   string
}

var seedHomes = []seedHome{
	{"Vienna", "vienna", "#7a5c3e", "Vienna", "Builders drawn to Europe, deep work, and an old-world pace. Fits researchers and long-horizon projects."},
	{"Homebrew", "homebrew", "#2f4f4f", "Brooklyn, NY", "Scrappy hardware and consumer tinkerers. Fits people who ship physical things and demo weekly."},
	{"Inventors", "inventors", "#b8860b", "San Francisco", "First-principles technical founders. Fits deep-tech and novel infrastructure projects."},
	{"Actioners", "actioners", "#8b0000", "San Francisco", "High-output operators who talk to users daily. Fits growth-stage consumer and B2B products."},
	{"Bangalore", "bangalore", "#006400", "Bangalore", "Builders targeting emerging markets and massive scale. Fits fintech and infrastructure for the next billion users."},
	{"Aurea", "aurea", "#daa520", "San Francisco", "Design-obsessed product founders. Fits projects where craft and taste are the moat."},
	{"Arcadia", "arcadia", "#556b2f", "Berkeley", "Academic-adjacent researchers commercializing lab work. Fits science-heavy projects."},
	{"SF2", "sf2", "#4682b4", "San Francisco", "Generalist second SF house. Fits ambitious builders who thrive in a dense, social environment."},
	{"Biopunk", "biopunk", "#9932cc", "San Francisco", "Biotech and wet-lab builders. Fits synthetic biology, health, and longevity projects."},
	{"London", "london", "#191970", "London", "European fintech and enterprise founders. Fits projects needing proximity to finance and regulators."},
}

// SeedHomes inserts the default home set when the home table is empty.
// Intended for fresh dev databases so matching works out of the box;
// a no-op once any home exists.
func SeedHomes(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM home").Scan(&count); err != nil {
		return fmt.Errorf("failed to count homes: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for i, h := range seedHomes {
		_, err := db.Exec(`
			INSERT INTO home (id, name, slug, color, location, description_template, matching_prompt, active, display_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, uuid.NewString(), h.name, h.slug, h.color, h.location,
			"Welcome to "+h.name+", {{name}}.", h.prompt, true, i, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed home %s: %w", h.slug, err)
		}
	}

	return nil
}
