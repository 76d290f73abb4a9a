// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders applications as CSV for the admin surface.
package export

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/schema"
)

// WriteCSV writes one row per application: fixed metadata columns
// followed by one column per schema question in schema order, with
// question labels as header text. homeNames maps home ids to display
// names for the Matched Homes column; unknown ids fall back to the raw
// id. Standard CSV quoting throughout (encoding/csv).
func WriteCSV(w io.Writer, apps []models.Application, homeNames map[string]string) error {
	cw := csv.NewWriter(w)

	var questionIDs, header []string
	header = append(header, "Email", "Status", "Created At", "Frozen At", "Submitted At", "Matched Homes")
	for _, s := range schema.Sections() {
		for _, q := range s.Questions {
			questionIDs = append(questionIDs, q.ID)
			header = append(header, q.Label)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, app := range apps {
		row := []string{
			app.Email,
			app.Status,
			formatTime(&app.CreatedAt),
			formatTime(app.FrozenAt),
			formatTime(app.SubmittedAt),
			joinHomes(app.MatchedHomeIDs, homeNames),
		}
		for _, qid := range questionIDs {
			row = append(row, app.Answers[qid])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func joinHomes(ids []string, names map[string]string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, "; ")
}
