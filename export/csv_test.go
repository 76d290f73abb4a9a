// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/residencyhq/intake/models"
	"github.com/residencyhq/intake/schema"
)

func questionCount() int {
	n := 0
	for _, s := range schema.Sections() {
		n += len(s.Questions)
	}
	return n
}

func TestWriteCSV(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	apps := []models.Application{
		{
			Email:     "a@example.com",
			Status:    models.StatusFrozen,
			CreatedAt: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
			FrozenAt:  &frozen,
			Answers: map[string]string{
				"pitch":   `He said, "hi"`,
				"details": "line one\nline two",
			},
			MatchedHomeIDs: []string{"h1", "h2", "h3"},
		},
		{
			Email:     "b@example.com",
			Status:    models.StatusInProgress,
			CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			Answers:   map[string]string{},
		},
	}
	names := map[string]string{"h1": "Vienna", "h2": "Lisbon"}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, apps, names); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}

	wantCols := 6 + questionCount()
	header := records[0]
	if len(header) != wantCols {
		t.Errorf("header has %d columns, want %d", len(header), wantCols)
	}
	if header[0] != "Email" || header[5] != "Matched Homes" {
		t.Errorf("unexpected metadata header: %v", header[:6])
	}

	row := records[1]
	if row[0] != "a@example.com" || row[1] != "frozen" {
		t.Errorf("metadata wrong: %v", row[:2])
	}
	if row[2] != "2026-02-28T09:00:00Z" || row[3] != "2026-03-01T10:30:00Z" {
		t.Errorf("timestamps wrong: created=%q frozen=%q", row[2], row[3])
	}
	if row[4] != "" {
		t.Errorf("empty submitted_at should render empty, got %q", row[4])
	}
	// Known ids resolve to names, unknown ids pass through
	if row[5] != "Vienna; Lisbon; h3" {
		t.Errorf("matched homes = %q", row[5])
	}

	// Quotes and newlines survive a round trip
	if got := cellFor(t, header, row, "pitch"); got != `He said, "hi"` {
		t.Errorf("pitch = %q", got)
	}
	if got := cellFor(t, header, row, "details"); got != "line one\nline two" {
		t.Errorf("details = %q", got)
	}

	if records[2][3] != "" || records[2][5] != "" {
		t.Errorf("in_progress row should have empty frozen/matched cells: %v", records[2][:6])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want header only", len(records))
	}
}

// cellFor finds the column for a question id via its label.
func cellFor(t *testing.T, header, row []string, questionID string) string {
	t.Helper()
	var label string
	for _, s := range schema.Sections() {
		for _, q := range s.Questions {
			if q.ID == questionID {
				label = q.Label
			}
		}
	}
	for i, h := range header {
		if h == label {
			return row[i]
		}
	}
	t.Fatalf("no column for question %s", questionID)
	return ""
}
