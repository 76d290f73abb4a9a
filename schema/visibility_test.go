// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

import "testing"

func questionVisible(visible []Question, id string) bool {
	for _, q := range visible {
		if q.ID == id {
			return true
		}
	}
	return false
}

func TestVisibleQuestionsConditional(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    bool
	}{
		{"shown when answer matches exactly", map[string]string{"applied_before": "yes"}, true},
		{"hidden when answer is no", map[string]string{"applied_before": "no"}, false},
		{"hidden when answer is empty", map[string]string{"applied_before": ""}, false},
		{"hidden when answer is absent", map[string]string{}, false},
		{"hidden on case mismatch", map[string]string{"applied_before": "Yes"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := VisibleQuestions(tt.answers)
			if got := questionVisible(visible, "same_thing"); got != tt.want {
				t.Errorf("same_thing visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleQuestionsCascade(t *testing.T) {
	// what_changed depends on same_thing, which depends on applied_before
	answers := map[string]string{"applied_before": "yes", "same_thing": "yes"}
	visible := VisibleQuestions(answers)
	if !questionVisible(visible, "what_changed") {
		t.Error("what_changed should be visible when the whole chain matches")
	}
	if questionVisible(visible, "why_pivot") {
		t.Error("why_pivot should be hidden when same_thing is yes")
	}

	// Breaking the root of the chain hides the leaf even though
	// same_thing still holds its old answer value.
	answers["applied_before"] = "no"
	visible = VisibleQuestions(answers)
	if questionVisible(visible, "same_thing") {
		t.Error("same_thing should be hidden when applied_before is no")
	}
}

func TestVisibleQuestionsOrder(t *testing.T) {
	visible := VisibleQuestions(map[string]string{})

	if visible[0].ID != "citizenship" {
		t.Errorf("first visible question = %s, want citizenship", visible[0].ID)
	}
	if visible[len(visible)-1].ID != "how_heard" {
		t.Errorf("last visible question = %s, want how_heard", visible[len(visible)-1].ID)
	}

	// Flattened order must follow section order
	idx := map[string]int{}
	for i, q := range visible {
		idx[q.ID] = i
	}
	if idx["pitch"] < idx["accomplishments"] {
		t.Error("the-project questions must come after about-you questions")
	}
}

func TestIsComplete(t *testing.T) {
	answers := map[string]string{}
	for _, q := range VisibleQuestions(nil) {
		if q.Required {
			answers[q.ID] = "filled"
		}
	}

	if !IsComplete(answers) {
		t.Errorf("expected complete, missing: %v", MissingRequired(answers))
	}

	// Whitespace-only answers don't count
	answers["pitch"] = "   "
	if IsComplete(answers) {
		t.Error("whitespace-only answer should not satisfy a required question")
	}
	missing := MissingRequired(answers)
	if len(missing) != 1 || missing[0] != "pitch" {
		t.Errorf("missing = %v, want [pitch]", missing)
	}
}

func TestIsCompleteIgnoresHiddenRequired(t *testing.T) {
	// A required question behind an unsatisfied conditional must not
	// block completeness. Flip how_heard to required-conditional shape
	// by checking the real chain: answering applied_before=yes makes
	// same_thing visible but it is not required, so completeness is
	// unaffected either way.
	answers := map[string]string{}
	for _, q := range VisibleQuestions(nil) {
		if q.Required {
			answers[q.ID] = "filled"
		}
	}
	answers["applied_before"] = "yes"

	if !IsComplete(answers) {
		t.Errorf("optional conditional questions must not block completeness, missing: %v", MissingRequired(answers))
	}
}
