// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

import "strings"

// VisibleQuestions returns the currently active questions, flattened
// across sections with section and in-section order preserved. A
// question with no conditional is always active; a conditional question
// is active iff the answer it depends on equals ShowWhen exactly (not
// truthy, not case-insensitive). Visibility cascades: a question may
// depend on another conditional question, so callers must re-evaluate
// after every answer change.
func VisibleQuestions(answers map[string]string) []Question {
	var visible []Question
	for _, s := range sections {
		for _, q := range s.Questions {
			if q.Conditional == nil || answers[q.Conditional.DependsOn] == q.Conditional.ShowWhen {
				visible = append(visible, q)
			}
		}
	}
	return visible
}

// IsComplete reports whether every currently visible required question
// has a non-empty trimmed answer. Hidden questions are never required,
// regardless of their own Required flag.
func IsComplete(answers map[string]string) bool {
	return len(MissingRequired(answers)) == 0
}

// MissingRequired returns the IDs of visible required questions whose
// answer is empty after trimming, in schema order.
func MissingRequired(answers map[string]string) []string {
	var missing []string
	for _, q := range VisibleQuestions(answers) {
		if q.Required && strings.TrimSpace(answers[q.ID]) == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}
