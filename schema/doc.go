// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schema holds the static application questionnaire and the
conditional-visibility resolver driven by it.

# Structure

The questionnaire is an ordered list of sections, each an ordered list
of questions. Question IDs double as keys into an application's answer
map. Section order is fixed at definition time and determines the
section index used for progress display.

# Conditional Visibility

A question may carry a Conditional rule:

	{DependsOn: "applied_before", ShowWhen: "yes"}

The question is visible (and therefore potentially required) only while
the referenced answer equals ShowWhen exactly. Rules may chain —
"what_changed" depends on "same_thing", which itself depends on
"applied_before" — so visibility must be recomputed on every answer
change.

A conditional may only reference a question declared earlier in the
flattened order. The package test walks the static data to keep that
invariant honest.

# Completeness

	schema.IsComplete(answers)

is true when every visible required question has a non-empty trimmed
answer. The lifecycle engine uses it to gate the freeze transition;
clients use MissingRequired to tell the applicant what is left.
*/
package schema
