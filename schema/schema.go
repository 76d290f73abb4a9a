// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

// Question types
const (
	TypeText          = "text"
	TypeShortText     = "short_text"
	TypeTextarea      = "textarea"
	TypeURL           = "url"
	TypeSelect        = "select"
	TypeYesNo         = "yes_no"
	TypeCountry       = "country"
	TypeMultiCheckbox = "multi_checkbox"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Conditional hides a question unless another question's answer equals
// ShowWhen exactly. DependsOn must reference a question declared earlier
// in the flattened section order (no forward references).
type Conditional struct {
	DependsOn string `json:"dependsOn"`
	ShowWhen  string `json:"showWhen"`
}

type Question struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Required    bool         `json:"required"`
	Placeholder string       `json:"placeholder,omitempty"`
	HelpText    string       `json:"helpText,omitempty"`
	MaxLength   int          `json:"maxLength,omitempty"`
	Options     []Option     `json:"options,omitempty"`
	Conditional *Conditional `json:"conditional,omitempty"`
}

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Sections returns the ordered application sections. The slice is
// package data; callers must not modify it.
func Sections() []Section {
	return sections
}

// SectionIndex returns the position of a section, or -1 when unknown.
func SectionIndex(sectionID string) int {
	for i, s := range sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}

// NextSection returns the section after sectionID, or "" at the end.
func NextSection(sectionID string) string {
	idx := SectionIndex(sectionID)
	if idx == -1 || idx >= len(sections)-1 {
		return ""
	}
	return sections[idx+1].ID
}

// PrevSection returns the section before sectionID, or "" at the start.
func PrevSection(sectionID string) string {
	idx := SectionIndex(sectionID)
	if idx <= 0 {
		return ""
	}
	return sections[idx-1].ID
}

var sections = []Section{
	{
		ID:    "about-you",
		Title: "About You",
		Questions: []Question{
			{
				ID:       "citizenship",
				Label:    "What is your country of citizenship?",
				Type:     TypeCountry,
				Required: true,
			},
			{
				ID:       "locations",
				Label:    "Which Residency locations are you open to?",
				Type:     TypeMultiCheckbox,
				Required: true,
				HelpText: "Select all that apply",
				Options: []Option{
					{Label: "Vienna", Value: "vienna"},
					{Label: "Brooklyn, NY (Homebrew)", Value: "homebrew"},
					{Label: "San Francisco (Inventors)", Value: "inventors"},
					{Label: "San Francisco (Actioners)", Value: "actioners"},
					{Label: "Bangalore", Value: "bangalore"},
					{Label: "Aurea", Value: "aurea"},
					{Label: "Berkeley (Arcadia)", Value: "arcadia"},
					{Label: "San Francisco (SF2)", Value: "sf2"},
					{Label: "Biopunk", Value: "biopunk"},
					{Label: "London", Value: "london"},
				},
			},
			{
				ID:          "accomplishments",
				Label:       "What past two prior accomplishments are you the most proud of?",
				Type:        TypeTextarea,
				Required:    true,
				Placeholder: "Tell us about your proudest achievements...",
			},
		},
	},
	{
		ID:    "the-project",
		Title: "The Project",
		Questions: []Question{
			{
				ID:          "pitch",
				Label:       "Describe what you're building in 50 characters or less.",
				Type:        TypeShortText,
				Required:    true,
				MaxLength:   50,
				Placeholder: "e.g. AI-powered legal document review",
			},
			{
				ID:          "details",
				Label:       "Add any details that we might be interested in that you couldn't fit in 50 characters.",
				Type:        TypeTextarea,
				Required:    true,
				Placeholder: "Tell us more about your project...",
			},
			{
				ID:          "project_link",
				Label:       "Link to your project (if available, nw if you don't have one)",
				Type:        TypeURL,
				Placeholder: "https://",
			},
			{
				ID:          "demo_video",
				Label:       "Demo video (if available, nw if you don't have one)",
				Type:        TypeURL,
				Placeholder: "https://",
			},
		},
	},
	{
		ID:    "why-this-idea",
		Title: "Why This Idea",
		Questions: []Question{
			{
				ID:          "why_this",
				Label:       "Why did you pick this to work on?",
				Type:        TypeTextarea,
				Required:    true,
				Placeholder: "What drew you to this problem?",
			},
			{
				ID:          "how_know_needed",
				Label:       "How do you know people need what you're making?",
				Type:        TypeTextarea,
				Required:    true,
				Placeholder: "What evidence do you have?",
			},
		},
	},
	{
		ID:    "progress",
		Title: "Progress",
		Questions: []Question{
			{
				ID:          "how_far",
				Label:       "How far along is your project?",
				Type:        TypeTextarea,
				Required:    true,
				Placeholder: "Describe your current stage...",
			},
			{
				ID:       "duration",
				Label:    "How long have you been working on this, and how much has been full-time, if any?",
				Type:     TypeTextarea,
				Required: true,
			},
			{
				ID:       "has_users",
				Label:    "Are people using your project?",
				Type:     TypeYesNo,
				Required: true,
			},
			{
				ID:       "has_revenue",
				Label:    "Do you have revenue?",
				Type:     TypeYesNo,
				Required: true,
			},
		},
	},
	{
		ID:    "competition",
		Title: "Competition & Business Model",
		Questions: []Question{
			{
				ID:       "competitors",
				Label:    "Who is another person or group trying to solve this problem?",
				Type:     TypeTextarea,
				Required: true,
			},
			{
				ID:       "unique_insight",
				Label:    "What do you understand that they don't?",
				Type:     TypeTextarea,
				Required: true,
			},
			{
				ID:       "world_impact",
				Label:    "How will this positively impact the world?",
				Type:     TypeTextarea,
				Required: true,
			},
		},
	},
	{
		ID:    "the-residency",
		Title: "The Residency",
		Questions: []Question{
			{
				ID:       "what_need",
				Label:    "What do you need most right now to make meaningful progress on this project?",
				Type:     TypeTextarea,
				Required: true,
			},
			{
				ID:       "how_helps",
				Label:    "How can the Residency help you move the needle on that goal?",
				Type:     TypeTextarea,
				Required: true,
			},
			{
				ID:       "looking_cofounder",
				Label:    "Are you looking for a cofounder?",
				Type:     TypeYesNo,
				Required: true,
			},
		},
	},
	{
		ID:    "funding",
		Title: "Funding",
		Questions: []Question{
			{
				ID:       "has_investment",
				Label:    "Have you taken any investment?",
				Type:     TypeYesNo,
				Required: true,
			},
			{
				ID:       "focus_area",
				Label:    "Will you be more focused on fundraising or building at the beginning of the cohort?",
				Type:     TypeSelect,
				Required: true,
				Options: []Option{
					{Label: "Fundraising", Value: "fundraising"},
					{Label: "Building", Value: "building"},
				},
			},
		},
	},
	{
		ID:    "past-programs",
		Title: "Past Programs",
		Questions: []Question{
			{
				ID:          "accelerators",
				Label:       "Have you participated in any incubators, accelerators, or pre-accelerators? If so which ones?",
				Type:        TypeTextarea,
				Required:    true,
				Placeholder: "List any programs you've been part of, or write N/A",
			},
			{
				ID:       "had_roommates",
				Label:    "Have you had roommates besides your family before?",
				Type:     TypeYesNo,
				Required: true,
			},
			{
				ID:       "applied_before",
				Label:    "Have you applied to the Residency before?",
				Type:     TypeYesNo,
				Required: true,
			},
			{
				ID:    "same_thing",
				Label: "Are you working on the same thing?",
				Type:  TypeYesNo,
				Conditional: &Conditional{
					DependsOn: "applied_before",
					ShowWhen:  "yes",
				},
			},
			{
				ID:    "what_changed",
				Label: "What changed since last time?",
				Type:  TypeTextarea,
				Conditional: &Conditional{
					DependsOn: "same_thing",
					ShowWhen:  "yes",
				},
			},
			{
				ID:    "why_pivot",
				Label: "Why did you pivot, and what did you learn?",
				Type:  TypeTextarea,
				Conditional: &Conditional{
					DependsOn: "same_thing",
					ShowWhen:  "no",
				},
			},
		},
	},
	{
		ID:    "how-found-us",
		Title: "How You Found Us",
		Questions: []Question{
			{
				ID:       "what_convinced",
				Label:    "What convinced you to apply? Did someone encourage you?",
				Type:     TypeTextarea,
				Required: true,
			},
			{
				ID:       "how_heard",
				Label:    "How did you hear about the Residency?",
				Type:     TypeSelect,
				Required: true,
				Options: []Option{
					{Label: "Instagram", Value: "instagram"},
					{Label: "Twitter", Value: "twitter"},
					{Label: "LinkedIn", Value: "linkedin"},
					{Label: "Email", Value: "email"},
					{Label: "Word of Mouth", Value: "word_of_mouth"},
					{Label: "Other", Value: "other"},
				},
			},
		},
	},
}
