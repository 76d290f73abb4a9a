// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Application status constants
const (
	StatusInProgress = "in_progress"
	StatusFrozen     = "frozen"
	StatusSubmitted  = "submitted"
)

// HomeAnswerPrefix tags answer keys holding a matched home's follow-up
// answer. These keys stay writable while the application is frozen;
// every other key is locked at freeze time.
const HomeAnswerPrefix = "home_"

// MaxMatches is the number of homes matched per application
// (fewer when fewer homes are active).
const MaxMatches = 3

// Request types

type CreateApplicationRequest struct {
	Email string `json:"email"`
}

type UpdateApplicationRequest struct {
	Answers        map[string]string `json:"answers"`
	CurrentSection *string           `json:"current_section,omitempty"`
}

type FreezeRequest struct {
	AllowPartial bool `json:"allow_partial"`
}

type AdminLoginRequest struct {
	Secret string `json:"secret"`
}

type HomeRequest struct {
	Name                string  `json:"name"`
	Color               string  `json:"color"`
	LogoURL             *string `json:"logo_url,omitempty"`
	Location            string  `json:"location"`
	DescriptionTemplate string  `json:"description_template"`
	MatchingPrompt      string  `json:"matching_prompt"`
	Question            *string `json:"question,omitempty"`
	VideoURL            *string `json:"video_url,omitempty"`
	Active              *bool   `json:"active,omitempty"`
	DisplayOrder        *int    `json:"display_order,omitempty"`
}

// HomeUpdateRequest carries a partial home edit: nil fields are left
// unchanged.
type HomeUpdateRequest struct {
	Name                *string `json:"name,omitempty"`
	Color               *string `json:"color,omitempty"`
	LogoURL             *string `json:"logo_url,omitempty"`
	Location            *string `json:"location,omitempty"`
	DescriptionTemplate *string `json:"description_template,omitempty"`
	MatchingPrompt      *string `json:"matching_prompt,omitempty"`
	Question            *string `json:"question,omitempty"`
	VideoURL            *string `json:"video_url,omitempty"`
	Active              *bool   `json:"active,omitempty"`
	DisplayOrder        *int    `json:"display_order,omitempty"`
}

// Response types

type MatchResponse struct {
	MatchedHomeIDs []string `json:"matched_home_ids"`
}

type StatsResponse struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Frozen     int `json:"frozen"`
	Submitted  int `json:"submitted"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Domain types

type Application struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	Answers        map[string]string `json:"answers"`
	Status         string            `json:"status"`
	CurrentSection *string           `json:"current_section,omitempty"`
	MatchedHomeIDs []string          `json:"matched_home_ids"`
	FrozenAt       *time.Time        `json:"frozen_at,omitempty"`
	SubmittedAt    *time.Time        `json:"submitted_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type Home struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Color               string    `json:"color"`
	LogoURL             *string   `json:"logo_url,omitempty"`
	Location            string    `json:"location"`
	DescriptionTemplate string    `json:"description_template"`
	MatchingPrompt      string    `json:"-"` // Never expose to applicants
	Question            *string   `json:"question,omitempty"`
	VideoURL            *string   `json:"video_url,omitempty"`
	Active              bool      `json:"active"`
	DisplayOrder        int       `json:"display_order"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// HomeAdmin is the admin serialization of a home. Unlike the
// applicant-facing form it includes the matching prompt.
type HomeAdmin struct {
	Home
	MatchingPrompt string `json:"matching_prompt"`
}

// Admin returns the admin serialization of h.
func (h Home) Admin() HomeAdmin {
	return HomeAdmin{Home: h, MatchingPrompt: h.MatchingPrompt}
}

// MatchResult is one entry of the ranking collaborator's output.
// Rank is 1-based; lower is better.
type MatchResult struct {
	HomeID string `json:"homeId"`
	Rank   int    `json:"rank"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
