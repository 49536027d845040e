// Package types provides type definitions for structured data used throughout the HireSight system.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobRequirements describes the position candidates are ranked against.
// Supplied per request; never persisted beyond the session except as plain
// text embedded in generated job-description strings.
type JobRequirements struct {
	Role            string   `json:"role" validate:"required,min=2"`
	RequiredSkills  []string `json:"required_skills" validate:"required,min=1,dive,min=1"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
	Experience      string   `json:"experience,omitempty"`
	CGPA            string   `json:"cgpa,omitempty"`
	Additional      string   `json:"additional,omitempty"`
	Description     string   `json:"description,omitempty"`
	WorkStyle       string   `json:"work_style,omitempty"`
	TeamSize        string   `json:"team_size,omitempty"`
}

// Validate validates the JobRequirements using the validator.
func (r *JobRequirements) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Text builds the job description text used for TF-IDF similarity matching.
func (r *JobRequirements) Text() string {
	var parts []string

	if r.Role != "" {
		parts = append(parts, fmt.Sprintf("Role: %s", r.Role))
	}
	if len(r.RequiredSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Required Skills: %s", strings.Join(r.RequiredSkills, ", ")))
	}
	if len(r.PreferredSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Preferred Skills: %s", strings.Join(r.PreferredSkills, ", ")))
	}
	if r.Experience != "" {
		parts = append(parts, fmt.Sprintf("Experience: %s", r.Experience))
	}
	if r.CGPA != "" {
		parts = append(parts, fmt.Sprintf("CGPA Required: %s", r.CGPA))
	}
	if r.Additional != "" {
		parts = append(parts, fmt.Sprintf("Additional Requirements: %s", r.Additional))
	}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}

	return strings.Join(parts, "\n")
}

// SplitSkills parses a comma-separated skill list as submitted in form data.
// Empty entries are dropped and whitespace trimmed.
func SplitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
