// Package types provides type definitions for structured data used throughout the skill-gap navigator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GapResult is the outcome of comparing a candidate's skills against a role's required skills.
// Matched and Missing partition the deduplicated required set; Extra holds resume skills the role does not ask for.
type GapResult struct {
	Matched         []string `json:"matchedSkills"`
	Missing         []string `json:"missingSkills"`
	Extra           []string `json:"extraSkills"`
	MatchPercentage int      `json:"matchPercentage"`
	TotalRequired   int      `json:"totalSkillsRequired"`
	SkillsMatched   int      `json:"skillsMatched"`
}

// JobRoleRef identifies the role an analysis was run against.
// ID is nil for custom roles inferred from a free-text title.
type JobRoleRef struct {
	ID    *int64 `json:"id"`
	Title string `json:"title"`
	// Custom is true when required skills were inferred rather than catalogued
	Custom bool `json:"custom"`
}

// GapResponse is the payload returned by a gap analysis request.
type GapResponse struct {
	JobRole  JobRoleRef `json:"jobRole"`
	Analysis GapResult  `json:"analysis"`
}
