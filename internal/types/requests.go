//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Progress statuses accepted by ProgressRequest.
const (
	ProgressCompleted = "completed"
	ProgressTodo      = "todo"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// GapRequest asks for a skill gap analysis against a catalogued role, a custom role title, or both.
// When both are set the catalogued role wins if it exists.
type GapRequest struct {
	JobRoleID  *int64 `json:"jobRoleId" validate:"omitempty,gt=0"`
	CustomRole string `json:"customRole" validate:"required_without=JobRoleID,max=200"`
}

// RoadmapRequest asks for a study plan covering the given skills.
// Non-positive DurationWeeks falls back to the default duration downstream.
type RoadmapRequest struct {
	MissingSkills []string `json:"missingSkills" validate:"required"`
	DurationWeeks int      `json:"durationWeeks" validate:"max=52"`
}

// ProgressRequest marks a skill as completed or back to todo.
type ProgressRequest struct {
	SkillName string `json:"skillName" validate:"required,max=255"`
	Status    string `json:"status" validate:"required,oneof=completed todo"`
}

// CreateRoadmapRequest asks to persist a roadmap built from the latest analysis for a role.
type CreateRoadmapRequest struct {
	JobRoleID int64 `json:"jobRoleId" validate:"required,gt=0"`
}

// ExtractRequest carries resume text already reduced to plain text.
type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
}

// InferRequest carries a free-text role title.
type InferRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// Validate validates the GapRequest using the validator.
func (r *GapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RoadmapRequest using the validator.
func (r *RoadmapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ProgressRequest using the validator.
func (r *ProgressRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CreateRoadmapRequest using the validator.
func (r *CreateRoadmapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the InferRequest using the validator.
func (r *InferRequest) Validate() error {
	return validate.Struct(r)
}
