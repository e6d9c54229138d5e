//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobRole is a catalogued role with its required skills.
type JobRole struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	SalaryRange     string   `json:"salary_range,omitempty"`
	Domain          string   `json:"domain"`
}

// JobRoleGroup is the set of roles sharing a domain.
type JobRoleGroup struct {
	Domain string    `json:"domain"`
	Roles  []JobRole `json:"roles"`
}

// JobRoleSeed is the on-disk seed format: roles grouped by domain.
type JobRoleSeed struct {
	Domain string    `json:"domain"`
	Roles  []JobRole `json:"roles"`
}

// CatalogSkill is an entry of the skills dictionary table.
type CatalogSkill struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// AnalysisRecord is a persisted gap analysis.
type AnalysisRecord struct {
	ID              int64     `json:"id"`
	UserID          uuid.UUID `json:"-"`
	JobRoleID       int64     `json:"job_role_id"`
	JobRoleTitle    string    `json:"job_role_title"`
	MatchedSkills   []string  `json:"matched_skills"`
	MissingSkills   []string  `json:"missing_skills"`
	MatchPercentage int       `json:"match_percentage"`
	AnalysisDate    time.Time `json:"analysis_date"`
}

// SkillProgress records whether a user has finished studying a skill.
type SkillProgress struct {
	SkillName string    `json:"skill_name"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredRoadmap is a persisted learning roadmap with its steps.
type StoredRoadmap struct {
	ID            int64         `json:"id"`
	JobRoleID     int64         `json:"job_role_id"`
	Title         string        `json:"title"`
	TimelineWeeks int           `json:"timeline_weeks"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	Steps         []RoadmapStep `json:"steps"`
}

// RoadmapStep is one persisted step of a stored roadmap.
type RoadmapStep struct {
	ID            int64  `json:"id"`
	StepNumber    int    `json:"step_number"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	DurationDays  int    `json:"duration_days"`
	OrderSequence int    `json:"order_sequence"`
	Completed     bool   `json:"completed"`
}
