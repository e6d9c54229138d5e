package db

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrNoAnalysis indicates a roadmap was requested before any analysis for the role
type ErrNoAnalysis struct {
	UserID    uuid.UUID
	JobRoleID int64
}

func (e *ErrNoAnalysis) Error() string {
	return fmt.Sprintf("no analysis found for job role %d; run skill analysis first", e.JobRoleID)
}

// ErrStepNotFound indicates the roadmap step does not exist or belongs to another user
type ErrStepNotFound struct {
	StepID int64
}

func (e *ErrStepNotFound) Error() string {
	return fmt.Sprintf("roadmap step not found: %d", e.StepID)
}
