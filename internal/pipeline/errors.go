package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrJobRoleNotFound indicates neither a catalogued role nor a custom title could be resolved
type ErrJobRoleNotFound struct {
	JobRoleID *int64
}

func (e *ErrJobRoleNotFound) Error() string {
	if e.JobRoleID == nil {
		return "job role not found"
	}
	return fmt.Sprintf("job role not found: %d", *e.JobRoleID)
}

// ErrNoResume indicates the user has not uploaded a resume yet
type ErrNoResume struct {
	UserID uuid.UUID
}

func (e *ErrNoResume) Error() string {
	return fmt.Sprintf("no resume found for user: %s", e.UserID)
}
