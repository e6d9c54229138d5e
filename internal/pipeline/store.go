package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// Store is the persistence the pipeline reads from and writes to.
type Store interface {
	// GetJobRole returns nil, nil when the role does not exist.
	GetJobRole(ctx context.Context, id int64) (*types.JobRole, error)
	// LatestExtractedSkills returns found=false when the user has no resume.
	LatestExtractedSkills(ctx context.Context, userID uuid.UUID) (skills []string, found bool, err error)
	SaveAnalysis(ctx context.Context, rec *types.AnalysisRecord) error
	ListProgress(ctx context.Context, userID uuid.UUID) ([]types.SkillProgress, error)
}
