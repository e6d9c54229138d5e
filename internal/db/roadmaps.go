package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// StepsForSkills builds one week-long step per skill, numbered from 1.
func StepsForSkills(skills []string) []types.RoadmapStep {
	steps := make([]types.RoadmapStep, 0, len(skills))
	for i, skill := range skills {
		steps = append(steps, types.RoadmapStep{
			StepNumber:    i + 1,
			Title:         "Learn " + skill,
			Description:   "Practice " + skill,
			DurationDays:  StepDurationDays,
			OrderSequence: i + 1,
		})
	}
	return steps
}

// CreateRoadmap stores a roadmap built from the missing skills of the user's latest analysis
// for the role. The roadmap and its steps are written in one transaction.
// Returns *ErrNoAnalysis when the user has not analysed the role yet.
func (db *DB) CreateRoadmap(ctx context.Context, userID uuid.UUID, jobRoleID int64) (*types.StoredRoadmap, error) {
	var rm types.StoredRoadmap
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		var missing []string
		err := tx.QueryRow(ctx,
			`SELECT missing_skills FROM skill_gap_analysis
			 WHERE user_id = $1 AND job_role_id = $2
			 ORDER BY analysis_date DESC, id DESC
			 LIMIT 1`,
			userID, jobRoleID,
		).Scan(&missing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &ErrNoAnalysis{UserID: userID, JobRoleID: jobRoleID}
			}
			return fmt.Errorf("failed to get latest analysis: %w", err)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO learning_roadmaps (user_id, job_role_id, title, timeline_weeks, status)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, job_role_id, title, timeline_weeks, status, created_at`,
			userID, jobRoleID, RoadmapTitle, RoadmapTimelineWeeks, RoadmapStatusActive,
		).Scan(&rm.ID, &rm.JobRoleID, &rm.Title, &rm.TimelineWeeks, &rm.Status, &rm.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert roadmap: %w", err)
		}

		rm.Steps = StepsForSkills(missing)
		for i := range rm.Steps {
			step := &rm.Steps[i]
			err := tx.QueryRow(ctx,
				`INSERT INTO roadmap_steps (roadmap_id, step_number, title, description, duration_days, order_sequence)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING id`,
				rm.ID, step.StepNumber, step.Title, step.Description, step.DurationDays, step.OrderSequence,
			).Scan(&step.ID)
			if err != nil {
				return fmt.Errorf("failed to insert roadmap step %d: %w", step.StepNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// GetLatestRoadmap returns the user's newest roadmap with its steps. Returns nil, nil when none exists.
func (db *DB) GetLatestRoadmap(ctx context.Context, userID uuid.UUID) (*types.StoredRoadmap, error) {
	var rm types.StoredRoadmap
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_role_id, title, timeline_weeks, status, created_at
		 FROM learning_roadmaps WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		userID,
	).Scan(&rm.ID, &rm.JobRoleID, &rm.Title, &rm.TimelineWeeks, &rm.Status, &rm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roadmap: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, step_number, title, description, duration_days, order_sequence, completed
		 FROM roadmap_steps WHERE roadmap_id = $1
		 ORDER BY order_sequence`,
		rm.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmap steps: %w", err)
	}
	defer rows.Close()

	rm.Steps = []types.RoadmapStep{}
	for rows.Next() {
		var s types.RoadmapStep
		if err := rows.Scan(&s.ID, &s.StepNumber, &s.Title, &s.Description, &s.DurationDays, &s.OrderSequence, &s.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan roadmap step: %w", err)
		}
		rm.Steps = append(rm.Steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roadmap steps: %w", err)
	}
	return &rm, nil
}

// ToggleStep flips the completed flag of a step on one of the user's roadmaps and returns the new value.
func (db *DB) ToggleStep(ctx context.Context, userID uuid.UUID, stepID int64) (bool, error) {
	var completed bool
	err := db.pool.QueryRow(ctx,
		`UPDATE roadmap_steps rs SET completed = NOT rs.completed
		 FROM learning_roadmaps lr
		 WHERE rs.id = $1 AND rs.roadmap_id = lr.id AND lr.user_id = $2
		 RETURNING rs.completed`,
		stepID, userID,
	).Scan(&completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, &ErrStepNotFound{StepID: stepID}
		}
		return false, fmt.Errorf("failed to toggle step: %w", err)
	}
	return completed, nil
}
