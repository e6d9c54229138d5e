package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// SaveAnalysis persists a gap analysis and fills in its ID and date.
func (db *DB) SaveAnalysis(ctx context.Context, rec *types.AnalysisRecord) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skill_gap_analysis (user_id, job_role_id, matched_skills, missing_skills, match_percentage)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, analysis_date`,
		rec.UserID, rec.JobRoleID, nonNil(rec.MatchedSkills), nonNil(rec.MissingSkills), rec.MatchPercentage,
	).Scan(&rec.ID, &rec.AnalysisDate)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalysisHistory returns the user's most recent analyses with their role titles.
func (db *DB) ListAnalysisHistory(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT sga.id, sga.job_role_id, jr.title, sga.matched_skills, sga.missing_skills,
		        sga.match_percentage, sga.analysis_date
		 FROM skill_gap_analysis sga
		 JOIN job_roles jr ON sga.job_role_id = jr.id
		 WHERE sga.user_id = $1
		 ORDER BY sga.analysis_date DESC, sga.id DESC
		 LIMIT $2`,
		userID, HistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis history: %w", err)
	}
	defer rows.Close()

	history := []types.AnalysisRecord{}
	for rows.Next() {
		rec := types.AnalysisRecord{UserID: userID}
		if err := rows.Scan(&rec.ID, &rec.JobRoleID, &rec.JobRoleTitle, &rec.MatchedSkills,
			&rec.MissingSkills, &rec.MatchPercentage, &rec.AnalysisDate); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		history = append(history, rec)
	}
	return history, rows.Err()
}
