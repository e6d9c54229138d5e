package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResume stores a resume with its extracted skills and records each skill in the skills table.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, fileName, text string, skills []string) (int64, error) {
	var id int64
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		if err := ensureUser(ctx, tx, userID); err != nil {
			return err
		}

		err := tx.QueryRow(ctx,
			`INSERT INTO resumes (user_id, file_name, extracted_text, extracted_skills)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			userID, fileName, text, nonNil(skills),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert resume: %w", err)
		}

		for _, skill := range skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO skills (name) VALUES ($1) ON CONFLICT DO NOTHING`, skill,
			); err != nil {
				return fmt.Errorf("failed to record skill %q: %w", skill, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListResumes returns the user's resumes, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, file_name, extracted_skills, upload_date
		 FROM resumes WHERE user_id = $1
		 ORDER BY upload_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.FileName, &r.ExtractedSkills, &r.UploadDate); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// LatestExtractedSkills returns the skills of the user's most recent resume.
// found is false when the user has no resume.
func (db *DB) LatestExtractedSkills(ctx context.Context, userID uuid.UUID) ([]string, bool, error) {
	var skills []string
	err := db.pool.QueryRow(ctx,
		`SELECT extracted_skills FROM resumes
		 WHERE user_id = $1
		 ORDER BY upload_date DESC, id DESC
		 LIMIT 1`,
		userID,
	).Scan(&skills)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get extracted skills: %w", err)
	}
	return nonNil(skills), true, nil
}
