package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// ListProgress returns the user's skill progress, most recently updated first.
func (db *DB) ListProgress(ctx context.Context, userID uuid.UUID) ([]types.SkillProgress, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT skill_name, status, updated_at FROM user_skill_progress
		 WHERE user_id = $1 ORDER BY updated_at DESC, skill_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	progress := []types.SkillProgress{}
	for rows.Next() {
		var p types.SkillProgress
		if err := rows.Scan(&p.SkillName, &p.Status, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// UpsertProgress sets the status of one skill for the user.
func (db *DB) UpsertProgress(ctx context.Context, userID uuid.UUID, skillName, status string) (*types.SkillProgress, error) {
	p := types.SkillProgress{SkillName: skillName, Status: status}
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		if err := ensureUser(ctx, tx, userID); err != nil {
			return err
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO user_skill_progress (user_id, skill_name, status, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (user_id, skill_name) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
			 RETURNING updated_at`,
			userID, skillName, status,
		).Scan(&p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
