package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// ListSkills returns the skills dictionary ordered by category and name.
func (db *DB) ListSkills(ctx context.Context) ([]types.CatalogSkill, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, name, category FROM skills ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return collectSkills(rows)
}

// ListSkillsByCategory returns the skills of one category ordered by name.
func (db *DB) ListSkillsByCategory(ctx context.Context, category string) ([]types.CatalogSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, category FROM skills WHERE category = $1 ORDER BY name`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills for category %s: %w", category, err)
	}
	return collectSkills(rows)
}

func collectSkills(rows pgx.Rows) ([]types.CatalogSkill, error) {
	defer rows.Close()
	skills := []types.CatalogSkill{}
	for rows.Next() {
		var s types.CatalogSkill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
