package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// defaultDomain groups roles stored without a domain.
const defaultDomain = "Other"

const jobRoleColumns = `id, title, description, required_skills, experience_level, salary_range, domain`

func scanJobRole(row pgx.Row) (*types.JobRole, error) {
	var r types.JobRole
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &r.RequiredSkills, &r.ExperienceLevel, &r.SalaryRange, &r.Domain); err != nil {
		return nil, err
	}
	if r.RequiredSkills == nil {
		r.RequiredSkills = []string{}
	}
	return &r, nil
}

// ListJobRoles returns all roles grouped by domain, domains sorted by name and roles by title.
func (db *DB) ListJobRoles(ctx context.Context) ([]types.JobRoleGroup, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobRoleColumns+` FROM job_roles ORDER BY domain, title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job roles: %w", err)
	}
	defer rows.Close()

	var roles []types.JobRole
	for rows.Next() {
		r, err := scanJobRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job role: %w", err)
		}
		roles = append(roles, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job roles: %w", err)
	}
	return GroupByDomain(roles), nil
}

// GroupByDomain buckets roles by domain. Groups are sorted by domain; roles keep their input order.
func GroupByDomain(roles []types.JobRole) []types.JobRoleGroup {
	byDomain := make(map[string][]types.JobRole)
	for _, r := range roles {
		domain := r.Domain
		if domain == "" {
			domain = defaultDomain
		}
		byDomain[domain] = append(byDomain[domain], r)
	}

	domains := make([]string, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	groups := make([]types.JobRoleGroup, 0, len(domains))
	for _, d := range domains {
		groups = append(groups, types.JobRoleGroup{Domain: d, Roles: byDomain[d]})
	}
	return groups
}

// GetJobRole retrieves a role by ID. Returns nil, nil when the role does not exist.
func (db *DB) GetJobRole(ctx context.Context, id int64) (*types.JobRole, error) {
	r, err := scanJobRole(db.pool.QueryRow(ctx,
		`SELECT `+jobRoleColumns+` FROM job_roles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}
	return r, nil
}

// UpsertJobRole inserts a role or updates the one with the same title, returning its ID
// and whether it was newly created.
func (db *DB) UpsertJobRole(ctx context.Context, role *types.JobRole) (int64, bool, error) {
	domain := role.Domain
	if domain == "" {
		domain = "General"
	}

	var id int64
	var inserted bool
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_roles (title, description, required_skills, experience_level, salary_range, domain)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (title) DO UPDATE SET
		     description = EXCLUDED.description,
		     required_skills = EXCLUDED.required_skills,
		     experience_level = EXCLUDED.experience_level,
		     salary_range = EXCLUDED.salary_range,
		     domain = EXCLUDED.domain
		 RETURNING id, (xmax = 0)`,
		role.Title, role.Description, nonNil(role.RequiredSkills), role.ExperienceLevel, role.SalaryRange, domain,
	).Scan(&id, &inserted)
	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert job role %q: %w", role.Title, err)
	}
	return id, inserted, nil
}

// SeedResult counts the outcome of SeedJobRoles.
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// SeedJobRoles upserts every role of the seed groups, taking each role's domain from its group.
func (db *DB) SeedJobRoles(ctx context.Context, seed []types.JobRoleSeed) (SeedResult, error) {
	var res SeedResult
	for _, group := range seed {
		for _, role := range group.Roles {
			role.Domain = group.Domain
			_, inserted, err := db.UpsertJobRole(ctx, &role)
			if err != nil {
				return res, err
			}
			if inserted {
				res.Created++
			} else {
				res.Updated++
			}
		}
	}
	return res, nil
}
