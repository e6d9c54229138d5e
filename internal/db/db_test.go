package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

func TestGroupByDomain(t *testing.T) {
	roles := []types.JobRole{
		{ID: 1, Title: "Backend Developer", Domain: "Software"},
		{ID: 2, Title: "Data Analyst", Domain: "Data"},
		{ID: 3, Title: "Frontend Developer", Domain: "Software"},
		{ID: 4, Title: "Mystery Role"},
	}

	groups := GroupByDomain(roles)
	require.Len(t, groups, 3)

	assert.Equal(t, "Data", groups[0].Domain)
	assert.Equal(t, "Other", groups[1].Domain)
	assert.Equal(t, "Software", groups[2].Domain)

	require.Len(t, groups[2].Roles, 2)
	assert.Equal(t, "Backend Developer", groups[2].Roles[0].Title)
	assert.Equal(t, "Frontend Developer", groups[2].Roles[1].Title)
}

func TestGroupByDomain_Empty(t *testing.T) {
	groups := GroupByDomain(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestStepsForSkills(t *testing.T) {
	steps := StepsForSkills([]string{"docker", "kubernetes"})
	require.Len(t, steps, 2)

	assert.Equal(t, types.RoadmapStep{
		StepNumber:    1,
		Title:         "Learn docker",
		Description:   "Practice docker",
		DurationDays:  7,
		OrderSequence: 1,
	}, steps[0])
	assert.Equal(t, 2, steps[1].StepNumber)
	assert.Equal(t, 2, steps[1].OrderSequence)
	assert.False(t, steps[1].Completed)

	assert.Empty(t, StepsForSkills(nil))
}

func TestNonNil(t *testing.T) {
	assert.NotNil(t, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}

func TestErrors(t *testing.T) {
	err := &ErrNoAnalysis{UserID: uuid.New(), JobRoleID: 4}
	assert.Equal(t, "no analysis found for job role 4; run skill analysis first", err.Error())
	assert.Equal(t, "roadmap step not found: 9", (&ErrStepNotFound{StepID: 9}).Error())
}

func TestMigrationsEmbedded(t *testing.T) {
	files := migrationFiles
	entries, err := fs.ReadDir(files, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		data, err := fs.ReadFile(files, "migrations/"+e.Name())
		require.NoError(t, err)
		body := string(data)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), "%s must start with a goose Up annotation", e.Name())
		assert.Contains(t, body, "-- +goose Down", e.Name())
	}

	initial, err := fs.ReadFile(files, "migrations/00001_init.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "job_roles", "resumes", "skills", "skill_gap_analysis",
		"learning_roadmaps", "roadmap_steps", "user_skill_progress"} {
		assert.Contains(t, string(initial), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, string(initial), "UNIQUE (user_id, skill_name)")
}
