package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-gap-navigator/internal/skills"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

type fakeStore struct {
	mu       sync.Mutex
	roles    map[int64]*types.JobRole
	resumes  map[uuid.UUID][]string
	progress map[uuid.UUID][]types.SkillProgress
	saved    []*types.AnalysisRecord

	roleErr     error
	resumeErr   error
	saveErr     error
	progressErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		roles:    make(map[int64]*types.JobRole),
		resumes:  make(map[uuid.UUID][]string),
		progress: make(map[uuid.UUID][]types.SkillProgress),
	}
}

func (f *fakeStore) GetJobRole(_ context.Context, id int64) (*types.JobRole, error) {
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	return f.roles[id], nil
}

func (f *fakeStore) LatestExtractedSkills(_ context.Context, userID uuid.UUID) ([]string, bool, error) {
	if f.resumeErr != nil {
		return nil, false, f.resumeErr
	}
	s, ok := f.resumes[userID]
	return s, ok, nil
}

func (f *fakeStore) SaveAnalysis(_ context.Context, rec *types.AnalysisRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeStore) ListProgress(_ context.Context, userID uuid.UUID) ([]types.SkillProgress, error) {
	if f.progressErr != nil {
		return nil, f.progressErr
	}
	return f.progress[userID], nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestRunGapAnalysis_CataloguedRole(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	store.roles[7] = &types.JobRole{ID: 7, Title: "Full Stack Developer", RequiredSkills: []string{"Python", "React", "Node.js"}}
	store.resumes[user] = []string{"python", "react", "figma"}

	resp, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(7)})
	require.NoError(t, err)

	require.NotNil(t, resp.JobRole.ID)
	assert.Equal(t, int64(7), *resp.JobRole.ID)
	assert.Equal(t, "Full Stack Developer", resp.JobRole.Title)
	assert.False(t, resp.JobRole.Custom)
	assert.Equal(t, []string{"python", "react"}, resp.Analysis.Matched)
	assert.Equal(t, []string{"node.js"}, resp.Analysis.Missing)
	assert.Equal(t, []string{"figma"}, resp.Analysis.Extra)
	assert.Equal(t, 67, resp.Analysis.MatchPercentage)

	require.Len(t, store.saved, 1)
	assert.Equal(t, user, store.saved[0].UserID)
	assert.Equal(t, int64(7), store.saved[0].JobRoleID)
	assert.Equal(t, 67, store.saved[0].MatchPercentage)
}

func TestRunGapAnalysis_CustomRole(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	store.resumes[user] = []string{"Linux", "Networking"}

	resp, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{CustomRole: "Cyber Security Analyst"})
	require.NoError(t, err)

	assert.Nil(t, resp.JobRole.ID)
	assert.True(t, resp.JobRole.Custom)
	assert.Equal(t, "Cyber Security Analyst", resp.JobRole.Title)
	assert.Equal(t, []string{"networking", "linux"}, resp.Analysis.Matched)
	assert.Contains(t, resp.Analysis.Missing, "penetration testing")
	assert.Equal(t, 8, resp.Analysis.TotalRequired)
	assert.Empty(t, store.saved, "custom role analyses are not persisted")
}

func TestRunGapAnalysis_UnknownRoleFallsBackToCustom(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	store.resumes[user] = []string{}

	resp, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(99), CustomRole: "Generic Software Dev"})
	require.NoError(t, err)
	assert.True(t, resp.JobRole.Custom)
	assert.Equal(t, []string{"programming fundamentals", "data structures", "problem solving"}, resp.Analysis.Missing)
	assert.Equal(t, 0, resp.Analysis.MatchPercentage)
}

func TestRunGapAnalysis_Errors(t *testing.T) {
	user := uuid.New()

	t.Run("role not found", func(t *testing.T) {
		store := newFakeStore()
		store.resumes[user] = []string{"go"}
		_, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(3)})
		var target *ErrJobRoleNotFound
		require.ErrorAs(t, err, &target)
		assert.Equal(t, int64(3), *target.JobRoleID)
	})

	t.Run("role checked before resume", func(t *testing.T) {
		store := newFakeStore()
		_, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(3)})
		var target *ErrJobRoleNotFound
		assert.ErrorAs(t, err, &target)
	})

	t.Run("no resume", func(t *testing.T) {
		store := newFakeStore()
		_, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{CustomRole: "Game Developer"})
		var target *ErrNoResume
		require.ErrorAs(t, err, &target)
		assert.Equal(t, user, target.UserID)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newFakeStore()
		store.roleErr = errors.New("connection refused")
		_, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(1)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("resume store failure", func(t *testing.T) {
		store := newFakeStore()
		store.resumeErr = errors.New("timeout")
		_, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{CustomRole: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get extracted skills")
	})
}

func TestRunGapAnalysis_SaveFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	store.roles[1] = &types.JobRole{ID: 1, Title: "Data Analyst", RequiredSkills: []string{"sql"}}
	store.resumes[user] = []string{"SQL"}
	store.saveErr = errors.New("disk full")

	resp, err := RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Analysis.MatchPercentage)
}

func TestEngine_ProgressAndAliases(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	store.roles[2] = &types.JobRole{ID: 2, Title: "Platform Engineer", RequiredSkills: []string{"Kubernetes", "Go"}}
	store.resumes[user] = []string{"k8s", "golang"}

	var steps []string
	engine := NewEngine(
		WithAnalyzer(skills.NewAnalyzer(skills.WithAliases(true))),
		WithProgress(func(ev ProgressEvent) { steps = append(steps, ev.Step) }),
	)

	resp, err := engine.RunGapAnalysis(context.Background(), store, user, types.GapRequest{JobRoleID: int64Ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Analysis.MatchPercentage)
	assert.Equal(t, []string{StepResolveRole, StepLoadResume, StepAnalyze, StepSaveAnalysis}, steps)
}

func TestPlanRoadmap(t *testing.T) {
	store := newFakeStore()
	user := uuid.New()
	store.progress[user] = []types.SkillProgress{
		{SkillName: "React", Status: types.ProgressCompleted},
		{SkillName: "docker", Status: types.ProgressTodo},
	}
	req := types.RoadmapRequest{MissingSkills: []string{"docker", "react", "leadership"}, DurationWeeks: 3}

	all, err := PlanRoadmap(context.Background(), store, user, req, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := PlanRoadmap(context.Background(), store, user, req, true)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, []string{"Leadership"}, filtered[0].Skills)
	assert.Equal(t, []string{"Docker"}, filtered[1].Skills)
}

func TestPlanRoadmap_Errors(t *testing.T) {
	store := newFakeStore()
	store.progressErr = errors.New("boom")
	req := types.RoadmapRequest{MissingSkills: []string{"go"}}

	_, err := PlanRoadmap(context.Background(), store, uuid.New(), req, true)
	assert.Error(t, err)

	// Progress is not read without excludeCompleted.
	plan, err := PlanRoadmap(context.Background(), store, uuid.New(), req, false)
	require.NoError(t, err)
	assert.Len(t, plan, 1)
}

func TestPlanRoadmap_EmptySkills(t *testing.T) {
	plan, err := PlanRoadmap(context.Background(), newFakeStore(), uuid.New(), types.RoadmapRequest{MissingSkills: []string{}}, true)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "job role not found", (&ErrJobRoleNotFound{}).Error())
	assert.Equal(t, "job role not found: 5", (&ErrJobRoleNotFound{JobRoleID: int64Ptr(5)}).Error())
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, "no resume found for user: 00000000-0000-0000-0000-000000000001", (&ErrNoResume{UserID: id}).Error())
}
