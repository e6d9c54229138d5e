// Package pipeline runs skill gap analyses and roadmap planning against a Store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-gap-navigator/internal/parsing"
	"github.com/jonathan/skill-gap-navigator/internal/roadmap"
	"github.com/jonathan/skill-gap-navigator/internal/skills"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// Progress steps reported through ProgressCallback.
const (
	StepResolveRole  = "resolve_role"
	StepLoadResume   = "load_resume"
	StepAnalyze      = "analyze"
	StepSaveAnalysis = "save_analysis"
	StepPlanRoadmap  = "plan_roadmap"
)

// ProgressEvent represents a progress update during a pipeline run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Engine bundles the analysis components. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	analyzer   *skills.Analyzer
	inferencer *skills.Inferencer
	generator  *roadmap.Generator
	logger     *slog.Logger
	onProgress ProgressCallback
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnalyzer replaces the default exact-match analyzer.
func WithAnalyzer(a *skills.Analyzer) Option {
	return func(e *Engine) { e.analyzer = a }
}

// WithInferencer replaces the default role rules.
func WithInferencer(i *skills.Inferencer) Option {
	return func(e *Engine) { e.inferencer = i }
}

// WithGenerator replaces the default roadmap generator.
func WithGenerator(g *roadmap.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(e *Engine) { e.onProgress = cb }
}

// NewEngine creates an Engine with the built-in components unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		analyzer:   skills.NewAnalyzer(),
		inferencer: skills.NewInferencer(skills.DefaultRoleRules()),
		generator:  roadmap.NewGenerator(nil, nil),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// emitProgress calls the progress callback if configured
func (e *Engine) emitProgress(step, message string, content any) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// RunGapAnalysis runs a gap analysis with a default Engine.
func RunGapAnalysis(ctx context.Context, store Store, userID uuid.UUID, req types.GapRequest) (*types.GapResponse, error) {
	return NewEngine().RunGapAnalysis(ctx, store, userID, req)
}

// RunGapAnalysis resolves the role's required skills and the user's latest extracted skills
// concurrently, then compares them. A catalogued role wins over a custom title when both are given.
// Analyses against catalogued roles are saved; a failed save is logged and does not fail the call.
func (e *Engine) RunGapAnalysis(ctx context.Context, store Store, userID uuid.UUID, req types.GapRequest) (*types.GapResponse, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu          sync.Mutex
		role        *types.JobRole
		resume      []string
		resumeFound bool
	)

	if req.JobRoleID != nil {
		g.Go(func() error {
			r, err := store.GetJobRole(gCtx, *req.JobRoleID)
			if err != nil {
				return fmt.Errorf("failed to get job role: %w", err)
			}
			mu.Lock()
			role = r
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		s, found, err := store.LatestExtractedSkills(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get extracted skills: %w", err)
		}
		mu.Lock()
		resume, resumeFound = s, found
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ref, required, err := e.resolveRequired(role, req)
	if err != nil {
		return nil, err
	}
	e.emitProgress(StepResolveRole, fmt.Sprintf("Resolved %q with %d required skills", ref.Title, len(required)), ref)

	if !resumeFound {
		return nil, &ErrNoResume{UserID: userID}
	}
	e.emitProgress(StepLoadResume, fmt.Sprintf("Loaded %d extracted skills", len(resume)), nil)

	result := e.analyzer.Analyze(resume, required)
	e.emitProgress(StepAnalyze, fmt.Sprintf("Matched %d of %d (%d%%)", result.SkillsMatched, result.TotalRequired, result.MatchPercentage), result)

	if role != nil {
		rec := &types.AnalysisRecord{
			UserID:          userID,
			JobRoleID:       role.ID,
			JobRoleTitle:    role.Title,
			MatchedSkills:   result.Matched,
			MissingSkills:   result.Missing,
			MatchPercentage: result.MatchPercentage,
		}
		if err := store.SaveAnalysis(ctx, rec); err != nil {
			e.logger.WarnContext(ctx, "failed to save analysis",
				slog.String("user_id", userID.String()),
				slog.Int64("job_role_id", role.ID),
				slog.Any("error", err))
		} else {
			e.emitProgress(StepSaveAnalysis, "Saved analysis", rec.ID)
		}
	}

	return &types.GapResponse{JobRole: ref, Analysis: result}, nil
}

func (e *Engine) resolveRequired(role *types.JobRole, req types.GapRequest) (types.JobRoleRef, []string, error) {
	if role != nil {
		id := role.ID
		return types.JobRoleRef{ID: &id, Title: role.Title}, role.RequiredSkills, nil
	}
	custom := strings.TrimSpace(req.CustomRole)
	if custom == "" {
		return types.JobRoleRef{}, nil, &ErrJobRoleNotFound{JobRoleID: req.JobRoleID}
	}
	return types.JobRoleRef{Title: custom, Custom: true}, e.inferencer.Infer(custom), nil
}

// PlanRoadmap plans a roadmap with a default Engine.
func PlanRoadmap(ctx context.Context, store Store, userID uuid.UUID, req types.RoadmapRequest, excludeCompleted bool) (types.Roadmap, error) {
	return NewEngine().PlanRoadmap(ctx, store, userID, req, excludeCompleted)
}

// PlanRoadmap generates a roadmap for the requested skills. With excludeCompleted, skills the user
// has marked completed are left out first. The store is only consulted when excludeCompleted is set.
func (e *Engine) PlanRoadmap(ctx context.Context, store Store, userID uuid.UUID, req types.RoadmapRequest, excludeCompleted bool) (types.Roadmap, error) {
	missing := req.MissingSkills
	if excludeCompleted {
		progress, err := store.ListProgress(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list progress: %w", err)
		}
		missing = withoutCompleted(missing, progress)
	}

	plan := e.generator.Generate(missing, req.DurationWeeks)
	e.emitProgress(StepPlanRoadmap, fmt.Sprintf("Planned %d weeks for %d skills", len(plan), len(missing)), nil)
	return plan, nil
}

func withoutCompleted(missing []string, progress []types.SkillProgress) []string {
	done := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.Status == types.ProgressCompleted {
			done[parsing.Normalize(p.SkillName)] = true
		}
	}
	out := make([]string, 0, len(missing))
	for _, s := range missing {
		if !done[parsing.Normalize(s)] {
			out = append(out, s)
		}
	}
	return out
}
