package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/skill-gap-navigator/internal/parsing"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// handleHealth reports server health and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}

// handleListJobRoles returns every catalogued role grouped by domain.
func (s *Server) handleListJobRoles(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListJobRoles(r.Context())
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if groups == nil {
		groups = []types.JobRoleGroup{}
	}
	s.jsonResponse(w, http.StatusOK, groups)
}

func (s *Server) handleGetJobRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	role, err := s.store.GetJobRole(r.Context(), id)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if role == nil {
		s.errorFromErr(w, r, &ErrNotFound{Resource: "job role", ID: strconv.FormatInt(id, 10)})
		return
	}
	s.jsonResponse(w, http.StatusOK, role)
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListSkills(r.Context())
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.writeSkills(w, list)
}

func (s *Server) handleListSkillsByCategory(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.PathValue("category"))
	if category == "" {
		s.errorFromErr(w, r, &ErrValidation{Field: "category", Message: "is required"})
		return
	}

	list, err := s.store.ListSkillsByCategory(r.Context(), category)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.writeSkills(w, list)
}

func (s *Server) writeSkills(w http.ResponseWriter, list []types.CatalogSkill) {
	if list == nil {
		list = []types.CatalogSkill{}
	}
	s.jsonResponse(w, http.StatusOK, list)
}

// handleExtractSkills runs dictionary extraction over plain resume text.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"skills": parsing.ExtractSkills(req.Text),
	})
}

// handleInferRole infers required skills for a free-text role title.
func (s *Server) handleInferRole(w http.ResponseWriter, r *http.Request) {
	var req types.InferRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	rule := s.inferencer.MatchedRule(req.Title)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"title":    strings.TrimSpace(req.Title),
		"skills":   s.inferencer.Infer(req.Title),
		"rule":     rule,
		"fallback": rule == "",
	})
}

// handleResources recommends learning links for ?skill=.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	skill := strings.TrimSpace(r.URL.Query().Get("skill"))
	if skill == "" {
		s.errorFromErr(w, r, &ErrValidation{Field: "skill", Message: "query parameter is required"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"skill":     skill,
		"resources": s.recommender.Recommend(skill),
	})
}
