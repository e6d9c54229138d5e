package server

import (
	"net/http"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// handleGapAnalysis compares the caller's latest resume against a catalogued or custom role.
func (s *Server) handleGapAnalysis(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	var req types.GapRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	resp, err := s.engine.RunGapAnalysis(r.Context(), s.store, uid, req)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAnalysisHistory(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	history, err := s.store.ListAnalysisHistory(r.Context(), uid)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if history == nil {
		history = []types.AnalysisRecord{}
	}
	s.jsonResponse(w, http.StatusOK, history)
}

// handlePlanRoadmap generates a weekly plan. ?exclude_completed=true drops skills marked completed.
func (s *Server) handlePlanRoadmap(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	excludeCompleted, err := queryBool(r, "exclude_completed")
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	var req types.RoadmapRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	plan, err := s.engine.PlanRoadmap(r.Context(), s.store, uid, req, excludeCompleted)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.RoadmapResponse{Roadmap: plan})
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	progress, err := s.store.ListProgress(r.Context(), uid)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if progress == nil {
		progress = []types.SkillProgress{}
	}
	s.jsonResponse(w, http.StatusOK, progress)
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	var req types.ProgressRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	progress, err := s.store.UpsertProgress(r.Context(), uid, req.SkillName, req.Status)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, progress)
}
