package server

import (
	"net/http"

	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// handleCreateRoadmap stores a roadmap built from the caller's latest analysis for a role.
func (s *Server) handleCreateRoadmap(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	var req types.CreateRoadmapRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	stored, err := s.store.CreateRoadmap(r.Context(), uid, req.JobRoleID)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleGetRoadmap returns the latest stored roadmap, or {"roadmap": null} when there is none.
func (s *Server) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	stored, err := s.store.GetLatestRoadmap(r.Context(), uid)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"roadmap": stored})
}

func (s *Server) handleToggleStep(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	stepID, err := pathID(r, "id")
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	completed, err := s.store.ToggleStep(r.Context(), uid, stepID)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"id": stepID, "completed": completed})
}
