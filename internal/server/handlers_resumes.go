package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/skill-gap-navigator/internal/db"
	"github.com/jonathan/skill-gap-navigator/internal/intake"
	"github.com/jonathan/skill-gap-navigator/internal/parsing"
)

// UploadResumeRequest is a resume already converted to plain text.
type UploadResumeRequest struct {
	FileName string `json:"fileName"`
	Text     string `json:"text"`
}

// Validate checks both fields are present.
func (r *UploadResumeRequest) Validate() error {
	if strings.TrimSpace(r.FileName) == "" {
		return &ErrValidation{Field: "fileName", Message: "is required"}
	}
	if len(r.FileName) > 255 {
		return &ErrValidation{Field: "fileName", Message: "must be at most 255 characters"}
	}
	if strings.TrimSpace(r.Text) == "" {
		return &ErrValidation{Field: "text", Message: "is required"}
	}
	return nil
}

// UploadResumeResponse reports the stored resume and what was extracted from it.
type UploadResumeResponse struct {
	ID              int64    `json:"id"`
	ExtractedSkills []string `json:"extractedSkills"`
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	var req UploadResumeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	s.storeResume(w, r, uid, strings.TrimSpace(req.FileName), req.Text)
}

// resumeField is the multipart form field carrying the uploaded document.
const resumeField = "resume"

func (s *Server) handleUploadResumeFile(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, intake.MaxUploadBytes+maxBodyBytes)
	file, header, err := r.FormFile(resumeField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorFromErr(w, r, err)
			return
		}
		s.errorFromErr(w, r, &ErrValidation{Field: resumeField, Message: "a file upload is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, intake.MaxUploadBytes+1))
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if len(data) > intake.MaxUploadBytes {
		s.errorFromErr(w, r, &ErrValidation{Field: resumeField, Message: "file exceeds 5 MiB"})
		return
	}

	name := filepath.Base(header.Filename)
	if name == "." || name == string(filepath.Separator) {
		s.errorFromErr(w, r, &ErrValidation{Field: resumeField, Message: "file name is required"})
		return
	}
	if len(name) > 255 {
		s.errorFromErr(w, r, &ErrValidation{Field: resumeField, Message: "file name must be at most 255 characters"})
		return
	}
	text, err := intake.Text(r.Context(), data, header.Header.Get("Content-Type"), name)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	s.storeResume(w, r, uid, name, text)
}

func (s *Server) storeResume(w http.ResponseWriter, r *http.Request, uid uuid.UUID, fileName, text string) {
	extracted := parsing.ExtractSkills(text)
	id, err := s.store.SaveResume(r.Context(), uid, fileName, text, extracted)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "resume stored", "resume_id", id, "file", fileName, "skills", len(extracted))
	s.jsonResponse(w, http.StatusCreated, UploadResumeResponse{ID: id, ExtractedSkills: extracted})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}

	list, err := s.store.ListResumes(r.Context(), uid)
	if err != nil {
		s.errorFromErr(w, r, err)
		return
	}
	if list == nil {
		list = []db.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, list)
}
