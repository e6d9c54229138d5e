// Package server provides the HTTP REST API for the skill-gap navigator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-gap-navigator/internal/db"
	"github.com/jonathan/skill-gap-navigator/internal/pipeline"
	"github.com/jonathan/skill-gap-navigator/internal/resources"
	"github.com/jonathan/skill-gap-navigator/internal/server/middleware"
	"github.com/jonathan/skill-gap-navigator/internal/server/ratelimit"
	"github.com/jonathan/skill-gap-navigator/internal/skills"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

// Store is the persistence the API needs. *db.DB implements it.
type Store interface {
	pipeline.Store

	Ping(ctx context.Context) error
	ListJobRoles(ctx context.Context) ([]types.JobRoleGroup, error)
	ListSkills(ctx context.Context) ([]types.CatalogSkill, error)
	ListSkillsByCategory(ctx context.Context, category string) ([]types.CatalogSkill, error)
	ListAnalysisHistory(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error)
	UpsertProgress(ctx context.Context, userID uuid.UUID, skillName, status string) (*types.SkillProgress, error)
	CreateRoadmap(ctx context.Context, userID uuid.UUID, jobRoleID int64) (*types.StoredRoadmap, error)
	GetLatestRoadmap(ctx context.Context, userID uuid.UUID) (*types.StoredRoadmap, error)
	ToggleStep(ctx context.Context, userID uuid.UUID, stepID int64) (bool, error)
	SaveResume(ctx context.Context, userID uuid.UUID, fileName, text string, skills []string) (int64, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
}

var _ Store = (*db.DB)(nil)

// Config holds server configuration. Only Port and JWT are required.
type Config struct {
	Port int
	JWT  *JWTService

	RateLimit   *ratelimit.Config
	Logger      *slog.Logger
	Engine      *pipeline.Engine
	Inferencer  *skills.Inferencer
	Recommender *resources.Recommender

	// OnShutdown runs after the HTTP server has drained, e.g. to close the database pool
	OnShutdown func()
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
	engine      *pipeline.Engine
	inferencer  *skills.Inferencer
	recommender *resources.Recommender
	onShutdown  func()
}

// New creates a new server instance
func New(cfg Config, store Store) (*Server, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.JWT == nil {
		return nil, errors.New("JWT service is required")
	}

	s := &Server{
		store:       store,
		jwtService:  cfg.JWT,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
		engine:      cfg.Engine,
		inferencer:  cfg.Inferencer,
		recommender: cfg.Recommender,
		onShutdown:  cfg.OnShutdown,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.engine == nil {
		s.engine = pipeline.NewEngine(pipeline.WithLogger(s.logger))
	}
	if s.inferencer == nil {
		s.inferencer = skills.NewInferencer(skills.DefaultRoleRules())
	}
	if s.recommender == nil {
		s.recommender = resources.Default()
	}

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	private := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Catalog
	mux.HandleFunc("GET /api/job-roles", s.handleListJobRoles)
	mux.HandleFunc("GET /api/job-roles/{id}", s.handleGetJobRole)
	mux.HandleFunc("GET /api/skills", s.handleListSkills)
	mux.HandleFunc("GET /api/skills/category/{category}", s.handleListSkillsByCategory)

	// Stateless helpers
	mux.HandleFunc("POST /api/skills/extract", s.handleExtractSkills)
	mux.HandleFunc("POST /api/roles/infer", s.handleInferRole)
	mux.HandleFunc("GET /api/resources", s.handleResources)

	// Analysis
	mux.Handle("POST /api/analysis/gap", private(s.handleGapAnalysis))
	mux.Handle("GET /api/analysis/history", private(s.handleAnalysisHistory))
	mux.Handle("POST /api/analysis/roadmap", private(s.handlePlanRoadmap))
	mux.Handle("GET /api/analysis/progress", private(s.handleListProgress))
	mux.Handle("POST /api/analysis/progress", private(s.handleUpdateProgress))

	// Stored roadmaps
	mux.Handle("POST /api/roadmap", private(s.handleCreateRoadmap))
	mux.Handle("GET /api/roadmap", private(s.handleGetRoadmap))
	mux.Handle("PUT /api/roadmap/step/{id}", private(s.handleToggleStep))

	// Resumes
	mux.Handle("POST /api/resumes", private(s.handleUploadResume))
	mux.Handle("POST /api/resumes/upload", private(s.handleUploadResumeFile))
	mux.Handle("GET /api/resumes", private(s.handleListResumes))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops background work and runs the shutdown hook. Safe to call more than once.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if s.onShutdown != nil {
		s.onShutdown()
		s.onShutdown = nil
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exhausted their bucket for the endpoint.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr maps err to a status and writes it. Internal errors are logged and not echoed.
func (s *Server) errorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID uses the IP from RemoteAddr. X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		// Round up so clients never retry early
		seconds := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.WarnContext(r.Context(), "rate limit exceeded",
		"client", s.extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
