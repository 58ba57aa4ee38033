package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/statustracker/internal/domain/category"
	"github.com/rpggio/statustracker/internal/domain/tracked"
)

// CategoryService defines category operations needed by the API.
type CategoryService interface {
	List(ctx context.Context) ([]category.Category, error)
	Get(ctx context.Context, id string) (*category.Category, error)
	Ensure(ctx context.Context, name string) (*category.Category, bool, error)
}

// TrackedService defines tracked item operations needed by the API.
type TrackedService interface {
	ListWithLiveState(ctx context.Context) ([]tracked.Record, error)
	Get(ctx context.Context, id string) (*tracked.Record, error)
	Create(ctx context.Context, req tracked.CreateRequest) (*tracked.Record, error)
	Delete(ctx context.Context, id string) error
}

// Config wires the HTTP surface.
type Config struct {
	Categories CategoryService
	Tracked    TrackedService
	Logger     *slog.Logger
	// MCP is mounted at /mcp when set.
	MCP http.Handler
	// Web is mounted at / when set.
	Web http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	categories CategoryService
	tracked    TrackedService
	logger     *slog.Logger
	now        func() time.Time
}

// NewServer creates an HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	srv := &Server{
		categories: cfg.Categories,
		tracked:    cfg.Tracked,
		logger:     logger,
		now:        time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", srv.handleListCategories)
		r.Post("/categories", srv.handleCreateCategory)
		r.Get("/categories/{id}", srv.handleGetCategory)

		r.Get("/issues", srv.handleListIssues)
		r.Post("/issues", srv.handleCreateIssue)
		r.Get("/issues/{id}", srv.handleGetIssue)
		r.Delete("/issues/{id}", srv.handleDeleteIssue)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}
	if cfg.Web != nil {
		r.Handle("/", cfg.Web)
	}

	return r
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := s.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

type createCategoryBody struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body createCategoryBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, &APIError{Status: http.StatusBadRequest, Code: "INVALID_BODY", Message: err.Error()})
		return
	}

	cat, created, err := s.categories.Ensure(r.Context(), body.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, cat)
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	records, err := s.tracked.ListWithLiveState(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	rec, err := s.tracked.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type createIssueBody struct {
	GitHubURL    string `json:"github_url"`
	CategoryName string `json:"category_name"`
	Type         string `json:"type,omitempty"`
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var body createIssueBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, &APIError{Status: http.StatusBadRequest, Code: "INVALID_BODY", Message: err.Error()})
		return
	}

	rec, err := s.tracked.Create(r.Context(), tracked.CreateRequest{
		SourceURL:      body.GitHubURL,
		CategoryName:   body.CategoryName,
		Classification: tracked.Classification(body.Type),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	if err := s.tracked.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "issue deleted",
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", apiErr.Code, "error", err)
	}
	writeError(w, apiErr)
}
