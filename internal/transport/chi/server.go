// Package chi is the HTTP transport: routing, request decoding, domain
// error mapping and response shaping.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/thesisdesk/titledex/internal/domain"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
	"github.com/thesisdesk/titledex/internal/ingest"
	logpkg "github.com/thesisdesk/titledex/internal/logger"
	checkuc "github.com/thesisdesk/titledex/internal/usecase/check"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
	healthuc "github.com/thesisdesk/titledex/internal/usecase/health"
)

// maxUploadBytes caps JSON and CSV corpus upload bodies.
const maxUploadBytes = 16 << 20

// CorpusManager is the transport's view of the corpus use case.
type CorpusManager interface {
	Replace(ctx context.Context, name string, titles []title.Title) (domcorpus.Corpus, error)
	Get(ctx context.Context, name string) (domcorpus.Corpus, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	LoadFromURL(ctx context.Context, name, url string) (domcorpus.Corpus, error)
	Stats(ctx context.Context, name string) (corpusuc.Stats, error)
}

// HealthChecker is the transport's view of the health use case.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	checker       checkuc.Checker
	corpora       CorpusManager
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	checker checkuc.Checker,
	corpora CorpusManager,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		checker: checker,
		corpora: corpora,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCorpusNotFound, http.StatusNotFound, codeCorpusNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeCorpusNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidTopK, http.StatusBadRequest, codeInvalidTopK),
		sentinelHandler(domain.ErrInvalidTitle, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrTitleColumnMissing, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers the API routes on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1/corpora", func(r chi.Router) {
		r.Get("/", s.ListCorpora)
		r.Route("/{corpus}", func(r chi.Router) {
			r.Put("/", s.ReplaceCorpus)
			r.Get("/", s.GetCorpus)
			r.Delete("/", s.DeleteCorpus)
			r.Get("/stats", s.GetCorpusStats)
			r.Post("/check", s.CheckTitle)
			r.Post("/load", s.LoadCorpus)
		})
	})
}

// CheckTitle handles POST /api/v1/corpora/{corpus}/check.
func (s *Server) CheckTitle(w http.ResponseWriter, r *http.Request) {
	corpusName := chi.URLParam(r, "corpus")

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.checker.Check(r.Context(), corpusName, req.Title, req.TopK)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkOutcomeToDTO(corpusName, out))
}

// ReplaceCorpus handles PUT /api/v1/corpora/{corpus}. The body is either a
// JSON title list or a raw CSV sheet (Content-Type: text/csv).
func (s *Server) ReplaceCorpus(w http.ResponseWriter, r *http.Request) {
	corpusName := chi.URLParam(r, "corpus")
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var titles []title.Title
	if isCSVUpload(r) {
		decoded, err := ingest.DecodeCSV(body)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		titles = decoded
	} else {
		var req replaceCorpusRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
		decoded, err := titlesFromDTO(req.Titles)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		titles = decoded
	}

	c, err := s.corpora.Replace(r.Context(), corpusName, titles)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, corpusToDTO(&c))
}

// GetCorpus handles GET /api/v1/corpora/{corpus}.
func (s *Server) GetCorpus(w http.ResponseWriter, r *http.Request) {
	corpusName := chi.URLParam(r, "corpus")

	c, err := s.corpora.Get(r.Context(), corpusName)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("ETag", strconv.Quote(c.Revision()))
	writeJSON(w, http.StatusOK, corpusToDTO(&c))
}

// DeleteCorpus handles DELETE /api/v1/corpora/{corpus}.
func (s *Server) DeleteCorpus(w http.ResponseWriter, r *http.Request) {
	corpusName := chi.URLParam(r, "corpus")

	if err := s.corpora.Delete(r.Context(), corpusName); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCorpora handles GET /api/v1/corpora.
func (s *Server) ListCorpora(w http.ResponseWriter, r *http.Request) {
	names, err := s.corpora.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, corpusListResponse{Items: names})
}

// LoadCorpus handles POST /api/v1/corpora/{corpus}/load.
func (s *Server) LoadCorpus(w http.ResponseWriter, r *http.Request) {
	corpusName := chi.URLParam(r, "corpus")

	var req loadCorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "url is required")
		return
	}

	c, err := s.corpora.LoadFromURL(r.Context(), corpusName, req.URL)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, corpusToDTO(&c))
}

// GetCorpusStats handles GET /api/v1/corpora/{corpus}/stats.
func (s *Server) GetCorpusStats(w http.ResponseWriter, r *http.Request) {
	corpusName := chi.URLParam(r, "corpus")

	st, err := s.corpora.Stats(r.Context(), corpusName)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsToDTO(st))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func isCSVUpload(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "text/csv" || ct == "application/csv"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCorpusNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
		domain.ErrInvalidTopK,
		domain.ErrInvalidTitle,
		domain.ErrTitleColumnMissing,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Request-scoped logger carries the request_id set by the middleware.
	logpkg.FromContext(r.Context()).Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
