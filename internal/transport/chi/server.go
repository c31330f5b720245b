// Package chi exposes the HTTP API: ingestion, querying, feedback, stats,
// offline evaluation, and health.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	evaluc "github.com/kailas-cloud/ragtrial/internal/usecase/eval"
	feedbackuc "github.com/kailas-cloud/ragtrial/internal/usecase/feedback"
	healthuc "github.com/kailas-cloud/ragtrial/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/ragtrial/internal/usecase/ingest"
	queryuc "github.com/kailas-cloud/ragtrial/internal/usecase/query"
)

// maxBodyBytes bounds request bodies on every ingest path.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// EvalPaths tells the eval handler where the test set lives and where to
// write the artifact.
type EvalPaths struct {
	TestSet  string
	Artifact string
}

// Server wires the use case services into HTTP handlers.
type Server struct {
	ingest        *ingestuc.Service
	query         *queryuc.Service
	feedback      *feedbackuc.Aggregator
	eval          *evaluc.Service
	health        *healthuc.Service
	evalPaths     EvalPaths
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	query *queryuc.Service,
	feedback *feedbackuc.Aggregator,
	eval *evaluc.Service,
	health *healthuc.Service,
	evalPaths EvalPaths,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest:    ingest,
		query:     query,
		feedback:  feedback,
		eval:      eval,
		health:    health,
		evalPaths: evalPaths,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownVariant, http.StatusBadRequest, "unknown_variant"),
		sentinelHandler(domain.ErrUnknownWinner, http.StatusBadRequest, "unknown_winner"),
		sentinelHandler(domain.ErrUnknownQueryID, http.StatusNotFound, "query_not_found"),
		sentinelHandler(domain.ErrEmptyBody, http.StatusBadRequest, "empty_body"),
		sentinelHandler(domain.ErrUnreadableContent, http.StatusBadRequest, "unreadable_content"),
		sentinelHandler(domain.ErrUnsupportedContentType, http.StatusUnsupportedMediaType, "unsupported_content_type"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
	}
	return s
}

// Routes builds the API router. Middleware is attached by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/ingest", s.IngestText)
	r.Post("/ingest/raw", s.IngestRaw)
	r.Post("/query", s.Query)
	r.Post("/feedback", s.Feedback)
	r.Get("/stats", s.Stats)
	r.Post("/eval/run", s.RunEval)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	return r
}

type ingestRequest struct {
	Text    string `json:"text"`
	Lang    string `json:"lang,omitempty"`
	URL     string `json:"url,omitempty"`
	Section string `json:"section,omitempty"`
}

type ingestResponse struct {
	Chunks int `json:"chunks"`
}

// IngestText handles POST /ingest.
func (s *Server) IngestText(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Text is required")
		return
	}

	payload := domain.Payload{Lang: req.Lang, URL: req.URL, Section: req.Section}
	chunks, err := s.ingest.IngestText(r.Context(), req.Text, payload)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{Chunks: chunks})
}

// IngestRaw handles POST /ingest/raw. The body is raw content; its type
// comes from the Content-Type header and the payload from query parameters.
func (s *Server) IngestRaw(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Unreadable request body")
		return
	}

	payload := domain.Payload{
		Lang:    r.URL.Query().Get("lang"),
		URL:     r.URL.Query().Get("url"),
		Section: r.URL.Query().Get("section"),
	}

	chunks, err := s.ingest.IngestRaw(r.Context(), body, r.Header.Get("Content-Type"), payload)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{Chunks: chunks})
}

type queryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
	Lang  string `json:"lang,omitempty"`
}

type queryResponse struct {
	QueryID  string           `json:"query_id"`
	Variant  domain.Variant   `json:"variant"`
	Answer   string           `json:"answer"`
	Contexts []domain.Context `json:"contexts"`
}

// Query handles POST /query. The experiment arm comes from the X-Variant
// header and defaults to A.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query is required")
		return
	}

	header := r.Header.Get("X-Variant")
	if header == "" {
		header = string(domain.VariantA)
	}
	variant, err := domain.ParseVariant(header)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.query.Ask(r.Context(), queryuc.Request{
		Question: req.Query,
		TopK:     req.TopK,
		Lang:     req.Lang,
		Variant:  variant,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	contexts := resp.Contexts
	if contexts == nil {
		contexts = []domain.Context{}
	}
	writeJSON(w, http.StatusOK, queryResponse{
		QueryID:  resp.QueryID,
		Variant:  resp.Variant,
		Answer:   resp.Answer,
		Contexts: contexts,
	})
}

type feedbackRequest struct {
	QueryID string `json:"query_id"`
	Winner  string `json:"winner"`
}

// Feedback handles POST /feedback.
func (s *Server) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.QueryID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query id is required")
		return
	}

	if err := s.feedback.Record(req.QueryID, req.Winner); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.feedback.Stats())
}

// RunEval handles POST /eval/run: replays the configured test set through
// both arms and writes the artifact before responding with the report.
func (s *Server) RunEval(w http.ResponseWriter, r *http.Request) {
	items, err := evaluc.LoadTestSet(s.evalPaths.TestSet)
	if err != nil {
		s.logger.Error("Failed to load eval test set", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Test set unavailable")
		return
	}

	report, err := s.eval.Run(r.Context(), items)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := evaluc.WriteArtifact(s.evalPaths.Artifact, report); err != nil {
		s.logger.Error("Failed to write eval artifact", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Artifact write failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownVariant,
		domain.ErrUnknownWinner,
		domain.ErrUnknownQueryID,
		domain.ErrEmptyBody,
		domain.ErrUnreadableContent,
		domain.ErrUnsupportedContentType,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
