// Package chi is the admin HTTP surface: health, metrics, run triggering
// and stored-result reads. Sentiment scores cross from the internal [-1, 1]
// scale to the 1-100 presentation scale here and nowhere else.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
	"github.com/brandlens/brandlens/internal/domain/run"
	"github.com/brandlens/brandlens/internal/repository/results"
	scoringuc "github.com/brandlens/brandlens/internal/usecase/scoring"
)

// errorCode is the machine-readable error taxonomy of the API.
type errorCode string

const (
	codeBadRequest    errorCode = "bad_request"
	codeNotFound      errorCode = "not_found"
	codeInternalError errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// BatchRunner triggers a scoring run over pending records.
type BatchRunner interface {
	ProcessBatch(ctx context.Context, req scoringuc.BatchRequest) (run.Report, error)
}

// ResultReader loads stored results for one record.
type ResultReader interface {
	Get(ctx context.Context, recordID string) (results.RecordResults, error)
}

// Pinger reports backend liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server carries the HTTP handlers and their dependencies.
type Server struct {
	runner BatchRunner
	reader ResultReader
	store  Pinger
	logger *zap.Logger
}

// NewServer creates the admin API server.
func NewServer(runner BatchRunner, reader ResultReader, store Pinger, logger *zap.Logger) *Server {
	return &Server{runner: runner, reader: reader, store: store, logger: logger}
}

// Routes mounts the handlers on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/v1/runs", s.TriggerRun)
	r.Get("/v1/records/{id}/metrics", s.GetRecordMetrics)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"store": "ok"}
	status := "healthy"
	httpStatus := http.StatusOK
	if err := s.store.Ping(r.Context()); err != nil {
		checks["store"] = "unreachable"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// TriggerRun handles POST /v1/runs. The body is optional; an empty body
// means a default run over pending records.
func (s *Server) TriggerRun(w http.ResponseWriter, r *http.Request) {
	var req scoringuc.BatchRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	report, err := s.runner.ProcessBatch(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// recordMetricsResponse is the read-side rendering of stored results.
// Sentiment carries both the canonical score and the 1-100 scale.
type recordMetricsResponse struct {
	RecordID   string                    `json:"record_id"`
	Metrics    []domain.MetricResult     `json:"metrics"`
	Sentiments []sentimentView           `json:"sentiments"`
	Citations  []domain.CitationCategory `json:"citations"`
}

type sentimentView struct {
	Entity            string                `json:"entity"`
	Label             domain.SentimentLabel `json:"label"`
	Score             float64               `json:"score"`
	Score100          int                   `json:"score_100"`
	PositiveEvidence  []string              `json:"positive_evidence,omitempty"`
	NegativeEvidence  []string              `json:"negative_evidence,omitempty"`
	ProviderExhausted bool                  `json:"provider_exhausted,omitempty"`
}

// GetRecordMetrics handles GET /v1/records/{id}/metrics.
func (s *Server) GetRecordMetrics(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "record id is required")
		return
	}

	stored, err := s.reader.Get(r.Context(), recordID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := recordMetricsResponse{
		RecordID:  recordID,
		Metrics:   stored.Metrics,
		Citations: stored.Citations,
	}
	for _, sr := range stored.Sentiments {
		resp.Sentiments = append(resp.Sentiments, sentimentView{
			Entity:            sr.Entity,
			Label:             sr.Label,
			Score:             sr.Score,
			Score100:          domain.Score100(sr.Score),
			PositiveEvidence:  sr.PositiveEvidence,
			NegativeEvidence:  sr.NegativeEvidence,
			ProviderExhausted: sr.ProviderExhausted,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrNotFound.Error())
		return
	}
	if errors.Is(err, domain.ErrValidation) {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
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
