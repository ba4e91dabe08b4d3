package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esgate/internal/domain"
	"github.com/kailas-cloud/esgate/internal/domain/document"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/esgate/internal/usecase/health"
	"github.com/kailas-cloud/esgate/internal/version"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         = "bad_request"
	CodeValidationFailed   = "validation_failed"
	CodeUnauthorized       = "unauthorized"
	CodeNotFound           = "not_found"
	CodeBackendUnavailable = "backend_unavailable"
	CodeBackendError       = "backend_error"
	CodeNotAcknowledged    = "not_acknowledged"
	CodeInternalError      = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EnsureResponse is returned by PUT /collections/{collection}.
type EnsureResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

// StoreResponse is returned by POST /collections/{collection}/documents.
type StoreResponse struct {
	Stored bool `json:"stored"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

// Gateway is the set of gateway operations exposed over HTTP.
type Gateway interface {
	Search(ctx context.Context, text string, targets []string) (result.Hits, error)
	EnsureCollection(ctx context.Context, name string) (bool, error)
	StoreDocument(ctx context.Context, doc document.Document) (bool, error)
	DeleteDocument(ctx context.Context, collection, id string) error
	DeleteIndex(ctx context.Context, name string) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the gateway REST API.
type Server struct {
	gateway       Gateway
	health        HealthChecker
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxBodyBytes <= 0 disables the body limit.
func NewServer(gateway Gateway, health HealthChecker, maxBodyBytes int64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		gateway:      gateway,
		health:       health,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		validationHandler(domain.ErrInvalidCollection),
		validationHandler(domain.ErrInvalidDocument),
		validationHandler(domain.ErrInvalidQuery),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusServiceUnavailable, CodeBackendUnavailable),
		sentinelHandler(domain.ErrExistenceUnknown, http.StatusBadGateway, CodeBackendError),
		sentinelHandler(domain.ErrBackendRejected, http.StatusBadGateway, CodeBackendError),
	}
	return s
}

// Search handles GET /search?q=<text>&collections=a,b.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		text    string
		targets []string
	)
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &text); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", false, false, "collections", r.URL.Query(), &targets); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid parameter collections: "+err.Error())
		return
	}
	for i := range targets {
		targets[i] = strings.TrimSpace(targets[i])
	}

	hits, err := s.gateway.Search(r.Context(), text, targets)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, hits)
}

// EnsureCollection handles PUT /collections/{collection}.
func (s *Server) EnsureCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := pathParam(w, r, "collection")
	if !ok {
		return
	}

	acknowledged, err := s.gateway.EnsureCollection(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if !acknowledged {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, EnsureResponse{Acknowledged: acknowledged})
}

// DeleteCollection handles DELETE /collections/{collection}.
func (s *Server) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := pathParam(w, r, "collection")
	if !ok {
		return
	}

	if err := s.gateway.DeleteIndex(r.Context(), collection); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StoreDocument handles POST /collections/{collection}/documents[?id=].
func (s *Server) StoreDocument(w http.ResponseWriter, r *http.Request) {
	collection, ok := pathParam(w, r, "collection")
	if !ok {
		return
	}

	var id string
	if err := runtime.BindQueryParameter("form", true, false, "id", r.URL.Query(), &id); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid parameter id: "+err.Error())
		return
	}

	fields, err := s.decodeFields(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := document.New(collection, id, fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	stored, err := s.gateway.StoreDocument(r.Context(), doc)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if !stored {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, StoreResponse{Stored: stored})
}

// DeleteDocument handles DELETE /collections/{collection}/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	collection, ok := pathParam(w, r, "collection")
	if !ok {
		return
	}
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.gateway.DeleteDocument(r.Context(), collection, id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeFields reads a single JSON object from the body. Numbers keep
// their original text so large integers survive the round trip.
func (s *Server) decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body := r.Body
	if s.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("body must be a JSON object")
		}
		return nil, err //nolint:wrapcheck // message goes to the client as is
	}
	if fields == nil {
		return nil, errors.New("body must be a JSON object")
	}
	if dec.More() {
		return nil, errors.New("body must contain a single JSON object")
	}
	return fields, nil
}

func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("Invalid path parameter %s: %s", name, err))
		return "", false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrBackendUnavailable,
		domain.ErrExistenceUnknown,
		domain.ErrBackendRejected,
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

// validationHandler reports the full error text: it describes caller input only.
func validationHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
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
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
