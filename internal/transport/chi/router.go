package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esgate/internal/metrics"
)

const metricsPath = "/metrics"

// NewRouter mounts the API routes behind the standard middleware chain:
// recoverer, request id, canonical log line, bearer auth, metrics.
func NewRouter(s *Server, apiKeys []string, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware(metricsPath))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get(metricsPath, s.Metrics)
	r.Get("/search", s.Search)

	r.Put("/collections/{collection}", s.EnsureCollection)
	r.Delete("/collections/{collection}", s.DeleteCollection)
	r.Post("/collections/{collection}/documents", s.StoreDocument)
	r.Delete("/collections/{collection}/documents/{id}", s.DeleteDocument)

	return r
}
