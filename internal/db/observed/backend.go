// Package observed decorates a db.Backend with Prometheus metrics and debug logging.
package observed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esgate/internal/db"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
	"github.com/kailas-cloud/esgate/internal/metrics"
)

var _ db.Backend = (*Backend)(nil)

// Backend wraps another db.Backend. Results and errors pass through unchanged.
type Backend struct {
	inner  db.Backend
	logger *zap.Logger
}

// New wraps inner. A nil logger disables logging.
func New(inner db.Backend, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.RegisterBackendMetrics()
	return &Backend{inner: inner, logger: logger}
}

// Ping is not recorded; health checks would swamp the op series.
func (b *Backend) Ping(ctx context.Context) error {
	return b.inner.Ping(ctx) //nolint:wrapcheck // transparent decorator
}

func (b *Backend) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return b.inner.WaitForReady(ctx, timeout) //nolint:wrapcheck // transparent decorator
}

func (b *Backend) Search(ctx context.Context, targets []string, query json.RawMessage) (result.Hits, error) {
	start := time.Now()
	hits, err := b.inner.Search(ctx, targets, query)
	b.observe(db.OpSearch, start, err,
		zap.Strings("targets", targets),
		zap.Int("hits", hits.Len()),
	)
	return hits, err //nolint:wrapcheck // transparent decorator
}

func (b *Backend) IndexExists(ctx context.Context, name string) (db.Existence, error) {
	start := time.Now()
	ex, err := b.inner.IndexExists(ctx, name)
	b.observe(db.OpIndexExists, start, err,
		zap.String("index", name),
		zap.Stringer("existence", ex),
	)
	return ex, err //nolint:wrapcheck // transparent decorator
}

func (b *Backend) CreateIndex(ctx context.Context, name string) (db.Ack, error) {
	start := time.Now()
	ack, err := b.inner.CreateIndex(ctx, name)
	b.observe(db.OpCreateIndex, start, err,
		zap.String("index", name),
		zap.Bool("acknowledged", ack.Acknowledged),
	)
	return ack, err //nolint:wrapcheck // transparent decorator
}

func (b *Backend) DeleteIndex(ctx context.Context, name string) (db.Ack, error) {
	start := time.Now()
	ack, err := b.inner.DeleteIndex(ctx, name)
	b.observe(db.OpDeleteIndex, start, err,
		zap.String("index", name),
		zap.Bool("acknowledged", ack.Acknowledged),
	)
	return ack, err //nolint:wrapcheck // transparent decorator
}

func (b *Backend) PutDocument(
	ctx context.Context, target, id string, body json.RawMessage,
) (db.WriteAck, error) {
	start := time.Now()
	ack, err := b.inner.PutDocument(ctx, target, id, body)
	b.observe(db.OpPutDocument, start, err,
		zap.String("index", target),
		zap.String("id", ack.ID),
		zap.String("result", ack.Result),
	)
	return ack, err //nolint:wrapcheck // transparent decorator
}

func (b *Backend) DeleteDocument(ctx context.Context, target, id string) (db.WriteAck, error) {
	start := time.Now()
	ack, err := b.inner.DeleteDocument(ctx, target, id)
	b.observe(db.OpDeleteDocument, start, err,
		zap.String("index", target),
		zap.String("id", id),
		zap.String("result", ack.Result),
	)
	return ack, err //nolint:wrapcheck // transparent decorator
}

func (b *Backend) observe(op string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	outcome := Outcome(err)

	metrics.BackendRequestDuration.WithLabelValues(op).Observe(duration.Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(op, outcome).Inc()

	fields = append(fields,
		zap.String("op", op),
		zap.String("outcome", outcome),
		zap.Duration("duration", duration),
	)
	if err != nil && outcome != metrics.OutcomeNotFound {
		b.logger.Warn("Backend call failed", append(fields, zap.Error(err))...)
		return
	}
	b.logger.Debug("Backend call completed", fields...)
}

// Outcome classifies a backend error into a metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, db.ErrIndexNotFound), errors.Is(err, db.ErrDocumentNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, db.ErrConnectivity):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
