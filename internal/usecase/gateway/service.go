// Package gateway implements the search gateway: wildcard search across
// collections, lazy collection creation, and document writes and deletes.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esgate/internal/db"
	"github.com/kailas-cloud/esgate/internal/domain"
	"github.com/kailas-cloud/esgate/internal/domain/collection"
	"github.com/kailas-cloud/esgate/internal/domain/document"
	"github.com/kailas-cloud/esgate/internal/domain/search/query"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
	"github.com/kailas-cloud/esgate/internal/logger"
	"github.com/kailas-cloud/esgate/internal/metrics"
)

// Service proxies gateway operations to the backend. It holds no mutable state.
type Service struct {
	backend Backend
}

// New creates a gateway service.
func New(backend Backend) *Service {
	return &Service{backend: backend}
}

// Search matches the normalized text as a substring of title or desc across
// all targets in a single backend request. No targets means no hits.
func (s *Service) Search(ctx context.Context, text string, targets []string) (result.Hits, error) {
	req, err := query.New(text, targets)
	if err != nil {
		return result.Hits{}, fmt.Errorf("search: %w: %w", domain.ErrInvalidQuery, err)
	}
	if !req.HasTargets() {
		return result.Empty(), nil
	}

	hits, err := s.backend.Search(ctx, req.Targets(), req.Body())
	if err != nil {
		return result.Hits{}, fmt.Errorf("search %s: %w", strings.Join(req.Targets(), ","), translate(err))
	}
	return hits, nil
}

// EnsureCollection creates the collection if the engine reports it absent.
// It returns true when the collection is present or was created and
// acknowledged, and false when creation was not acknowledged.
// An existence check without a definite answer is an error.
func (s *Service) EnsureCollection(ctx context.Context, name string) (bool, error) {
	col, err := collection.New(name)
	if err != nil {
		return false, fmt.Errorf("ensure collection: %w: %w", domain.ErrInvalidCollection, err)
	}

	existence, err := s.backend.IndexExists(ctx, col.Name())
	if err != nil {
		return false, fmt.Errorf("check collection %q: %w: %w", col.Name(), domain.ErrExistenceUnknown, translate(err))
	}
	if existence == db.Present {
		return true, nil
	}

	log := logger.FromContext(ctx).With(zap.String("collection", col.Name()))

	ack, err := s.backend.CreateIndex(ctx, col.Name())
	if errors.Is(err, db.ErrIndexExists) {
		// Lost a creation race; someone else made it.
		log.Debug("Collection created concurrently")
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("create collection %q: %w", col.Name(), translate(err))
	}

	metrics.CollectionsCreatedTotal.WithLabelValues(strconv.FormatBool(ack.Acknowledged)).Inc()
	if !ack.Acknowledged {
		log.Warn("Collection creation not acknowledged")
		return false, nil
	}
	log.Info("Collection created")
	return true, nil
}

// StoreDocument ensures the collection exists, then writes the document.
// When the collection cannot be ensured no write is issued. The write
// acknowledgment is inspected: false means the engine did not apply it.
func (s *Service) StoreDocument(ctx context.Context, doc document.Document) (bool, error) {
	ok, err := s.EnsureCollection(ctx, doc.Collection())
	if err != nil {
		return false, fmt.Errorf("store document: %w", err)
	}
	if !ok {
		return false, nil
	}

	body, err := doc.Body()
	if err != nil {
		return false, fmt.Errorf("store document: %w: %w", domain.ErrInvalidDocument, err)
	}

	ack, err := s.backend.PutDocument(ctx, doc.Collection(), doc.ID(), body)
	if err != nil {
		return false, fmt.Errorf("store document in %q: %w", doc.Collection(), translate(err))
	}
	if !ack.Applied() {
		logger.FromContext(ctx).Warn("Document write not applied",
			zap.String("collection", doc.Collection()),
			zap.String("id", ack.ID),
			zap.String("result", ack.Result),
			zap.Int("shards_successful", ack.Shards.Successful),
			zap.Int("shards_failed", ack.Shards.Failed),
		)
		return false, nil
	}
	return true, nil
}

// DeleteDocument removes a document by id. There is no existence check;
// a missing document surfaces as domain.ErrNotFound.
func (s *Service) DeleteDocument(ctx context.Context, name, id string) error {
	if err := collection.ValidateName(name); err != nil {
		return fmt.Errorf("delete document: %w: %w", domain.ErrInvalidCollection, err)
	}
	if id == "" {
		return fmt.Errorf("delete document: %w: id is required", domain.ErrInvalidDocument)
	}

	if _, err := s.backend.DeleteDocument(ctx, name, id); err != nil {
		return fmt.Errorf("delete document %q from %q: %w", id, name, translate(err))
	}
	return nil
}

// DeleteIndex removes a collection and every document in it.
func (s *Service) DeleteIndex(ctx context.Context, name string) error {
	// Validation also keeps "_all" and wildcard patterns away from the engine.
	if err := collection.ValidateName(name); err != nil {
		return fmt.Errorf("delete collection: %w: %w", domain.ErrInvalidCollection, err)
	}

	if _, err := s.backend.DeleteIndex(ctx, name); err != nil {
		return fmt.Errorf("delete collection %q: %w", name, translate(err))
	}
	logger.FromContext(ctx).Info("Collection deleted", zap.String("collection", name))
	return nil
}

// translate tags backend errors with the matching domain sentinel.
// The original chain stays reachable through errors.Is / errors.As.
func translate(err error) error {
	switch {
	case errors.Is(err, db.ErrConnectivity):
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	case errors.Is(err, db.ErrIndexNotFound), errors.Is(err, db.ErrDocumentNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, db.ErrUnexpectedStatus), errors.Is(err, db.ErrIndexExists):
		return fmt.Errorf("%w: %w", domain.ErrBackendRejected, err)
	default:
		return err
	}
}
