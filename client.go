// Package esgate is a thin gateway to an Elasticsearch cluster: wildcard
// search over the title and desc fields of one or more collections, lazy
// collection creation, and single-document writes and deletes.
package esgate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esgate/internal/config"
	"github.com/kailas-cloud/esgate/internal/db"
	"github.com/kailas-cloud/esgate/internal/db/elastic"
	"github.com/kailas-cloud/esgate/internal/db/observed"
	"github.com/kailas-cloud/esgate/internal/domain/document"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
	"github.com/kailas-cloud/esgate/internal/logger"
	"github.com/kailas-cloud/esgate/internal/usecase/gateway"
)

type (
	// Hits is the hits section of a search response.
	Hits = result.Hits
	// Hit is a single search hit.
	Hit = result.Hit
	// Document is a payload bound for one collection.
	Document = document.Document
)

// NewDocument builds a schema-less document. An empty id lets the engine assign one.
func NewDocument(collection, id string, fields map[string]any) (Document, error) {
	d, err := document.New(collection, id, fields)
	if err != nil {
		return Document{}, fmt.Errorf("esgate: %w: %w", ErrInvalidDocument, err)
	}
	return d, nil
}

// TypedDocument builds a document from any struct that encodes to a JSON object.
func TypedDocument[T any](collection, id string, v T) (Document, error) {
	d, err := document.FromTyped(collection, id, v)
	if err != nil {
		return Document{}, fmt.Errorf("esgate: %w: %w", ErrInvalidDocument, err)
	}
	return d, nil
}

// Client is the esgate entry point. It is safe for concurrent use.
type Client struct {
	backend db.Backend
	gateway *gateway.Service
	logger  *zap.Logger
}

// New creates a Client. The connection handle is built once and shared by all calls.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if err := config.ValidateAddresses(cfg.addrs); err != nil {
		return nil, fmt.Errorf("esgate: %w: %w", ErrInvalidConfig, err)
	}

	store, err := elastic.NewStore(elastic.Config{
		Addresses: cfg.addrs,
		Password:  cfg.password,
		Transport: cfg.transport,
	})
	if err != nil {
		return nil, fmt.Errorf("esgate: %w", err)
	}

	var backend db.Backend = store
	if cfg.metrics {
		backend = observed.New(store, cfg.logger)
	}

	if cfg.readiness > 0 {
		if err := backend.WaitForReady(context.Background(), cfg.readiness); err != nil {
			return nil, fmt.Errorf("esgate: cluster not ready: %w", err)
		}
	}

	return &Client{
		backend: backend,
		gateway: gateway.New(backend),
		logger:  cfg.logger,
	}, nil
}

// NewFromEnv creates a Client from ELASTIC_HOST and ELASTIC_PASSWORD.
// Explicit options are applied after the environment and win.
func NewFromEnv(opts ...Option) (*Client, error) {
	env := config.ElasticFromEnv()
	base := []Option{WithHost(env.Addresses()...), WithPassword(env.Password)}
	return New(append(base, opts...)...)
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.backend.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search matches text, trimmed and lower-cased, as a substring of the title
// or desc field across all collections in one request. With no collections
// it returns no hits.
func (c *Client) Search(ctx context.Context, text string, collections ...string) (Hits, error) {
	return c.gateway.Search(c.ctx(ctx), text, collections) //nolint:wrapcheck // already wrapped
}

// EnsureCollectionExists creates the collection when the engine reports it
// absent. It returns false only when creation was attempted and not acknowledged.
func (c *Client) EnsureCollectionExists(ctx context.Context, name string) (bool, error) {
	return c.gateway.EnsureCollection(c.ctx(ctx), name) //nolint:wrapcheck // already wrapped
}

// StoreDocument writes fields to collection under an engine-assigned id,
// creating the collection first if needed.
func (c *Client) StoreDocument(ctx context.Context, collection string, fields map[string]any) (bool, error) {
	doc, err := NewDocument(collection, "", fields)
	if err != nil {
		return false, err
	}
	return c.Store(ctx, doc)
}

// Store writes a prepared document. It returns false without writing when
// the collection could not be created, and false when the engine did not
// apply the write.
func (c *Client) Store(ctx context.Context, doc Document) (bool, error) {
	return c.gateway.StoreDocument(c.ctx(ctx), doc) //nolint:wrapcheck // already wrapped
}

// DeleteDocument removes one document by id.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	return c.gateway.DeleteDocument(c.ctx(ctx), collection, id) //nolint:wrapcheck // already wrapped
}

// DeleteIndex removes a whole collection.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	return c.gateway.DeleteIndex(c.ctx(ctx), name) //nolint:wrapcheck // already wrapped
}

// ctx attaches the client logger unless the caller already supplied one.
func (c *Client) ctx(ctx context.Context) context.Context {
	if logger.Attached(ctx) {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.logger)
}
