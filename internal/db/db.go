package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kailas-cloud/esgate/internal/domain/search/result"
)

// Backend is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Backend interface {
	Pinger
	Searcher
	IndexManager
	DocumentWriter
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks cluster connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs a query across one or more indices in a single request.
type Searcher interface {
	Search(ctx context.Context, targets []string, query json.RawMessage) (result.Hits, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	IndexExists(ctx context.Context, name string) (Existence, error)
	CreateIndex(ctx context.Context, name string) (Ack, error)
	DeleteIndex(ctx context.Context, name string) (Ack, error)
}

// DocumentWriter stores and removes single documents.
type DocumentWriter interface {
	PutDocument(ctx context.Context, target, id string, body json.RawMessage) (WriteAck, error)
	DeleteDocument(ctx context.Context, target, id string) (WriteAck, error)
}
