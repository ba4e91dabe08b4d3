package gateway

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/esgate/internal/db"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
)

// Backend is the subset of the search engine the gateway talks to.
type Backend interface {
	Search(ctx context.Context, targets []string, query json.RawMessage) (result.Hits, error)
	IndexExists(ctx context.Context, name string) (db.Existence, error)
	CreateIndex(ctx context.Context, name string) (db.Ack, error)
	DeleteIndex(ctx context.Context, name string) (db.Ack, error)
	PutDocument(ctx context.Context, target, id string, body json.RawMessage) (db.WriteAck, error)
	DeleteDocument(ctx context.Context, target, id string) (db.WriteAck, error)
}
