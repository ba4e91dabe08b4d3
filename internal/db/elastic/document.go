package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esgate/internal/db"
)

// PutDocument indexes body into target. An empty id lets the engine assign one.
func (s *Store) PutDocument(ctx context.Context, target, id string, body json.RawMessage) (db.WriteAck, error) {
	opts := []func(*esapi.IndexRequest){s.client.Index.WithContext(ctx)}
	if id != "" {
		opts = append(opts, s.client.Index.WithDocumentID(docPath(id)))
	}

	res, err := s.client.Index(target, bytes.NewReader(body), opts...)
	if err != nil {
		return db.WriteAck{}, transportError(db.OpPutDocument, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return db.WriteAck{}, responseError(db.OpPutDocument, res)
	}

	var ack db.WriteAck
	if err := decodeBody(db.OpPutDocument, res, &ack); err != nil {
		return db.WriteAck{}, err
	}
	return ack, nil
}

// DeleteDocument removes a single document by id.
func (s *Store) DeleteDocument(ctx context.Context, target, id string) (db.WriteAck, error) {
	res, err := s.client.Delete(
		target, docPath(id),
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return db.WriteAck{}, transportError(db.OpDeleteDocument, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return db.WriteAck{}, responseError(db.OpDeleteDocument, res)
	}

	var ack db.WriteAck
	if err := decodeBody(db.OpDeleteDocument, res, &ack); err != nil {
		return db.WriteAck{}, err
	}
	return ack, nil
}

// docPath escapes an id for use as one URL path segment. The client joins
// ids into the request path verbatim, so '/', '?' and '#' would otherwise
// change the endpoint or leak into the query string.
func docPath(id string) string {
	return url.PathEscape(id)
}
