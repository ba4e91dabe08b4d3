package elastic

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/esgate/internal/db"
)

// IndexExists maps 200 to Present and 404 to Absent.
// Any other status is returned as an error wrapping db.ErrUnexpectedStatus.
func (s *Store) IndexExists(ctx context.Context, name string) (db.Existence, error) {
	res, err := s.client.Indices.Exists(
		[]string{name},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return db.Absent, transportError(db.OpIndexExists, err)
	}
	defer closeBody(res)

	switch res.StatusCode {
	case http.StatusOK:
		return db.Present, nil
	case http.StatusNotFound:
		return db.Absent, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return db.Absent, responseError(db.OpIndexExists, res)
	default:
		return db.Absent, &db.Error{
			Op:     db.OpIndexExists,
			Status: res.StatusCode,
			Err:    fmt.Errorf("%w: %s", db.ErrUnexpectedStatus, res.Status()),
		}
	}
}

// CreateIndex creates an index with engine defaults and returns its acknowledgment.
func (s *Store) CreateIndex(ctx context.Context, name string) (db.Ack, error) {
	res, err := s.client.Indices.Create(
		name,
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return db.Ack{}, transportError(db.OpCreateIndex, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return db.Ack{}, responseError(db.OpCreateIndex, res)
	}

	var ack db.Ack
	if err := decodeBody(db.OpCreateIndex, res, &ack); err != nil {
		return db.Ack{}, err
	}
	return ack, nil
}

// DeleteIndex removes an index as a whole.
func (s *Store) DeleteIndex(ctx context.Context, name string) (db.Ack, error) {
	res, err := s.client.Indices.Delete(
		[]string{name},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return db.Ack{}, transportError(db.OpDeleteIndex, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return db.Ack{}, responseError(db.OpDeleteIndex, res)
	}

	var ack db.Ack
	if err := decodeBody(db.OpDeleteIndex, res, &ack); err != nil {
		return db.Ack{}, err
	}
	return ack, nil
}
