package observed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/esgate/internal/db"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
	"github.com/kailas-cloud/esgate/internal/metrics"
)

type stubBackend struct {
	hits      result.Hits
	existence db.Existence
	ack       db.Ack
	writeAck  db.WriteAck
	err       error
	pings     int
}

func (s *stubBackend) Ping(context.Context) error {
	s.pings++
	return s.err
}

func (s *stubBackend) WaitForReady(context.Context, time.Duration) error { return s.err }

func (s *stubBackend) Search(context.Context, []string, json.RawMessage) (result.Hits, error) {
	return s.hits, s.err
}

func (s *stubBackend) IndexExists(context.Context, string) (db.Existence, error) {
	return s.existence, s.err
}

func (s *stubBackend) CreateIndex(context.Context, string) (db.Ack, error) { return s.ack, s.err }

func (s *stubBackend) DeleteIndex(context.Context, string) (db.Ack, error) { return s.ack, s.err }

func (s *stubBackend) PutDocument(context.Context, string, string, json.RawMessage) (db.WriteAck, error) {
	return s.writeAck, s.err
}

func (s *stubBackend) DeleteDocument(context.Context, string, string) (db.WriteAck, error) {
	return s.writeAck, s.err
}

func TestBackend_PassesResultsThrough(t *testing.T) {
	inner := &stubBackend{
		hits:      result.Hits{Total: result.Total{Value: 2}, Hits: []result.Hit{{ID: "a"}, {ID: "b"}}},
		existence: db.Present,
		ack:       db.Ack{Acknowledged: true},
		writeAck:  db.WriteAck{ID: "x", Result: "created"},
	}
	b := New(inner, zap.NewNop())
	ctx := context.Background()

	hits, err := b.Search(ctx, []string{"pets"}, json.RawMessage(`{}`))
	if err != nil || hits.Len() != 2 {
		t.Fatalf("Search: %+v, %v", hits, err)
	}
	if ex, _ := b.IndexExists(ctx, "pets"); ex != db.Present {
		t.Errorf("IndexExists: got %s", ex)
	}
	if ack, _ := b.CreateIndex(ctx, "pets"); !ack.Acknowledged {
		t.Error("CreateIndex: expected acknowledged")
	}
	if ack, _ := b.DeleteIndex(ctx, "pets"); !ack.Acknowledged {
		t.Error("DeleteIndex: expected acknowledged")
	}
	if ack, _ := b.PutDocument(ctx, "pets", "", json.RawMessage(`{}`)); ack.ID != "x" {
		t.Errorf("PutDocument: got id %q", ack.ID)
	}
	if ack, _ := b.DeleteDocument(ctx, "pets", "x"); ack.Result != "created" {
		t.Errorf("DeleteDocument: got result %q", ack.Result)
	}
	if err := b.Ping(ctx); err != nil || inner.pings != 1 {
		t.Errorf("Ping: %v, calls=%d", err, inner.pings)
	}
}

func TestBackend_ErrorsKeepIdentity(t *testing.T) {
	cause := &db.Error{Op: db.OpCreateIndex, Status: 400, Err: db.ErrIndexExists}
	b := New(&stubBackend{err: cause}, zap.NewNop())

	_, err := b.CreateIndex(context.Background(), "pets")
	if !errors.Is(err, db.ErrIndexExists) {
		t.Fatalf("expected ErrIndexExists, got %v", err)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr != cause {
		t.Error("expected the original *db.Error to be returned")
	}
}

func TestBackend_RecordsOutcome(t *testing.T) {
	b := New(&stubBackend{err: fmt.Errorf("wrap: %w", db.ErrConnectivity)}, zap.NewNop())

	before := testutil.ToFloat64(metrics.BackendRequestsTotal.WithLabelValues(db.OpDeleteIndex, metrics.OutcomeUnavailable))
	_, _ = b.DeleteIndex(context.Background(), "pets")
	after := testutil.ToFloat64(metrics.BackendRequestsTotal.WithLabelValues(db.OpDeleteIndex, metrics.OutcomeUnavailable))

	if after-before != 1 {
		t.Errorf("expected one unavailable outcome recorded, got %f", after-before)
	}
}

func TestBackend_LogsFailuresAtWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(&stubBackend{err: db.ErrUnexpectedStatus}, zap.New(core))

	_, _ = b.Search(context.Background(), []string{"pets"}, json.RawMessage(`{}`))

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 {
		t.Fatalf("expected 1 warn entry, got %d", len(warns))
	}
	if warns[0].ContextMap()["op"] != db.OpSearch {
		t.Errorf("expected op field %q, got %v", db.OpSearch, warns[0].ContextMap()["op"])
	}
}

func TestBackend_NotFoundIsNotWarned(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(&stubBackend{err: db.ErrDocumentNotFound}, zap.New(core))

	_, _ = b.DeleteDocument(context.Background(), "pets", "gone")

	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 0 {
		t.Errorf("expected no warn entries for not-found, got %d", n)
	}
	if n := logs.FilterLevelExact(zapcore.DebugLevel).Len(); n != 1 {
		t.Errorf("expected 1 debug entry, got %d", n)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.OutcomeOK},
		{db.ErrIndexNotFound, metrics.OutcomeNotFound},
		{fmt.Errorf("x: %w", db.ErrDocumentNotFound), metrics.OutcomeNotFound},
		{&db.Error{Op: db.OpPing, Err: db.ErrConnectivity}, metrics.OutcomeUnavailable},
		{errors.New("boom"), metrics.OutcomeError},
	}
	for _, tc := range tests {
		if got := Outcome(tc.err); got != tc.want {
			t.Errorf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
