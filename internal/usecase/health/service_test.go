package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockPinger struct {
	err      error
	deadline time.Time
	hasDL    bool
}

func (m *mockPinger) Ping(ctx context.Context) error {
	m.deadline, m.hasDL = ctx.Deadline()
	return m.err
}

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockPinger{}, time.Second)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckCluster] != CheckOK {
		t.Errorf("expected cluster %q, got %q", CheckOK, r.Checks[CheckCluster])
	}
}

func TestCheck_ClusterDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, time.Second)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckCluster] != CheckError {
		t.Errorf("expected cluster %q, got %q", CheckError, r.Checks[CheckCluster])
	}
}

func TestCheck_AppliesTimeout(t *testing.T) {
	p := &mockPinger{}
	before := time.Now()
	New(p, 500*time.Millisecond).Check(context.Background())

	if !p.hasDL {
		t.Fatal("expected ping context to carry a deadline")
	}
	if p.deadline.Sub(before) > time.Second {
		t.Errorf("deadline too far in the future: %v", p.deadline.Sub(before))
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	svc := New(&mockPinger{}, 0)
	if svc.timeout != DefaultTimeout {
		t.Errorf("expected %v, got %v", DefaultTimeout, svc.timeout)
	}
}
