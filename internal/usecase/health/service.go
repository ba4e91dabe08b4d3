package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the search cluster cannot serve requests.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// CheckCluster is the report key for the search cluster check.
const CheckCluster = "cluster"

// DefaultTimeout bounds a single cluster ping.
const DefaultTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	cluster ClusterPinger
	timeout time.Duration
}

// New creates a Service. A non-positive timeout uses DefaultTimeout.
func New(cluster ClusterPinger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{cluster: cluster, timeout: timeout}
}

// Check pings the cluster. The gateway has no other dependency, so a
// failed ping makes the whole report unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	checks := map[string]CheckResult{CheckCluster: CheckOK}
	status := Healthy

	if err := s.cluster.Ping(ctx); err != nil {
		checks[CheckCluster] = CheckError
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
