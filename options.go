package esgate

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs     []string
	password  string
	transport http.RoundTripper

	readiness time.Duration
	logger    *zap.Logger
	metrics   bool
}

// WithHost sets the cluster node URLs. Without it the engine client
// default applies (ELASTICSEARCH_URL or http://localhost:9200).
func WithHost(urls ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), urls...)
	})
}

// WithPassword sets the basic-auth password for the fixed "elastic" user.
func WithPassword(password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.password = password
	})
}

// WithTransport overrides the HTTP transport (custom TLS, proxies, tests).
func WithTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = rt
	})
}

// WithReadinessWait makes New block until the cluster answers a ping or
// the timeout expires. By default New sends no request.
func WithReadinessWait(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readiness = timeout
	})
}

// WithLogger sets the logger used when the call context carries none.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetrics records per-operation Prometheus metrics in the default registry.
func WithMetrics() Option {
	return optionFunc(func(c *clientConfig) {
		c.metrics = true
	})
}
