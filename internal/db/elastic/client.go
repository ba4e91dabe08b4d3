package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esgate/internal/db"
)

// Compile-time check: Store implements db.Backend.
var _ db.Backend = (*Store)(nil)

// DefaultUsername is the fixed basic-auth user paired with the configured password.
const DefaultUsername = "elastic"

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	// Addresses of cluster nodes. Empty means the client default
	// (ELASTICSEARCH_URL or http://localhost:9200).
	Addresses []string
	Username  string
	Password  string
	// Transport overrides the HTTP transport (tests, custom TLS).
	Transport http.RoundTripper
}

// Store implements db.Backend via go-elasticsearch.
type Store struct {
	client *elasticsearch.Client
}

// NewStore creates a Store. No request is sent until the first call.
func NewStore(cfg Config) (*Store, error) {
	username := cfg.Username
	if username == "" && cfg.Password != "" {
		username = DefaultUsername
	}

	var addrs []string
	for _, a := range cfg.Addresses {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return transportError(db.OpPing, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return responseError(db.OpPing, res)
	}
	return nil
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for cluster: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// errorBody is the engine's error envelope. "error" is sometimes a plain string;
// decoding then fails silently and the raw body is used as the reason.
type errorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func transportError(op string, err error) error {
	return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrConnectivity, err)}
}

// responseError classifies a non-2xx response into a db sentinel.
func responseError(op string, res *esapi.Response) error {
	data, _ := io.ReadAll(res.Body)

	var eb errorBody
	_ = json.Unmarshal(data, &eb)

	var base error
	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		base = db.ErrConnectivity
	case eb.Error.Type == "index_not_found_exception":
		base = db.ErrIndexNotFound
	case eb.Error.Type == "resource_already_exists_exception":
		base = db.ErrIndexExists
	case res.StatusCode == http.StatusNotFound && op == db.OpDeleteDocument:
		base = db.ErrDocumentNotFound
	case res.StatusCode == http.StatusNotFound:
		base = db.ErrIndexNotFound
	default:
		base = db.ErrUnexpectedStatus
	}

	reason := eb.Error.Reason
	if reason == "" {
		reason = strings.TrimSpace(string(data))
	}
	if reason == "" {
		reason = http.StatusText(res.StatusCode)
	}

	return &db.Error{Op: op, Status: res.StatusCode, Err: fmt.Errorf("%w: %s", base, reason)}
}

func decodeBody(op string, res *esapi.Response, v any) error {
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &db.Error{Op: op, Status: res.StatusCode, Err: errors.New("empty response body")}
		}
		return &db.Error{Op: op, Status: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
}
