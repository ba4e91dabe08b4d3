package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_ExpandsAndDefaults(t *testing.T) {
	t.Setenv("ELASTIC_HOST", "")
	t.Setenv("ELASTIC_PASSWORD", "")
	t.Setenv("TEST_ES_PORT", "9201")

	cfg, err := Parse([]byte(`
http:
  port: 9090
elastic:
  host: http://es:${TEST_ES_PORT}
  password: ${TEST_ES_MISSING:-fallback}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Elastic.Host != "http://es:9201" {
		t.Errorf("expected expanded host, got %q", cfg.Elastic.Host)
	}
	if cfg.Elastic.Password != "fallback" {
		t.Errorf("expected default password, got %q", cfg.Elastic.Password)
	}
	if cfg.Elastic.ReadinessTimeout != 30 {
		t.Errorf("expected ReadinessTimeout=30, got %d", cfg.Elastic.ReadinessTimeout)
	}
}

func TestParse_EnvOverridesFile(t *testing.T) {
	t.Setenv("ELASTIC_HOST", "https://cluster.example:9243")
	t.Setenv("ELASTIC_PASSWORD", "from-env")

	cfg, err := Parse([]byte(`
elastic:
  host: http://file-host:9200
  password: from-file
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Elastic.Host != "https://cluster.example:9243" {
		t.Errorf("expected host from env, got %q", cfg.Elastic.Host)
	}
	if cfg.Elastic.Password != "from-env" {
		t.Errorf("expected password from env, got %q", cfg.Elastic.Password)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestElasticFromEnv(t *testing.T) {
	t.Setenv("ELASTIC_HOST", "http://a:9200, http://b:9200")
	t.Setenv("ELASTIC_PASSWORD", "pw")

	e := ElasticFromEnv()
	if e.Password != "pw" {
		t.Errorf("expected password pw, got %q", e.Password)
	}
	want := []string{"http://a:9200", "http://b:9200"}
	if got := e.Addresses(); !reflect.DeepEqual(got, want) {
		t.Errorf("Addresses() = %v, want %v", got, want)
	}
}

func TestElasticFromEnv_Unset(t *testing.T) {
	t.Setenv("ELASTIC_HOST", "")
	t.Setenv("ELASTIC_PASSWORD", "")

	e := ElasticFromEnv()
	if len(e.Addresses()) != 0 || e.Password != "" {
		t.Errorf("expected empty config, got %+v", e)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 70000}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_ElasticHost(t *testing.T) {
	tests := []struct {
		host    string
		wantErr string
	}{
		{"", ""},
		{"http://localhost:9200", ""},
		{"https://a:9243,https://b:9243", ""},
		{"localhost:9200", "must use http or https"},
		{"ftp://es:21", "must use http or https"},
		{"http://", "has no host"},
	}

	for _, tc := range tests {
		t.Run(tc.host, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Elastic: ElasticConfig{Host: tc.host}}
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateAddresses(t *testing.T) {
	if err := ValidateAddresses([]string{"http://a:9200", " ", "https://b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAddresses(nil); err != nil {
		t.Fatalf("unexpected error for no addresses: %v", err)
	}
	err := ValidateAddresses([]string{"http://a:9200", "localhost:9200"})
	if err == nil || !strings.Contains(err.Error(), `"localhost:9200" must use http or https`) {
		t.Fatalf("expected scheme error naming the bad host, got %v", err)
	}
}

func TestValidate_EmptyAPIKey(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Auth: AuthConfig{APIKeys: []string{"k1", " "}}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.HTTP.MaxBodyBytes != 1<<20 {
		t.Errorf("expected MaxBodyBytes=1MiB, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.Elastic.ReadinessTimeout != 30 {
		t.Errorf("expected ReadinessTimeout=30, got %d", cfg.Elastic.ReadinessTimeout)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 9000, ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Elastic: ElasticConfig{ReadinessTimeout: 15},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Elastic.ReadinessTimeout != 15 {
		t.Errorf("expected ReadinessTimeout=15, got %d", cfg.Elastic.ReadinessTimeout)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	t.Setenv("ELASTIC_HOST", "")
	t.Setenv("ELASTIC_PASSWORD", "")
	t.Setenv("PORT", "")

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Elastic.Host != "http://localhost:9200" {
		t.Errorf("expected default local host, got %q", cfg.Elastic.Host)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
}
