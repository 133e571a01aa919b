package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Backend.URL != "http://localhost:5000" {
		t.Errorf("unexpected backend URL %q", cfg.Backend.URL)
	}
	if cfg.Backend.CookieName != "token" {
		t.Errorf("unexpected backend cookie %q", cfg.Backend.CookieName)
	}
	if cfg.Session.TTL != 24*time.Hour || cfg.Session.RefreshInterval != 5*time.Minute {
		t.Errorf("unexpected session lifetimes: %+v", cfg.Session)
	}
	if cfg.Session.CookieName != "portal_session" {
		t.Errorf("unexpected session cookie %q", cfg.Session.CookieName)
	}
	if cfg.Session.SweepInterval != 10*time.Minute {
		t.Errorf("unexpected sweep interval %v", cfg.Session.SweepInterval)
	}
	if !cfg.Security.RateLimit.Enabled || cfg.Security.RateLimit.PerMinute != 10 {
		t.Errorf("unexpected rate limit: %+v", cfg.Security.RateLimit)
	}
	if cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics path %q", cfg.Observability.Metrics.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.org/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("SESSION_STORE", "Memory")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_REFRESH_INTERVAL", "0")
	t.Setenv("REDIS_SENTINEL_NODES", "s1:26379,s2:26379")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("LOG_LEVEL", "DEBUG")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expectedBackend := BackendConfig{URL: "https://api.example.org", Timeout: 3 * time.Second, CookieName: "token"}
	if !reflect.DeepEqual(cfg.Backend, expectedBackend) {
		t.Fatalf("unexpected backend configuration:\nexpected: %#v\ngot:      %#v", expectedBackend, cfg.Backend)
	}
	if cfg.Session.Store != SessionStoreMemory || !cfg.UseMemorySessions() {
		t.Errorf("expected memory session store, got %q", cfg.Session.Store)
	}
	if cfg.Session.TTL != 2*time.Hour || cfg.Session.RefreshInterval != 0 {
		t.Errorf("unexpected session lifetimes: %+v", cfg.Session)
	}
	if !reflect.DeepEqual(cfg.Redis.SentinelNodes, []string{"s1:26379", "s2:26379"}) {
		t.Errorf("unexpected sentinel nodes: %v", cfg.Redis.SentinelNodes)
	}
	if cfg.Security.RateLimit.PerMinute != 30 {
		t.Errorf("unexpected per-minute limit %d", cfg.Security.RateLimit.PerMinute)
	}
	if cfg.Observability.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Observability.Log.SlogLevel())
	}
}

func TestSessionStoreKind_Invalid(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for unknown session store")
	}
}

func TestAppConfig_UseMemorySessions(t *testing.T) {
	tests := []struct {
		name  string
		store SessionStoreKind
		dev   bool
		want  bool
	}{
		{name: "auto in dev", dev: true, want: true},
		{name: "auto in prod", want: false},
		{name: "redis forced in dev", store: SessionStoreRedis, dev: true, want: false},
		{name: "memory forced in prod", store: SessionStoreMemory, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{IsDev: tt.dev, Session: SessionConfig{Store: tt.store}}
			if got := cfg.UseMemorySessions(); got != tt.want {
				t.Errorf("UseMemorySessions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    HTTPConfig
		expected int
	}{
		{name: "below range", input: HTTPConfig{CompressionLevel: 0}, expected: 1},
		{name: "in range", input: HTTPConfig{CompressionLevel: 6}, expected: 6},
		{name: "above range", input: HTTPConfig{CompressionLevel: 12}, expected: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			cfg.Sanitize()
			if cfg.CompressionLevel != tt.expected {
				t.Errorf("expected level %d, got %d", tt.expected, cfg.CompressionLevel)
			}
		})
	}
}

func TestHTTPConfig_ValidateCookieDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{domain: "", wantErr: false},
		{domain: "localhost", wantErr: false},
		{domain: "members.example.org", wantErr: false},
		{domain: ".Example.org", wantErr: false},
		{domain: "co.uk", wantErr: true},
		{domain: "com", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			cfg := HTTPConfig{CookieDomain: tt.domain}
			cfg.Sanitize()
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
			}
		})
	}
}

func TestHTTPConfig_SecureCookies(t *testing.T) {
	if (&HTTPConfig{BaseURL: "http://localhost:8080"}).SecureCookies() {
		t.Error("plain http must not mark cookies secure")
	}
	if !(&HTTPConfig{BaseURL: "https://members.example.org"}).SecureCookies() {
		t.Error("https base URL must mark cookies secure")
	}
}

func TestBackendConfig_Validate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "http://localhost:5000", wantErr: false},
		{url: "https://api.example.org/v1", wantErr: false},
		{url: "", wantErr: true},
		{url: "ftp://api.example.org", wantErr: true},
		{url: "api.example.org", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := BackendConfig{URL: tt.url}
			cfg.Sanitize()
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestRateLimitConfig_Sanitize(t *testing.T) {
	cfg := RateLimitConfig{Enabled: true, PerMinute: 0, Burst: 0}
	cfg.Sanitize()
	if cfg.Enabled {
		t.Error("zero rate should disable limiting")
	}
	if cfg.Burst != 1 {
		t.Errorf("expected burst clamped to 1, got %d", cfg.Burst)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}
}

func TestAppConfig_Location(t *testing.T) {
	cfg := AppConfig{TimeZone: "Europe/Paris"}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if loc.String() != "Europe/Paris" {
		t.Errorf("unexpected location %q", loc)
	}

	blank := AppConfig{}
	if loc, _ := blank.Location(); loc != time.UTC {
		t.Errorf("blank zone should be UTC, got %v", loc)
	}

	bad := AppConfig{TimeZone: "Mars/Olympus", Backend: BackendConfig{URL: "http://localhost:5000"}}
	if err := bad.Validate(); err == nil {
		t.Error("unknown zone should fail validation")
	}
}
