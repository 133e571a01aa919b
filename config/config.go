package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: member backend client configuration
//   - http.go: HTTP server configuration
//   - redis.go: session storage configuration
//   - session.go: session lifetime and cookie configuration
//   - security.go: rate limiting
//   - observability.go: logging and metrics
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, memory session store).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// TimeZone is the IANA zone event times are shown and entered in.
	TimeZone string `env:"APP_TIMEZONE" envDefault:"UTC"`

	HTTP     HTTPConfig
	Backend  BackendConfig `envPrefix:"BACKEND_"`
	Session  SessionConfig `envPrefix:"SESSION_"`
	Redis    RedisConfig   `envPrefix:"REDIS_"`
	Security SecurityConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Session.Sanitize()
	c.Redis.Sanitize()
	c.Security.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// Validate reports configuration that cannot be repaired by Sanitize.
func (c *AppConfig) Validate() error {
	var tzErr error
	if _, err := c.Location(); err != nil {
		tzErr = fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return errors.Join(
		c.HTTP.Validate(),
		c.Backend.Validate(),
		tzErr,
	)
}

// Location resolves TimeZone; blank means UTC.
func (c *AppConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(c.TimeZone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(strings.TrimSpace(c.TimeZone))
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// UseMemorySessions reports whether sessions live in process memory instead of Redis.
func (c *AppConfig) UseMemorySessions() bool {
	switch c.Session.Store {
	case SessionStoreMemory:
		return true
	case SessionStoreRedis:
		return false
	default:
		return c.IsDev
	}
}
