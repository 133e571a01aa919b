package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BackendConfig configures the client for the member REST backend.
type BackendConfig struct {
	// URL is the backend base URL; API paths are resolved against it.
	URL string `env:"URL" envDefault:"http://localhost:5000"`

	// Timeout bounds a single backend call. Zero leaves calls bound only by the request context.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// CookieName is the name of the backend's auth cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"token"`
}

// Sanitize trims values and restores defaults for blanks.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	b.CookieName = strings.TrimSpace(b.CookieName)
	if b.CookieName == "" {
		b.CookieName = "token"
	}
	if b.Timeout < 0 {
		b.Timeout = 0
	}
}

// Validate requires an absolute http(s) URL.
func (b *BackendConfig) Validate() error {
	if b.URL == "" {
		return errors.New("BACKEND_URL is required")
	}
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("BACKEND_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_URL %q must be an absolute http(s) URL", b.URL)
	}
	return nil
}
