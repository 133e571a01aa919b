package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects where sessions are kept.
type SessionStoreKind string

const (
	// SessionStoreAuto uses memory in dev mode and Redis otherwise.
	SessionStoreAuto SessionStoreKind = ""
	// SessionStoreRedis keeps sessions in Redis.
	SessionStoreRedis SessionStoreKind = "redis"
	// SessionStoreMemory keeps sessions in process memory (single instance, lost on restart).
	SessionStoreMemory SessionStoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch SessionStoreKind(v) {
	case SessionStoreAuto, SessionStoreRedis, SessionStoreMemory:
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: redis, memory)", v)
	}
}

// SessionConfig controls browser sessions.
type SessionConfig struct {
	Store SessionStoreKind `env:"STORE"`

	// TTL caps a session's lifetime; a shorter backend token expiry wins.
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// RefreshInterval is how long a cached identity is trusted before it is re-read from the backend.
	// Zero disables refreshing.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`

	// CookieName is the portal's own session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"portal_session"`

	// SweepInterval is how often expired sessions are purged from the in-memory store.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"session:"`
}

// Sanitize restores defaults for invalid values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 24 * time.Hour
	}
	if s.RefreshInterval < 0 {
		s.RefreshInterval = 0
	}
	s.CookieName = strings.TrimSpace(s.CookieName)
	if s.CookieName == "" {
		s.CookieName = "portal_session"
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = 10 * time.Minute
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
}
