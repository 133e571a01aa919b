package config

// SecurityConfig groups request-throttling settings.
type SecurityConfig struct {
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// Sanitize applies guardrails to sub-configs.
func (s *SecurityConfig) Sanitize() {
	s.RateLimit.Sanitize()
}

// RateLimitConfig throttles credential form submissions per client IP.
type RateLimitConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
	// PerMinute is the sustained number of auth form POSTs allowed per client.
	PerMinute int `env:"PER_MINUTE" envDefault:"10"`
	// Burst is how many submissions may arrive back to back.
	Burst int `env:"BURST" envDefault:"5"`
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// Sanitize disables throttling that could never admit a request.
func (r *RateLimitConfig) Sanitize() {
	if r.PerMinute <= 0 {
		r.Enabled = false
	}
	if r.Burst < 1 {
		r.Burst = 1
	}
}
