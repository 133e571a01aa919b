package ports

// Package ports defines interfaces (hexagonal ports) for the portal's collaborators.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
)

// ErrSessionNotFound is returned by session stores for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves browser sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
	// List returns every live session. Intended for operator tooling, not request paths.
	List(ctx context.Context) ([]domainauth.Session, error)
}

// SignupRequest carries the registration form.
type SignupRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResult is the outcome of a credential exchange with the backend.
// Token is the backend's own auth cookie and must be presented on later calls.
// ExpiresAt is the token's expiry when the backend disclosed one, else zero.
type AuthResult struct {
	User      domainauth.User
	Token     string
	ExpiresAt time.Time
}

// AuthBackend is the member service's authentication API.
type AuthBackend interface {
	Signup(ctx context.Context, req SignupRequest) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token, code string) (AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
	// CheckAuth returns the current identity for token. An unauthorized error means the token is no longer valid.
	CheckAuth(ctx context.Context, token string) (domainauth.User, error)
}
