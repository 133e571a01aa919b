package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	apperrors "github.com/memberhub/portal/internal/errors"
	obserrors "github.com/memberhub/portal/internal/observability/errors"
	"github.com/memberhub/portal/internal/observability/metrics"
	"github.com/memberhub/portal/internal/ports"
)

const (
	// DefaultSessionTTL applies when the backend token carries no expiry.
	DefaultSessionTTL = 24 * time.Hour
	// DefaultRefreshInterval is how long a cached identity is trusted before re-checking the backend.
	DefaultRefreshInterval = 5 * time.Minute

	minPasswordLength = 8
)

// ErrSessionRevoked is returned by GetSession when the backend no longer accepts the session's token.
var ErrSessionRevoked = errors.New("session revoked by backend")

// TokenExpiryFunc extracts an expiry from a backend token.
type TokenExpiryFunc func(token string) (time.Time, bool)

// AuthServiceConfig tunes session lifetime and optional collaborators.
type AuthServiceConfig struct {
	SessionTTL      time.Duration
	RefreshInterval time.Duration
	TokenExpiry     TokenExpiryFunc
	Now             func() time.Time
	Logger          *slog.Logger
	Metrics         metrics.Recorder
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend  ports.AuthBackend  // Required
	Sessions ports.SessionStore // Required
	Config   AuthServiceConfig
}

// AuthService runs the sign-up, sign-in and verification flows and is the only writer of sessions.
type AuthService struct {
	backend  ports.AuthBackend
	sessions ports.SessionStore
	ttl      time.Duration
	refresh  time.Duration
	expiry   TokenExpiryFunc
	now      func() time.Time
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Backend == nil {
		panic("AuthBackend is required")
	}
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}

	cfg := opts.Config
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.RefreshInterval < 0 {
		cfg.RefreshInterval = 0
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &AuthService{
		backend:  opts.Backend,
		sessions: opts.Sessions,
		ttl:      cfg.SessionTTL,
		refresh:  cfg.RefreshInterval,
		expiry:   cfg.TokenExpiry,
		now:      cfg.Now,
		logger:   cfg.Logger.With("component", "auth_service"),
		metrics:  metrics.OrNop(cfg.Metrics),
	}
}

// Login exchanges credentials for a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domainauth.Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	res, err := s.backend.Login(ctx, email, password)
	s.record("login", err)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.startSession(ctx, res)
}

// SignupInput is the registration form.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (in *SignupInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
}

func (in *SignupInput) validate() error {
	if in.FirstName == "" {
		return apperrors.ValidationField("firstname", "first name is required")
	}
	if in.LastName == "" {
		return apperrors.ValidationField("lastname", "last name is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

// Signup registers a new account and signs the visitor in.
// New accounts are unverified and usually pending approval.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domainauth.Session, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	res, err := s.backend.Signup(ctx, ports.SignupRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	})
	s.record("signup", err)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return s.startSession(ctx, res)
}

// VerifyEmail submits the e-mailed verification code.
// When sessionID names a live session its identity is replaced by the verified one. Otherwise a
// new session is started if the backend issued a token. A nil session with a nil error means the
// code was accepted but the visitor still has to sign in.
func (s *AuthService) VerifyEmail(ctx context.Context, sessionID, code string) (*domainauth.Session, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.ValidationField("code", "verification code is required")
	}

	var current *domainauth.Session
	if sessionID != "" {
		sess, err := s.sessions.Get(ctx, sessionID)
		switch {
		case err == nil:
			current = &sess
		case !errors.Is(err, ports.ErrSessionNotFound):
			return nil, fmt.Errorf("get session: %w", err)
		}
	}

	token := ""
	if current != nil {
		token = current.BackendToken
	}
	res, err := s.backend.VerifyEmail(ctx, token, code)
	s.record("verify_email", err)
	if err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}

	if current == nil {
		if res.Token == "" {
			return nil, nil
		}
		return s.startSession(ctx, res)
	}

	updated, err := current.WithUser(res.User, s.now())
	if err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}
	if res.Token != "" {
		updated.BackendToken = res.Token
		updated.ExpiresAt = s.expiresAt(res)
	}
	if err := s.sessions.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &updated, nil
}

// ForgotPassword asks the backend to e-mail a reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	err := s.backend.ForgotPassword(ctx, email)
	s.record("forgot_password", err)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using the token from the reset e-mail.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, password string) error {
	resetToken = strings.TrimSpace(resetToken)
	if resetToken == "" {
		return apperrors.Validation("reset link is invalid")
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	err := s.backend.ResetPassword(ctx, resetToken, password)
	s.record("reset_password", err)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// GetSession returns the live session for sessionID.
// Expired sessions are deleted. When the cached identity is older than the refresh interval it is
// re-read from the backend so role changes and bans take effect; a token the backend rejects
// deletes the session, while any other refresh failure keeps serving the cached identity.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := s.now()
	if sess.Expired(now) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ports.ErrSessionNotFound, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ports.ErrSessionNotFound
	}

	if !s.refreshDue(sess, now) {
		return &sess, nil
	}

	user, err := s.backend.CheckAuth(ctx, sess.BackendToken)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			s.logger.InfoContext(ctx, "backend rejected session token", "session_id", sessionID)
			if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
				return nil, errors.Join(ErrSessionRevoked, fmt.Errorf("delete session: %w", deleteErr))
			}
			return nil, ErrSessionRevoked
		}
		s.logger.WarnContext(ctx, "session refresh failed, serving cached identity",
			"session_id", sessionID,
			"error_class", obserrors.Classify(err),
			"error", err,
		)
		return &sess, nil
	}

	refreshed, err := sess.WithUser(user, now)
	if err != nil {
		s.logger.WarnContext(ctx, "backend returned unusable identity", "session_id", sessionID, "error", err)
		return &sess, nil
	}
	if err := s.sessions.Save(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &refreshed, nil
}

// Logout ends the session. The backend logout is best effort; the local session is always removed.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	switch {
	case err == nil:
		if sess.BackendToken != "" {
			if logoutErr := s.backend.Logout(ctx, sess.BackendToken); logoutErr != nil {
				s.logger.WarnContext(ctx, "backend logout failed", "session_id", sessionID, "error", logoutErr)
			}
		}
	case errors.Is(err, ports.ErrSessionNotFound):
		return nil
	default:
		s.logger.WarnContext(ctx, "load session for logout", "session_id", sessionID, "error", err)
	}
	s.record("logout", nil)

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListSessions returns every live session, for operator tooling.
func (s *AuthService) ListSessions(ctx context.Context) ([]domainauth.Session, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// RevokeSession deletes a session without contacting the backend.
func (s *AuthService) RevokeSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("session ID is required")
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AuthService) startSession(ctx context.Context, res ports.AuthResult) (*domainauth.Session, error) {
	sess, err := domainauth.NewSession(domainauth.NewSessionInput{
		ID:           generateSessionID(),
		User:         res.User,
		BackendToken: res.Token,
		ExpiresAt:    s.expiresAt(res),
		Now:          s.now(),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "backend returned an unusable identity")
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &sess, nil
}

// expiresAt picks the earliest known bound: the backend's own expiry, the token's exp claim, then the TTL.
func (s *AuthService) expiresAt(res ports.AuthResult) time.Time {
	limit := s.now().Add(s.ttl)
	exp := res.ExpiresAt
	if exp.IsZero() && s.expiry != nil {
		if t, ok := s.expiry(res.Token); ok {
			exp = t
		}
	}
	if exp.IsZero() || exp.After(limit) {
		return limit
	}
	return exp
}

func (s *AuthService) refreshDue(sess domainauth.Session, now time.Time) bool {
	if s.refresh == 0 || sess.BackendToken == "" {
		return false
	}
	return now.Sub(sess.RefreshedAt) >= s.refresh
}

func (s *AuthService) record(action string, err error) {
	result := "ok"
	if err != nil {
		result = obserrors.Classify(err)
	}
	s.metrics.RecordAuthAttempt(action, result)
}

// generateSessionID creates a random, URL-safe session ID.
func generateSessionID() string {
	return uuid.New().String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ValidationField("email", "email address is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperrors.ValidationField("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}
