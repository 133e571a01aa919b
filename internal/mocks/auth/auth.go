package auth

// Package auth contains a hand-written, stateful fake of the member backend's auth API.
// It is lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthBackend = (*FakeAuthBackend)(nil)

// DefaultVerificationCode is the code every fake signup must confirm with.
const DefaultVerificationCode = "123456"

// Account is a fake backend account.
type Account struct {
	User     domainauth.User
	Password string
}

// FakeAuthBackend simulates the backend's auth endpoints with deterministic tokens.
// Func fields, when set, override the corresponding method.
type FakeAuthBackend struct {
	LoginFunc     func(ctx context.Context, email, password string) (ports.AuthResult, error)
	CheckAuthFunc func(ctx context.Context, token string) (domainauth.User, error)

	mu       sync.Mutex
	accounts map[string]*Account // by e-mail
	tokens   map[string]string   // token -> e-mail
	resets   map[string]string   // reset token -> e-mail
	seq      int
	calls    map[string]int
}

// NewFakeAuthBackend returns an empty fake backend.
func NewFakeAuthBackend() *FakeAuthBackend {
	return &FakeAuthBackend{
		accounts: make(map[string]*Account),
		tokens:   make(map[string]string),
		resets:   make(map[string]string),
		calls:    make(map[string]int),
	}
}

// AddAccount registers an existing account and returns a token already signed in as it.
func (f *FakeAuthBackend) AddAccount(u domainauth.User, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		f.seq++
		u.ID = fmt.Sprintf("user-%d", f.seq)
	}
	email := strings.ToLower(u.Email)
	f.accounts[email] = &Account{User: u, Password: password}
	return f.issueLocked(email)
}

// SetRole changes an account's role as an administrator would on the backend.
func (f *FakeAuthBackend) SetRole(email string, role domainauth.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[strings.ToLower(email)]; ok {
		a.User.Role = role
	}
}

// RevokeToken invalidates token as if it expired on the backend.
func (f *FakeAuthBackend) RevokeToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

// ResetTokenFor returns the reset token mailed to email, if any.
func (f *FakeAuthBackend) ResetTokenFor(email string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tok, e := range f.resets {
		if e == strings.ToLower(email) {
			return tok, true
		}
	}
	return "", false
}

// Calls returns how many times method was invoked.
func (f *FakeAuthBackend) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakeAuthBackend) Signup(_ context.Context, req ports.SignupRequest) (ports.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Signup"]++

	email := strings.ToLower(req.Email)
	if _, exists := f.accounts[email]; exists {
		return ports.AuthResult{}, apperrors.Conflict("user already exists")
	}
	f.seq++
	u := domainauth.User{
		ID:        fmt.Sprintf("user-%d", f.seq),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Role:      domainauth.RolePending,
	}
	f.accounts[email] = &Account{User: u, Password: req.Password}
	return ports.AuthResult{User: u, Token: f.issueLocked(email)}, nil
}

func (f *FakeAuthBackend) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Login"]++

	email = strings.ToLower(email)
	a, ok := f.accounts[email]
	if !ok || a.Password != password {
		return ports.AuthResult{}, apperrors.Unauthorized("invalid credentials")
	}
	return ports.AuthResult{User: a.User, Token: f.issueLocked(email)}, nil
}

func (f *FakeAuthBackend) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Logout"]++
	delete(f.tokens, token)
	return nil
}

// VerifyEmail accepts DefaultVerificationCode. Without a token the first unverified account is verified
// and no new token is issued.
func (f *FakeAuthBackend) VerifyEmail(_ context.Context, token, code string) (ports.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["VerifyEmail"]++

	if code != DefaultVerificationCode {
		return ports.AuthResult{}, apperrors.Validation("invalid or expired verification code")
	}
	if token == "" {
		for _, a := range f.accounts {
			if !a.User.IsVerified {
				a.User.IsVerified = true
				return ports.AuthResult{User: a.User}, nil
			}
		}
		return ports.AuthResult{}, apperrors.Validation("invalid or expired verification code")
	}
	email, ok := f.tokens[token]
	if !ok {
		return ports.AuthResult{}, apperrors.Unauthorized("not authenticated")
	}
	a := f.accounts[email]
	a.User.IsVerified = true
	return ports.AuthResult{User: a.User, Token: token}, nil
}

// ForgotPassword records a reset token for known addresses and silently ignores unknown ones.
func (f *FakeAuthBackend) ForgotPassword(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ForgotPassword"]++

	email = strings.ToLower(email)
	if _, ok := f.accounts[email]; ok {
		f.seq++
		f.resets[fmt.Sprintf("reset-%d", f.seq)] = email
	}
	return nil
}

func (f *FakeAuthBackend) ResetPassword(_ context.Context, resetToken, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ResetPassword"]++

	email, ok := f.resets[resetToken]
	if !ok {
		return apperrors.Validation("invalid or expired reset token")
	}
	delete(f.resets, resetToken)
	f.accounts[email].Password = password
	return nil
}

func (f *FakeAuthBackend) CheckAuth(ctx context.Context, token string) (domainauth.User, error) {
	if f.CheckAuthFunc != nil {
		return f.CheckAuthFunc(ctx, token)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CheckAuth"]++

	email, ok := f.tokens[token]
	if !ok {
		return domainauth.User{}, apperrors.Unauthorized("not authenticated")
	}
	return f.accounts[email].User, nil
}

func (f *FakeAuthBackend) issueLocked(email string) string {
	f.seq++
	token := fmt.Sprintf("token-%d", f.seq)
	f.tokens[token] = email
	return token
}
