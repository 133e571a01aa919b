package auth

// Package auth contains domain-level types for members, roles and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is a member's standing in the organisation.
// The set is closed; ParseRole rejects anything outside it.
type Role string

const (
	RolePending   Role = "pending"
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleBanned    Role = "banned"
)

// ErrInvalidRole is returned when a role string is not one of the known roles.
var ErrInvalidRole = errors.New("invalid role")

// Roles returns every valid role in display order.
func Roles() []Role {
	return []Role{RolePending, RoleMember, RoleModerator, RoleAdmin, RoleBanned}
}

// ParseRole converts s into a Role. Matching is case-insensitive and ignores surrounding space.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePending, RoleMember, RoleModerator, RoleAdmin, RoleBanned:
		return true
	default:
		return false
	}
}

// IsStaff reports whether r may enter the admin console.
func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleModerator }

func (r Role) String() string { return string(r) }

// UnmarshalText rejects unknown roles so a decoded session can never carry one.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// User is the identity of a signed-in member as reported by the backend.
type User struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	IsVerified      bool   `json:"is_verified"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// DisplayName returns "First Last", falling back to the e-mail address.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Session is the server-side record kept per browser.
// A nil User means the visitor is anonymous; there is no separate authenticated flag.
type Session struct {
	ID           string    `json:"id"`
	User         *User     `json:"user,omitempty"`
	BackendToken string    `json:"backend_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// NewSessionInput groups the fields needed to build an authenticated session.
type NewSessionInput struct {
	ID           string
	User         User
	BackendToken string
	ExpiresAt    time.Time
	Now          time.Time
}

// NewSession builds an authenticated session, validating the user's role.
func NewSession(in NewSessionInput) (Session, error) {
	if strings.TrimSpace(in.ID) == "" {
		return Session{}, errors.New("session id is required")
	}
	if strings.TrimSpace(in.User.ID) == "" {
		return Session{}, errors.New("user id is required")
	}
	if !in.User.Role.Valid() {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidRole, in.User.Role)
	}
	u := in.User
	return Session{
		ID:           in.ID,
		User:         &u,
		BackendToken: in.BackendToken,
		ExpiresAt:    in.ExpiresAt,
		RefreshedAt:  in.Now,
	}, nil
}

// IsAuthenticated reports whether the session belongs to a signed-in member.
func (s *Session) IsAuthenticated() bool { return s != nil && s.User != nil }

// Role returns the current role, or "" for anonymous sessions.
func (s *Session) Role() Role {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.Role
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// WithUser returns a copy of s carrying u, stamped as refreshed at now.
func (s Session) WithUser(u User, now time.Time) (Session, error) {
	if !u.Role.Valid() {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
	s.User = &u
	s.RefreshedAt = now
	return s, nil
}
