package testutil

import (
	"time"

	"github.com/memberhub/portal/internal/domain/auth"
)

// SessionWithRole returns an authenticated session for a user with role, valid for an hour.
func SessionWithRole(id string, role auth.Role) auth.Session {
	now := time.Now()
	return auth.Session{
		ID: id,
		User: &auth.User{
			ID:         "user-" + id,
			FirstName:  "Test",
			LastName:   string(role),
			Email:      id + "@example.com",
			Role:       role,
			IsVerified: role != auth.RolePending,
		},
		BackendToken: "backend-" + id,
		ExpiresAt:    now.Add(time.Hour),
		RefreshedAt:  now,
	}
}
