package httpx

import (
	"context"
	"log/slog"
	"net/http"
)

// SessionTerminator ends a session.
type SessionTerminator interface {
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers serves the non-page authentication endpoints.
type AuthHandlers struct {
	Svc    SessionTerminator
	Cookie SessionCookie
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Logout ends the session and returns the visitor to the welcome page.
// Backend failures are logged; the cookie is cleared regardless.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id := h.Cookie.read(r); id != "" {
		if err := h.Svc.Logout(r.Context(), id); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.Cookie.clear(w, r)
	redirectAfterPost(w, r, withNotice("/", "signed-out"))
}

// Status reports the request's session as JSON.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if !session.IsAuthenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	u := session.User
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":          u.ID,
			"first_name":  u.FirstName,
			"last_name":   u.LastName,
			"email":       u.Email,
			"role":        u.Role,
			"is_verified": u.IsVerified,
		},
		"expires_at": session.ExpiresAt,
	})
}
