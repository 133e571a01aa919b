package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTerminator struct {
	ended []string
	err   error
}

func (s *stubTerminator) Logout(_ context.Context, sessionID string) error {
	s.ended = append(s.ended, sessionID)
	return s.err
}

func TestAuthHandlers_Logout(t *testing.T) {
	tests := []struct {
		name      string
		cookie    string
		err       error
		wantEnded []string
	}{
		{name: "ends the session", cookie: "sess-9", wantEnded: []string{"sess-9"}},
		{name: "backend failure still signs out", cookie: "sess-9", err: errors.New("backend down"), wantEnded: []string{"sess-9"}},
		{name: "no cookie", wantEnded: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTerminator{err: tt.err}
			h := &AuthHandlers{Svc: svc, Logger: discardLogger()}
			r := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			h.Logout(w, r)

			assert.Equal(t, tt.wantEnded, svc.ended)
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/?notice=signed-out", w.Header().Get("Location"))
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, -1, cookies[0].MaxAge)
		})
	}
}

func TestAuthHandlers_Status(t *testing.T) {
	h := &AuthHandlers{}

	w := httptest.NewRecorder()
	h.Status(w, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	r = r.WithContext(SetSessionInContext(r.Context(), sessionWithRole(domainauth.RoleModerator)))
	w = httptest.NewRecorder()
	h.Status(w, r)

	var body struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, "u-1", body.User.ID)
	assert.Equal(t, string(domainauth.RoleModerator), body.User.Role)
}
