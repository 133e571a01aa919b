package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/route"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paramSegment = regexp.MustCompile(`\{[^}]+\}`)

func concretePath(pattern string) string {
	return paramSegment.ReplaceAllString(pattern, "e-1")
}

func lastRequest(t *testing.T, rec *fakeRecorder) string {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.requests)
	return rec.requests[len(rec.requests)-1]
}

func TestRouter_EveryRouteIsMountedWhereTheTableSays(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleAdmin))
	table := route.DefaultTable()

	for _, d := range table.Descriptors() {
		t.Run(d.Name, func(t *testing.T) {
			path := concretePath(d.Pattern)
			matched, _, ok := table.Match(path)
			require.True(t, ok)
			require.Equal(t, d.Name, matched.Name)

			w := p.get(path)
			assert.NotEqual(t, http.StatusInternalServerError, w.Code, w.Body.String())
			assert.True(t, strings.HasPrefix(lastRequest(t, p.metrics), d.Name+" GET "),
				"router served %s as %q", path, lastRequest(t, p.metrics))
		})
	}
}

func TestRouter_GuardRedirects(t *testing.T) {
	tests := []struct {
		name    string
		session *domainauth.Session
		path    string
		want    string
	}{
		{name: "anonymous on member page", path: "/dashboard", want: "/login"},
		{name: "anonymous on admin page", path: "/admin/events", want: "/login"},
		{name: "pending member", session: sessionWithRole(domainauth.RolePending), path: "/events", want: "/account-pending"},
		{name: "banned member", session: sessionWithRole(domainauth.RoleBanned), path: "/profiles", want: "/account-deactivated"},
		{name: "banned on admin page", session: sessionWithRole(domainauth.RoleBanned), path: "/admin/messages", want: "/account-deactivated"},
		{name: "member on admin page", session: sessionWithRole(domainauth.RoleMember), path: "/admin/permissions", want: "/dashboard"},
		{name: "member on login", session: sessionWithRole(domainauth.RoleMember), path: "/login", want: "/dashboard"},
		{name: "pending on signup", session: sessionWithRole(domainauth.RolePending), path: "/signup", want: "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPortal(t, tt.session)

			w := p.get(tt.path)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Zero(t, p.backendCalls(), "a redirected visitor must not trigger page fetches")
		})
	}
}

func TestRouter_GuardRedirectForHTMX(t *testing.T) {
	p := newTestPortal(t, nil)

	w := p.get("/events?tab=past", "Hx-Request", "true")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none", w.Header().Get("Hx-Reswap"))
	assert.Empty(t, w.Header().Get("Location"))
	assert.Empty(t, w.Body.String())

	var trigger map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("Hx-Trigger")), &trigger))
	assert.Equal(t, "/login", trigger[guardRedirectEvent]["path"])
	assert.Zero(t, p.backendCalls())
}

func TestRouter_GuardAllows(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleModerator))

	w := p.get("/admin/events")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "Spring gala")
	assert.Contains(t, w.Body.String(), `class="admin-nav"`)

	p.metrics.mu.Lock()
	assert.Contains(t, p.metrics.guards, "authenticated-admin:allow")
	p.metrics.mu.Unlock()
}

func TestRouter_PublicPagesAreCacheable(t *testing.T) {
	p := newTestPortal(t, nil)

	w := p.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "Welcome")
	assert.Contains(t, w.Body.String(), `name="csrf-token"`)
}

func TestRouter_NotFound(t *testing.T) {
	t.Run("browser gets the page without a redirect", func(t *testing.T) {
		for _, session := range []*domainauth.Session{nil, sessionWithRole(domainauth.RoleMember)} {
			p := newTestPortal(t, session)
			w := p.get("/does-not-exist")

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Empty(t, w.Header().Get("Location"))
			assert.Contains(t, w.Body.String(), "Page not found")
			assert.Contains(t, w.Body.String(), "/does-not-exist")
			assert.Equal(t, PageNotFound+" GET Not Found", lastRequest(t, p.metrics))
		}
	})

	t.Run("nested unknown path under a known prefix", func(t *testing.T) {
		p := newTestPortal(t, sessionWithRole(domainauth.RoleAdmin))
		w := p.get("/admin/events/e-1/extra")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("API client gets JSON", func(t *testing.T) {
		p := newTestPortal(t, nil)
		r := httptest.NewRequest(http.MethodGet, "/nope", nil)
		r.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		p.handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"not_found","message":"not found"}`, w.Body.String())
	})

	t.Run("known path with an unsupported method", func(t *testing.T) {
		p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))
		r := httptest.NewRequest(http.MethodDelete, "/dashboard", nil)
		r.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		p.handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_Healthz(t *testing.T) {
	p := newTestPortal(t, nil)
	w := p.get("/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, healthResponse, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRouter_StaticAssets(t *testing.T) {
	p := newTestPortal(t, nil)

	w := p.get("/static/css/portal.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	w = p.get("/static/css/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoadSession_ClearsStaleCookie(t *testing.T) {
	p := newTestPortal(t, nil) // the cookie names a session the store does not know

	w := p.get("/dashboard")

	assert.Equal(t, "/login", w.Header().Get("Location"))
	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == DefaultSessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared, "stale session cookie should be cleared")
	assert.Equal(t, -1, cleared.MaxAge)
	assert.True(t, cleared.HttpOnly)
}

func TestLoadSession_StoreFailureContinuesAnonymously(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))
	p.auth.getErr = errors.New("redis: connection refused")

	w := p.get("/dashboard")

	assert.Equal(t, "/login", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, DefaultSessionCookieName, c.Name, "a store outage must not sign the member out")
	}
}

func TestRouter_CSRFRequiredOnPosts(t *testing.T) {
	p := newTestPortal(t, nil)
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "body": {"Hello"}}
	r := httptest.NewRequest(http.MethodPost, "/aboutus", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	p.handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, p.messages.sent)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	rec := &fakeRecorder{}
	limiter := NewRateLimiter(RateLimiterConfig{PerMinute: 1, Burst: 1, Metrics: rec})
	t.Cleanup(limiter.Stop)
	p := newTestPortal(t, nil, func(s *RouterServices) { s.RateLimiter = limiter })

	form := url.Values{"email": {"ada@example.com"}, "password": {"correct horse"}}
	first := p.post("/login", form)
	second := p.post("/login", form)

	assert.Equal(t, http.StatusSeeOther, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	assert.Equal(t, []string{route.Login}, rec.rateLimited)
}

func TestRouter_Login(t *testing.T) {
	t.Run("honours a local redirect", func(t *testing.T) {
		p := newTestPortal(t, nil)
		w := p.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"pw"}, "redirect_uri": {"/events?tab=past"}})

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/events?tab=past", w.Header().Get("Location"))
		var session *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == DefaultSessionCookieName {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.Equal(t, testSessionID, session.Value)
		assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
	})

	t.Run("ignores an external redirect", func(t *testing.T) {
		for _, target := range []string{"https://evil.example/", "//evil.example/", `/\evil.example/`, `\\evil.example`} {
			p := newTestPortal(t, nil)
			w := p.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"pw"}, "redirect_uri": {target}})
			assert.Equal(t, "/dashboard", w.Header().Get("Location"), target)
		}
	})

	t.Run("unverified accounts verify first", func(t *testing.T) {
		p := newTestPortal(t, nil)
		p.auth.loginFunc = func(string, string) (*domainauth.Session, error) {
			s := sessionWithRole(domainauth.RolePending)
			s.User.IsVerified = false
			return s, nil
		}
		w := p.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"pw"}})
		assert.Equal(t, "/verify-email", w.Header().Get("Location"))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		p := newTestPortal(t, nil)
		p.auth.loginFunc = func(string, string) (*domainauth.Session, error) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		w := p.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong"}})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Your credentials were not accepted.")
		assert.Contains(t, w.Body.String(), `value="ada@example.com"`)
	})

	t.Run("invalid form never reaches the backend", func(t *testing.T) {
		p := newTestPortal(t, nil)
		w := p.post("/login", url.Values{"email": {"not-an-address"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), errMsgFixBelow)
		assert.Contains(t, w.Body.String(), "Enter a valid e-mail address.")
		assert.NotContains(t, p.auth.calls, "Login")
	})

	t.Run("htmx submit gets Hx-Redirect", func(t *testing.T) {
		p := newTestPortal(t, nil)
		w := p.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"pw"}}, "Hx-Request", "true")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Hx-Redirect"))
	})
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "/fallback"},
		{in: "/events?tab=past", want: "/events?tab=past"},
		{in: "/", want: "/"},
		{in: "events", want: "/fallback"},
		{in: "//evil.example", want: "/fallback"},
		{in: `/\evil.example/`, want: "/fallback"},
		{in: `/events\..`, want: "/fallback"},
		{in: "/\tevil.example", want: "/fallback"},
		{in: "https://evil.example/", want: "/fallback"},
		{in: "javascript:alert(1)", want: "/fallback"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in, "/fallback"), tt.in)
	}
}

func TestRouter_SignupValidatesPasswords(t *testing.T) {
	p := newTestPortal(t, nil)
	w := p.post("/signup", url.Values{
		"firstname":        {"Ada"},
		"lastname":         {"Lovelace"},
		"email":            {"ada@example.com"},
		"password":         {"longenough"},
		"confirm_password": {"different1"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match.")
	assert.NotContains(t, p.auth.calls, "Signup")

	w = p.post("/signup", url.Values{
		"firstname":        {"Ada"},
		"lastname":         {"Lovelace"},
		"email":            {"ada@example.com"},
		"password":         {"longenough"},
		"confirm_password": {"longenough"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/verify-email", w.Header().Get("Location"))
}

func TestRouter_ResetPasswordUsesPathToken(t *testing.T) {
	p := newTestPortal(t, nil)
	w := p.post("/reset-password/tok-123", url.Values{"password": {"newpassword"}, "confirm_password": {"newpassword"}})

	assert.Equal(t, "/login?notice=password-reset", w.Header().Get("Location"))
	assert.Equal(t, "tok-123", p.auth.resetToken)
}

func TestRouter_Logout(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))

	w := p.post("/logout", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?notice=signed-out", w.Header().Get("Location"))
	assert.Equal(t, []string{testSessionID}, p.auth.loggedOut)

	follow := p.get("/?notice=signed-out")
	assert.Contains(t, follow.Body.String(), "You have been signed out.")
}

func TestRouter_AuthStatus(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleModerator))
	w := p.get("/auth/status")

	require.Equal(t, http.StatusOK, w.Code)
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
	assert.Equal(t, "moderator", body.User.Role)

	anon := newTestPortal(t, nil).get("/auth/status")
	assert.JSONEq(t, `{"authenticated":false}`, anon.Body.String())
}

func TestRouter_DashboardSectionsFailIndependently(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))
	p.events.listErr = apperrors.Unavailable("backend down")

	w := p.get("/dashboard")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "The member service is unavailable right now.")
	assert.Contains(t, body, "Welcome", "announcements still render")
}

func TestRouter_EventTabsAsPartial(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))

	w := p.get("/events?tab=past", "Hx-Request", "true")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Board meeting")
	assert.Contains(t, body, `class="active">Past`)
	assert.Contains(t, body, "/events?page=2&amp;tab=past")
}

func TestRouter_ContactForm(t *testing.T) {
	p := newTestPortal(t, nil)

	w := p.post("/aboutus", url.Values{"name": {"Grace"}, "email": {"grace@example.com"}, "body": {"Hi there"}})

	assert.Equal(t, "/aboutus?notice=message-sent", w.Header().Get("Location"))
	require.Len(t, p.messages.sent, 1)
	assert.Equal(t, "Grace", p.messages.sent[0].Name)
}

func TestRouter_ProfileEdit(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))

	w := p.post("/profile/edit", url.Values{"firstname": {"Ada"}, "lastname": {"King"}, "profile_image_url": {"javascript:alert(1)"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, p.members.updated)

	w = p.post("/profile/edit", url.Values{"firstname": {"Ada"}, "lastname": {"King"}})
	assert.Equal(t, "/profile/u-1?notice=saved", w.Header().Get("Location"))
	require.Len(t, p.members.updated, 1)
	assert.Equal(t, "King", p.members.updated[0].LastName)
}

func TestRouter_AdminChangeRole(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := newTestPortal(t, sessionWithRole(domainauth.RoleAdmin))
		w := p.post("/admin/permissions/role", url.Values{"user_id": {"u-2"}, "role": {"moderator"}})

		assert.Equal(t, "/admin/permissions?notice=saved", w.Header().Get("Location"))
		assert.Equal(t, []domainauth.Role{domainauth.RoleModerator}, p.members.roleCalls)
	})

	t.Run("unknown role", func(t *testing.T) {
		p := newTestPortal(t, sessionWithRole(domainauth.RoleAdmin))
		w := p.post("/admin/permissions/role", url.Values{"user_id": {"u-2"}, "role": {"superuser"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, p.members.roleCalls)
	})

	t.Run("refused by the service", func(t *testing.T) {
		p := newTestPortal(t, sessionWithRole(domainauth.RoleModerator))
		p.members.roleErr = apperrors.Forbidden("Moderators cannot grant the admin role.")
		w := p.post("/admin/permissions/role", url.Values{"user_id": {"u-2"}, "role": {"admin"}})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Moderators cannot grant the admin role.")
		assert.Contains(t, w.Body.String(), "Grace Hopper", "the console is re-rendered")
	})

	t.Run("members cannot reach the action", func(t *testing.T) {
		p := newTestPortal(t, sessionWithRole(domainauth.RoleMember))
		w := p.post("/admin/permissions/approve", url.Values{"user_id": {"u-3"}})

		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
		assert.Empty(t, p.members.approved)
	})
}

func TestRouter_AdminDeleteEvent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "deleted", want: "/admin/events?notice=deleted"},
		{name: "already gone", err: apperrors.NotFound("event"), want: "/admin/events?notice=deleted"},
		{name: "backend down", err: apperrors.Unavailable("down"), want: "/admin/events?error=unavailable"},
		{name: "unclassified", err: errors.New("boom"), want: "/admin/events?error=internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPortal(t, sessionWithRole(domainauth.RoleAdmin))
			p.events.delErr = tt.err

			w := p.post("/admin/events/e-1/delete", nil)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestRouter_AdminCreateEvent(t *testing.T) {
	p := newTestPortal(t, sessionWithRole(domainauth.RoleAdmin))

	w := p.post("/admin/events", url.Values{
		"title":      {"Summer picnic"},
		"start_date": {"2026-07-04T12:00"},
		"end_date":   {"2026-07-04T10:00"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `value="Summer picnic"`)
	assert.Empty(t, p.events.created)

	w = p.post("/admin/events", url.Values{
		"title":      {"Summer picnic"},
		"start_date": {"2026-07-04T12:00"},
		"end_date":   {"2026-07-04T16:00"},
	})
	assert.Equal(t, "/admin/events?notice=created", w.Header().Get("Location"))
	require.Len(t, p.events.created, 1)
	assert.Equal(t, 12, p.events.created[0].StartDate.Hour())
}
