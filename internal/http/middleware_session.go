package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/memberhub/portal/internal/domain/access"
	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/route"
	"github.com/memberhub/portal/internal/observability/metrics"
	"github.com/memberhub/portal/internal/ports"
	"github.com/memberhub/portal/internal/service"
)

// SessionLoader resolves a session cookie to a session.
type SessionLoader interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// SessionCookie describes the browser cookie that carries the session ID.
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool // Always mark the cookie Secure, regardless of how the request arrived
}

func (c SessionCookie) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

func (c SessionCookie) secure(r *http.Request) bool {
	return c.Secure || r.TLS != nil || isForwardedHTTPS(r)
}

// read returns the session ID sent by the browser, or "".
func (c SessionCookie) read(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return ck.Value
}

// set issues the session cookie. It lives until the session expires.
func (c SessionCookie) set(w http.ResponseWriter, r *http.Request, s *domainauth.Session) {
	ck := &http.Cookie{
		Name:     c.name(),
		Value:    s.ID,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
	}
	if !s.ExpiresAt.IsZero() {
		ck.Expires = s.ExpiresAt.UTC()
	}
	http.SetCookie(w, ck)
}

// clear expires the cookie, mirroring the attributes used when it was set.
func (c SessionCookie) clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadSessionOptions configures LoadSession.
type LoadSessionOptions struct {
	Sessions SessionLoader
	Cookie   SessionCookie
	Logger   *slog.Logger
}

// LoadSession takes the request's session snapshot once, before routing. Guards and pages
// read that snapshot from the context; a logout finishing meanwhile affects only later requests.
// Unknown, expired or revoked sessions clear the cookie and the request continues anonymously.
func LoadSession(opts LoadSessionOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := opts.Cookie.read(r)
			if id == "" || opts.Sessions == nil || strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			session, err := opts.Sessions.GetSession(r.Context(), id)
			switch {
			case err == nil:
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			case errors.Is(err, ports.ErrSessionNotFound), errors.Is(err, service.ErrSessionRevoked):
				opts.Cookie.clear(w, r)
			default:
				logger.WarnContext(r.Context(), "session lookup failed; continuing anonymously", "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithLayout records the matched route so the renderer picks its shell and the
// request is labelled with the route name.
func WithLayout(d route.Descriptor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			labelRoute(r.Context(), d.Name)
			next.ServeHTTP(w, r.WithContext(setRouteInContext(r.Context(), d)))
		})
	}
}

// Guard evaluates kind against the request's session before next runs.
// On a redirect next is never invoked, so the page fetches nothing.
// Full page loads get 303 See Other; htmx requests get a guard:redirect event that
// the page script follows with location.replace.
func Guard(kind access.GuardKind, rec metrics.Recorder) func(http.Handler) http.Handler {
	rec = metrics.OrNop(rec)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := access.Decide(kind, GetSessionFromContext(r.Context()))
			rec.RecordGuardDecision(kind.String(), decision.Outcome())

			if kind != access.GuardNone {
				w.Header().Set("Cache-Control", "no-store")
			}
			if decision.Allowed() {
				next.ServeHTTP(w, r)
				return
			}
			if IsHTMX(r) {
				HTMX(w).Replace(decision.RedirectTo)
				return
			}
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
		})
	}
}
