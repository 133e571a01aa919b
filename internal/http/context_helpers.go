package httpx

import (
	"context"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/route"
)

// Unexported context key types avoid collisions across packages.
// All handlers and middleware use the keys defined here.
type (
	sessionKey     struct{}
	routeKey       struct{}
	requestInfoKey struct{}
)

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context, or nil.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// CurrentUser returns the signed-in member, or nil for anonymous visitors.
func CurrentUser(ctx context.Context) *domainauth.User {
	s := GetSessionFromContext(ctx)
	if !s.IsAuthenticated() {
		return nil
	}
	return s.User
}

// backendToken returns the token forwarded to the member backend, or "".
func backendToken(ctx context.Context) string {
	if s := GetSessionFromContext(ctx); s != nil {
		return s.BackendToken
	}
	return ""
}

// setRouteInContext records the matched route descriptor.
func setRouteInContext(ctx context.Context, d route.Descriptor) context.Context {
	return context.WithValue(ctx, routeKey{}, d)
}

// RouteFromContext returns the descriptor of the page being served.
func RouteFromContext(ctx context.Context) (route.Descriptor, bool) {
	d, ok := ctx.Value(routeKey{}).(route.Descriptor)
	return d, ok
}

// requestInfo is shared by reference between Instrument and the handlers below it,
// so a label set after routing is visible when the request completes.
type requestInfo struct {
	route string
}

func setRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// labelRoute names the request for metrics and access logs.
func labelRoute(ctx context.Context, name string) {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok && info != nil {
		info.route = name
	}
}
