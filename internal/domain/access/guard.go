// Package access decides whether a session may see a page.
// Everything here is pure: no I/O, no session mutation.
package access

import (
	"github.com/memberhub/portal/internal/domain/auth"
)

// GuardKind names the access rule attached to a route.
type GuardKind int

const (
	// GuardNone lets everyone through.
	GuardNone GuardKind = iota
	// GuardUnauthenticatedOnly keeps signed-in members out of the login funnel.
	GuardUnauthenticatedOnly
	// GuardAuthenticated admits active members.
	GuardAuthenticated
	// GuardAuthenticatedAdmin admits active admins and moderators.
	GuardAuthenticatedAdmin
)

// Redirect targets.
const (
	PathLogin              = "/login"
	PathDashboard          = "/dashboard"
	PathAccountPending     = "/account-pending"
	PathAccountDeactivated = "/account-deactivated"
)

var guardNames = map[GuardKind]string{
	GuardNone:                "none",
	GuardUnauthenticatedOnly: "unauthenticated-only",
	GuardAuthenticated:       "authenticated",
	GuardAuthenticatedAdmin:  "authenticated-admin",
}

func (k GuardKind) String() string {
	if name, ok := guardNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseGuardKind is the inverse of GuardKind.String.
func ParseGuardKind(s string) (GuardKind, bool) {
	for k, name := range guardNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Decision is the outcome of a guard: allow, or redirect to RedirectTo.
type Decision struct {
	RedirectTo string
}

// Allowed reports whether the page may render.
func (d Decision) Allowed() bool { return d.RedirectTo == "" }

// Outcome is a short label suitable for logs and metrics.
func (d Decision) Outcome() string {
	switch d.RedirectTo {
	case "":
		return "allow"
	case PathLogin:
		return "login"
	case PathDashboard:
		return "dashboard"
	case PathAccountPending:
		return "pending"
	case PathAccountDeactivated:
		return "deactivated"
	default:
		return "redirect"
	}
}

var allow = Decision{}

func redirect(path string) Decision { return Decision{RedirectTo: path} }

// Decide evaluates kind against s. Checks run in a fixed order and the first match wins:
// authentication, then pending, then banned, then staff membership.
// A nil session is anonymous. Unknown kinds send the visitor to the login page.
func Decide(kind GuardKind, s *auth.Session) Decision {
	switch kind {
	case GuardNone:
		return allow
	case GuardUnauthenticatedOnly:
		if s.IsAuthenticated() {
			return redirect(PathDashboard)
		}
		return allow
	case GuardAuthenticated:
		return decideActive(s)
	case GuardAuthenticatedAdmin:
		if d := decideActive(s); !d.Allowed() {
			return d
		}
		if !s.Role().IsStaff() {
			return redirect(PathDashboard)
		}
		return allow
	default:
		return redirect(PathLogin)
	}
}

func decideActive(s *auth.Session) Decision {
	if !s.IsAuthenticated() {
		return redirect(PathLogin)
	}
	switch s.Role() {
	case auth.RolePending:
		return redirect(PathAccountPending)
	case auth.RoleBanned:
		return redirect(PathAccountDeactivated)
	case auth.RoleMember, auth.RoleModerator, auth.RoleAdmin:
		return allow
	default:
		// Sessions are validated on construction; anything else is treated as signed out.
		return redirect(PathLogin)
	}
}
