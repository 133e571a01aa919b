package route

import "github.com/memberhub/portal/internal/domain/access"

// Route names.
const (
	Welcome            = "welcome"
	AboutUs            = "aboutus"
	Membership         = "membership"
	PublicEvents       = "public_events"
	AccountPending     = "account_pending"
	AccountDeactivated = "account_deactivated"

	Signup         = "signup"
	Login          = "login"
	ForgotPassword = "forgot_password"
	VerifyEmail    = "verify_email"
	ResetPassword  = "reset_password"

	Dashboard     = "dashboard"
	Profiles      = "profiles"
	ProfileEdit   = "profile_edit"
	Profile       = "profile"
	Events        = "events"
	Announcements = "announcements"

	AdminPermissions   = "admin_permissions"
	AdminEvents        = "admin_events"
	AdminEventEdit     = "admin_event_edit"
	AdminAnnouncements = "admin_announcements"
	AdminMessages      = "admin_messages"
	AdminOverview      = "admin_overview"
)

// DefaultTable returns the portal's routing surface.
func DefaultTable() *Table {
	return NewTable(
		Descriptor{Name: Welcome, Pattern: "/", Layout: LayoutPublic, Guard: access.GuardNone},
		Descriptor{Name: AboutUs, Pattern: "/aboutus", Layout: LayoutPublic, Guard: access.GuardNone},
		Descriptor{Name: Membership, Pattern: "/membership", Layout: LayoutPublic, Guard: access.GuardNone},
		Descriptor{Name: PublicEvents, Pattern: "/public_events", Layout: LayoutPublic, Guard: access.GuardNone},
		Descriptor{Name: AccountPending, Pattern: "/account-pending", Layout: LayoutPublic, Guard: access.GuardNone},
		Descriptor{Name: AccountDeactivated, Pattern: "/account-deactivated", Layout: LayoutPublic, Guard: access.GuardNone},

		Descriptor{Name: Signup, Pattern: "/signup", Layout: LayoutAuth, Guard: access.GuardUnauthenticatedOnly},
		Descriptor{Name: Login, Pattern: "/login", Layout: LayoutAuth, Guard: access.GuardUnauthenticatedOnly},
		Descriptor{Name: ForgotPassword, Pattern: "/forgot-password", Layout: LayoutAuth, Guard: access.GuardUnauthenticatedOnly},
		Descriptor{Name: VerifyEmail, Pattern: "/verify-email", Layout: LayoutAuth, Guard: access.GuardNone},
		Descriptor{Name: ResetPassword, Pattern: "/reset-password/{token}", Layout: LayoutAuth, Guard: access.GuardNone},

		Descriptor{Name: Dashboard, Pattern: "/dashboard", Layout: LayoutMember, Guard: access.GuardAuthenticated},
		Descriptor{Name: Profiles, Pattern: "/profiles", Layout: LayoutMember, Guard: access.GuardAuthenticated},
		Descriptor{Name: ProfileEdit, Pattern: "/profile/edit", Layout: LayoutMember, Guard: access.GuardAuthenticated},
		Descriptor{Name: Profile, Pattern: "/profile/{id}", Layout: LayoutMember, Guard: access.GuardAuthenticated},
		Descriptor{Name: Events, Pattern: "/events", Layout: LayoutMember, Guard: access.GuardAuthenticated},
		Descriptor{Name: Announcements, Pattern: "/announcements", Layout: LayoutMember, Guard: access.GuardAuthenticated},

		Descriptor{Name: AdminPermissions, Pattern: "/admin/permissions", Layout: LayoutAdmin, Guard: access.GuardAuthenticatedAdmin},
		Descriptor{Name: AdminEvents, Pattern: "/admin/events", Layout: LayoutAdmin, Guard: access.GuardAuthenticatedAdmin},
		Descriptor{Name: AdminEventEdit, Pattern: "/admin/events/{eventId}", Layout: LayoutAdmin, Guard: access.GuardAuthenticatedAdmin},
		Descriptor{Name: AdminAnnouncements, Pattern: "/admin/announcements", Layout: LayoutAdmin, Guard: access.GuardAuthenticatedAdmin},
		Descriptor{Name: AdminMessages, Pattern: "/admin/messages", Layout: LayoutAdmin, Guard: access.GuardAuthenticatedAdmin},
		Descriptor{Name: AdminOverview, Pattern: "/admin/adminpage", Layout: LayoutAdmin, Guard: access.GuardAuthenticatedAdmin},
	)
}
