package httpx

import "github.com/memberhub/portal/internal/domain/route"

// Template paths used for loading templates in tests and dev mode.
const (
	TemplatePathFromRoot = "web/templates"       // From project root
	TemplatePathFromTest = "../../web/templates" // From internal/http test files
	StaticPathFromRoot   = "web/static"
)

// Cookie and form field names.
const (
	DefaultSessionCookieName = "portal_session"
	formFieldRedirect        = "redirect_uri"
)

// List sizes for the dashboard.
const (
	dashboardEventCount        = 3
	dashboardAnnouncementCount = 3
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

// PageNotFound is the CurrentPage of the terminal not-found page.
const PageNotFound = "not_found"

// contentTemplates maps CurrentPage (a route name) to the template that renders its body.
//
//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	route.Welcome:            "welcome-content",
	route.AboutUs:            "aboutus-content",
	route.Membership:         "membership-content",
	route.PublicEvents:       "public-events-content",
	route.AccountPending:     "account-pending-content",
	route.AccountDeactivated: "account-deactivated-content",

	route.Signup:         "signup-content",
	route.Login:          "login-content",
	route.ForgotPassword: "forgot-password-content",
	route.VerifyEmail:    "verify-email-content",
	route.ResetPassword:  "reset-password-content",

	route.Dashboard:     "dashboard-content",
	route.Profiles:      "profiles-content",
	route.ProfileEdit:   "profile-edit-content",
	route.Profile:       "profile-content",
	route.Events:        "events-content",
	route.Announcements: "announcements-content",

	route.AdminPermissions:   "admin-permissions-content",
	route.AdminEvents:        "admin-events-content",
	route.AdminEventEdit:     "admin-event-form-content",
	route.AdminAnnouncements: "admin-announcements-content",
	route.AdminMessages:      "admin-messages-content",
	route.AdminOverview:      "admin-overview-content",

	PageNotFound: "not-found-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages render the not-found body.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "not-found-content"
}
