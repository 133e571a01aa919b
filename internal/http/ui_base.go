package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/service"
)

// AuthServiceInterface is the account surface the pages need.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*domainauth.Session, error)
	Signup(ctx context.Context, in service.SignupInput) (*domainauth.Session, error)
	VerifyEmail(ctx context.Context, sessionID, code string) (*domainauth.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// EventsService is a minimal interface for the event pages.
type EventsService interface {
	List(ctx context.Context, token string, tab model.EventTab, page int) (*service.EventList, error)
	Upcoming(ctx context.Context, token string, n int) ([]model.Event, error)
	Get(ctx context.Context, token, id string) (*model.Event, error)
	Create(ctx context.Context, token string, in model.EventInput) (*model.Event, error)
	Update(ctx context.Context, token, id string, in model.EventInput) (*model.Event, error)
	Delete(ctx context.Context, token, id string) error
}

// MembersService is a minimal interface for profiles and the permissions console.
type MembersService interface {
	Directory(ctx context.Context, token string) ([]model.Member, error)
	Profile(ctx context.Context, token, id string) (*model.Member, error)
	UpdateProfile(ctx context.Context, token string, in model.ProfileInput) (*model.Member, error)
	Permissions(ctx context.Context, token string) (*service.PermissionsView, error)
	ChangeRole(ctx context.Context, token string, actor domainauth.User, targetID string, newRole domainauth.Role) error
	Approve(ctx context.Context, token string, actor domainauth.User, userID string) error
	Reject(ctx context.Context, token string, actor domainauth.User, userID string) error
}

// AnnouncementsService is a minimal interface for announcements.
type AnnouncementsService interface {
	List(ctx context.Context, token string, page int) (*service.AnnouncementList, error)
	Latest(ctx context.Context, token string, n int) ([]model.Announcement, error)
	Create(ctx context.Context, token string, in model.AnnouncementInput) (*model.Announcement, error)
	Delete(ctx context.Context, token, id string) error
}

// MessagesService is a minimal interface for the contact form and the admin inbox.
type MessagesService interface {
	Send(ctx context.Context, in model.MessageInput) error
	List(ctx context.Context, token string, page int) (*service.MessageList, error)
	Delete(ctx context.Context, token, id string) error
}

// AdminOverviewService feeds the admin landing page.
type AdminOverviewService interface {
	Overview(ctx context.Context, token string) (*model.AdminOverview, error)
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthServiceInterface = (*service.AuthService)(nil)
	_ EventsService        = (*service.EventService)(nil)
	_ MembersService       = (*service.MemberService)(nil)
	_ AnnouncementsService = (*service.AnnouncementService)(nil)
	_ MessagesService      = (*service.MessageService)(nil)
	_ AdminOverviewService = (*service.AdminService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	Auth          AuthServiceInterface
	Events        EventsService
	Members       MembersService
	Announcements AnnouncementsService
	Messages      MessagesService
	Admin         AdminOverviewService
	Cookie        SessionCookie
	Location      *time.Location // zone for event date inputs; nil means UTC
	IsDev         bool           // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, runs the fetch and renders. A failed fetch is logged and shown
// inline in place of the content; the visitor stays on the page.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := NewTemplateData(r, spec.Meta).Build()
	status := http.StatusOK
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "page fetch failed",
				"path", r.URL.Path,
				"error", err,
			)
			markPageError(data, err)
			if apperrors.IsNotFound(err) {
				status = http.StatusNotFound
			}
		}
	}
	h.render(w, r, status, data)
}

func markPageError(data map[string]any, err error) {
	data["Error"] = true
	data["ErrorMessage"] = inlineError(err)
}

// render writes the page, or only its content area for htmx fragment requests.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if h.T == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	if err := h.T.Render(w, r, status, data); err != nil {
		h.logAndRenderTemplateError(w, r, err)
	}
}

// renderFormError re-renders the current page with err and the submitted form values.
func (h *UIHandlers) renderFormError(w http.ResponseWriter, r *http.Request, err error, fieldErrors map[string]string, data map[string]any) {
	if err != nil && apperrors.GetCode(err) == "" {
		h.logger().ErrorContext(r.Context(), "form submission failed", "path", r.URL.Path, "error", err)
	}
	RenderError(ErrorOpts{
		W:           w,
		R:           r,
		Err:         err,
		FieldErrors: fieldErrors,
		Renderer:    h.render,
		Data:        data,
	})
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "template rendering failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<pre class="template-error">` + html.EscapeString(err.Error()) + `</pre>`))
		return
	}

	data := map[string]any{
		"Title":   "Something went wrong",
		"Code":    http.StatusInternalServerError,
		"Message": "We could not display this page. Please try again.",
	}
	if renderErr := h.T.RenderError(w, http.StatusInternalServerError, data); renderErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// actor returns the signed-in user taking an admin action.
func actor(ctx context.Context) (domainauth.User, bool) {
	u := CurrentUser(ctx)
	if u == nil {
		return domainauth.User{}, false
	}
	return *u, true
}

// formValue returns the trimmed POST form value.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns fallback when invalid.
// Browsers read a backslash as a slash, so "/\host" is as external as "//host".
func safeRedirectPath(candidate, fallback string) string {
	if candidate == "" || candidate[0] != '/' || strings.ContainsAny(candidate, "\\\x00\r\n\t") {
		return fallback
	}
	if len(candidate) > 1 && candidate[1] == '/' {
		return fallback
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	return candidate
}
