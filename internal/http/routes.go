package httpx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	portal "github.com/memberhub/portal"
	"github.com/memberhub/portal/internal/domain/route"
	"github.com/memberhub/portal/internal/observability/metrics"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth          AuthServiceInterface
	Events        EventsService
	Members       MembersService
	Announcements AnnouncementsService
	Messages      MessagesService
	Admin         AdminOverviewService

	// Table is the page routing surface; nil selects route.DefaultTable().
	Table *route.Table
	// TemplateFS overrides where templates are read from (tests); nil picks disk in dev, embedded otherwise.
	TemplateFS fs.FS

	Cookie      SessionCookie
	CSRF        CSRFConfig
	RateLimiter *RateLimiter       // throttles credential form posts; nil disables throttling
	Compression *CompressionConfig // nil disables gzip

	Metrics        metrics.Recorder
	MetricsHandler http.Handler // served at MetricsPath when set
	MetricsPath    string

	Location *time.Location
	IsDev    bool         // Development mode flag for hot reloading, etc.
	Logger   *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter builds the portal's HTTP handler: every page of the route table behind its
// layout and guard, the form posts that belong to those pages, static files and the
// operational endpoints. Anything else is the terminal not-found page.
func NewRouter(services RouterServices) (http.Handler, error) {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Location:   services.Location,
		DevMode:    services.IsDev,
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	ui := &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		Events:        services.Events,
		Members:       services.Members,
		Announcements: services.Announcements,
		Messages:      services.Messages,
		Admin:         services.Admin,
		Cookie:        services.Cookie,
		Location:      services.Location,
		IsDev:         services.IsDev,
		Logger:        services.Logger,
	}
	authHandlers := &AuthHandlers{Svc: services.Auth, Cookie: services.Cookie, Logger: services.Logger}

	table := services.Table
	if table == nil {
		table = route.DefaultTable()
	}

	mux := http.NewServeMux()
	rt := &router{
		mux:     mux,
		csrf:    CSRFProtection(services.CSRF),
		metrics: services.Metrics,
		limiter: services.RateLimiter,
	}
	if err := rt.registerPages(table, pageHandlersFor(ui)); err != nil {
		return nil, err
	}
	rt.registerActions(table, actionsFor(ui))

	mux.Handle("POST /logout", named("logout", rt.csrf(http.HandlerFunc(authHandlers.Logout))))
	mux.Handle("GET /auth/status", named("auth_status", http.HandlerFunc(authHandlers.Status)))
	mux.Handle("GET /healthz", named("healthz", http.HandlerFunc(healthHandler)))
	mux.Handle("GET /static/", named("static", staticWithFallback(services.IsDev)))
	if services.MetricsHandler != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, named("metrics", services.MetricsHandler))
	}

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: ui}
	handler = LoadSession(LoadSessionOptions{
		Sessions: services.Auth,
		Cookie:   services.Cookie,
		Logger:   services.Logger,
	})(handler)
	if services.Compression != nil {
		handler = Compression(*services.Compression)(handler)
	}
	handler = Logging(services.logger())(handler)
	handler = Instrument(services.Metrics)(handler)
	handler = Recover(services.logger())(handler)
	return handler, nil
}

func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(portal.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		services.logger().Error("embedded templates unavailable; reading from disk", "error", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// pageHandlers serves one route: the page itself and, for form pages, its submit.
type pageHandlers struct {
	get  http.HandlerFunc
	post http.HandlerFunc
	// limited throttles post per client.
	limited bool
}

func pageHandlersFor(ui *UIHandlers) map[string]pageHandlers {
	return map[string]pageHandlers{
		route.Welcome:            {get: ui.Welcome},
		route.AboutUs:            {get: ui.AboutUs, post: ui.SendMessage},
		route.Membership:         {get: ui.Membership},
		route.PublicEvents:       {get: ui.PublicEvents},
		route.AccountPending:     {get: ui.AccountPending},
		route.AccountDeactivated: {get: ui.AccountDeactivated},

		route.Signup:         {get: ui.SignupPage, post: ui.Signup, limited: true},
		route.Login:          {get: ui.LoginPage, post: ui.Login, limited: true},
		route.ForgotPassword: {get: ui.ForgotPasswordPage, post: ui.ForgotPassword, limited: true},
		route.VerifyEmail:    {get: ui.VerifyEmailPage, post: ui.VerifyEmail},
		route.ResetPassword:  {get: ui.ResetPasswordPage, post: ui.ResetPassword},

		route.Dashboard:     {get: ui.Dashboard},
		route.Profiles:      {get: ui.Profiles},
		route.ProfileEdit:   {get: ui.ProfileEditPage, post: ui.UpdateProfile},
		route.Profile:       {get: ui.Profile},
		route.Events:        {get: ui.EventsPage},
		route.Announcements: {get: ui.AnnouncementsPage},

		route.AdminPermissions:   {get: ui.AdminPermissions},
		route.AdminEvents:        {get: ui.AdminEvents, post: ui.CreateEvent},
		route.AdminEventEdit:     {get: ui.AdminEventEdit, post: ui.UpdateEvent},
		route.AdminAnnouncements: {get: ui.AdminAnnouncements, post: ui.CreateAnnouncement},
		route.AdminMessages:      {get: ui.AdminMessages},
		route.AdminOverview:      {get: ui.AdminOverview},
	}
}

// action is a form post below a page's path. It runs behind the page's layout and guard.
type action struct {
	page    string // route name of the owning page
	pattern string
	handler http.HandlerFunc
}

func actionsFor(ui *UIHandlers) []action {
	return []action{
		{page: route.AdminPermissions, pattern: "POST /admin/permissions/approve", handler: ui.ApproveMember},
		{page: route.AdminPermissions, pattern: "POST /admin/permissions/reject", handler: ui.RejectMember},
		{page: route.AdminPermissions, pattern: "POST /admin/permissions/role", handler: ui.ChangeRole},
		{page: route.AdminEvents, pattern: "POST /admin/events/{eventId}/delete", handler: ui.DeleteEvent},
		{page: route.AdminAnnouncements, pattern: "POST /admin/announcements/{id}/delete", handler: ui.DeleteAnnouncement},
		{page: route.AdminMessages, pattern: "POST /admin/messages/{id}/delete", handler: ui.DeleteMessage},
	}
}

type router struct {
	mux     *http.ServeMux
	csrf    func(http.Handler) http.Handler
	metrics metrics.Recorder
	limiter *RateLimiter
}

// registerPages mounts every descriptor. A descriptor without a handler is a wiring bug.
func (rt *router) registerPages(table *route.Table, handlers map[string]pageHandlers) error {
	for _, d := range table.Descriptors() {
		ph, ok := handlers[d.Name]
		if !ok || ph.get == nil {
			return fmt.Errorf("no handler for route %q", d.Name)
		}
		path := muxPath(d.Pattern)
		rt.mux.Handle("GET "+path, rt.page(d, ph.get))
		if ph.post == nil {
			continue
		}
		var post http.Handler = ph.post
		if ph.limited && rt.limiter != nil {
			post = rt.limiter.Middleware(d.Name)(post)
		}
		rt.mux.Handle("POST "+path, rt.page(d, post))
	}
	return nil
}

func (rt *router) registerActions(table *route.Table, actions []action) {
	for _, a := range actions {
		d, ok := table.Lookup(a.page)
		if !ok {
			continue
		}
		rt.mux.Handle(a.pattern, rt.page(d, a.handler))
	}
}

// page wraps h as WithLayout -> Guard -> CSRF -> h. The guard runs before anything
// the page does, so a redirected visitor triggers no backend calls.
func (rt *router) page(d route.Descriptor, h http.Handler) http.Handler {
	return WithLayout(d)(Guard(d.Guard, rt.metrics)(rt.csrf(h)))
}

// muxPath converts a table pattern into a ServeMux path. The root page must match "/" only.
func muxPath(pattern string) string {
	if pattern == "/" {
		return "/{$}"
	}
	return pattern
}

// staticWithFallback serves /static/* assets.
// In dev mode (isDev=true), serves from disk so edits show without a rebuild.
// In production mode (isDev=false), serves from embedded FS.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))), false)
	}
	staticSub, err := fs.Sub(portal.StaticFS, StaticPathFromRoot)
	if err != nil {
		slog.Error("embedded static assets unavailable; serving from disk", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), true)
}

// staticWithCacheHeaders adds cache headers: short-lived caching for embedded assets, none in dev.
// Directory listings are refused.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps the ServeMux and turns "no route" into the terminal not-found page.
// A path whose pattern exists only for another method (405 from ServeMux) is not a page either
// and gets the same answer.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern == "" {
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}
	h.mux.ServeHTTP(w, r)
}
