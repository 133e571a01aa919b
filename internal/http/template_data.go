package httpx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/memberhub/portal/internal/domain/model"
	"github.com/memberhub/portal/internal/domain/route"
	apperrors "github.com/memberhub/portal/internal/errors"
)

// PageMeta names the page being rendered.
type PageMeta struct {
	Title       string
	CurrentPage string // route name; selects the content template
}

// basePageData builds the data every layout needs: page identity, the visitor and the CSRF token.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := route.LayoutPublic
	if d, ok := RouteFromContext(r.Context()); ok {
		layout = d.Layout
		if meta.CurrentPage == "" {
			meta.CurrentPage = d.Name
		}
	}

	user := CurrentUser(r.Context())
	data := map[string]any{
		"Title":           meta.Title,
		"CurrentPage":     meta.CurrentPage,
		"Layout":          string(layout),
		"Path":            r.URL.Path,
		"CSRFToken":       GetCSRFToken(r),
		"IsAuthenticated": user != nil,
		"IsStaff":         user != nil && user.Role.IsStaff(),
		"Errors":          map[string]string{},
	}
	if user != nil {
		data["User"] = user
	}
	if notice := r.URL.Query().Get("notice"); notice != "" {
		if msg, ok := notices[notice]; ok {
			data["Notice"] = msg
		}
	}
	if code := r.URL.Query().Get("error"); code != "" {
		if msg, ok := failures[code]; ok {
			data["Error"] = true
			data["ErrorMessage"] = msg
		}
	}
	return data
}

// failures are the error messages a redirect may request via ?error=<code>.
//
//nolint:gochecknoglobals // static read-only lookup
var failures = map[string]string{
	string(apperrors.ErrCodeForbidden):   "You are not allowed to do that.",
	string(apperrors.ErrCodeUnavailable): "The member service is unavailable right now. Please try again shortly.",
	string(apperrors.ErrCodeInternal):    "An error occurred. Please try again.",
}

// notices are the flash messages a redirect may request via ?notice=.
// Only known keys render so the query string cannot inject arbitrary text.
//
//nolint:gochecknoglobals // static read-only lookup
var notices = map[string]string{
	"signed-out":     "You have been signed out.",
	"verified":       "Your e-mail address is verified.",
	"reset-sent":     "If that address is registered, a reset link is on its way.",
	"password-reset": "Your password has been changed. Please sign in.",
	"message-sent":   "Thanks! Your message has been sent.",
	"saved":          "Changes saved.",
	"deleted":        "Deleted.",
	"created":        "Created.",
}

// withNotice appends ?notice=key to path.
func withNotice(path, key string) string {
	return path + "?notice=" + url.QueryEscape(key)
}

// PaginationData describes a page-numbered list.
type PaginationData struct {
	Page       int // 1-based
	TotalPages int
	BasePath   string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithPagination adds page numbers and PrevURL/NextURL. Other query params, such as the tab, are kept.
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	b.data["Page"] = opts.Page
	b.data["TotalPages"] = opts.TotalPages
	b.data["HasPrev"] = opts.Page > 1
	b.data["HasNext"] = opts.Page < opts.TotalPages
	if opts.Page > 1 {
		b.data["PrevURL"] = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page-1)
	}
	if opts.Page < opts.TotalPages {
		b.data["NextURL"] = buildPageURL(opts.BasePath, b.r.URL.Query(), opts.Page+1)
	}
	first, last := pageWindow(opts.Page, opts.TotalPages)
	pages := make([]pageLink, 0, last-first+1)
	for i := first; i <= last; i++ {
		pages = append(pages, pageLink{
			Number:  i,
			URL:     buildPageURL(opts.BasePath, b.r.URL.Query(), i),
			Current: i == opts.Page,
		})
	}
	b.data["Pages"] = pages
	return b
}

// maxPageLinks bounds the numbered links shown around the current page.
const maxPageLinks = 9

// pageWindow returns the first and last page numbers to link, centred on page where possible.
func pageWindow(page, total int) (int, int) {
	if total < 1 {
		return 1, 0
	}
	page = min(max(page, 1), total)
	first := max(1, page-maxPageLinks/2)
	last := min(total, first+maxPageLinks-1)
	first = max(1, last-maxPageLinks+1)
	return first, last
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildPageURL returns basePath with page set, preserving other non-empty query params.
func buildPageURL(basePath string, q url.Values, page int) string {
	qq := make(url.Values, len(q)+1)
	for k, v := range q {
		if k == "page" || k == "notice" || k == "error" || len(v) == 0 || v[0] == "" {
			continue
		}
		qq[k] = v[:1]
	}
	qq.Set("page", strconv.Itoa(page))
	return basePath + "?" + qq.Encode()
}

// pageParam returns the 1-based page number from the query, defaulting to 1
// and capped at model.MaxPage.
func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, model.MaxPage)
}
