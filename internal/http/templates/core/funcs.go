// Package core provides the template helpers shared by every portal page.
package core

import (
	"bytes"
	"errors"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/http/uiutil"
)

// Deps holds dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	// Location is used to display event times. Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": func(t time.Time) string { return uiutil.FormatFriendlyDateTime(t, deps.Location) },
		"friendlyDate": uiutil.FormatFriendlyDate,
		"relativeTime": func(t time.Time) string { return uiutil.FriendlyRelativeTime(t, now()) },
		"inputTime":    func(t time.Time) string { return uiutil.FormatDateTimeLocal(t, deps.Location) },
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"seq":          Seq,
		"excerpt":      Excerpt,
		"richText":     RichText,
		"roleLabel":    RoleLabel,
		"roles":        domainauth.Roles,
		"lower":        strings.ToLower,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}
	return funcs
}

// Seq returns 1..n for page links.
func Seq(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// RichText marks event descriptions and announcement bodies as HTML.
// Those fields pass through the service sanitizer before they reach a template.
func RichText(s string) template.HTML {
	// #nosec G203 - sanitized by service.TextSanitizer (bluemonday) on the way in and out.
	return template.HTML(s)
}

var excerptPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// Excerpt reduces rich text to at most limit runes of plain text for previews.
// The result is an ordinary string and is escaped by the template.
func Excerpt(s string, limit int) string {
	text := html.UnescapeString(excerptPolicy.Sanitize(s))
	return uiutil.TruncateWithEllipsis(strings.Join(strings.Fields(text), " "), limit)
}

// RoleLabel renders a role for display.
func RoleLabel(r domainauth.Role) string {
	switch r {
	case domainauth.RolePending:
		return "Pending approval"
	case domainauth.RoleMember:
		return "Member"
	case domainauth.RoleModerator:
		return "Moderator"
	case domainauth.RoleAdmin:
		return "Administrator"
	case domainauth.RoleBanned:
		return "Deactivated"
	default:
		return string(r)
	}
}
