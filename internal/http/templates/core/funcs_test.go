package core

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
)

func TestSeq(t *testing.T) {
	assert.Nil(t, Seq(0))
	assert.Equal(t, []int{1, 2, 3}, Seq(3))
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Administrator", RoleLabel(domainauth.RoleAdmin))
	assert.Equal(t, "Deactivated", RoleLabel(domainauth.RoleBanned))
	assert.Equal(t, "weird", RoleLabel(domainauth.Role("weird")))
}

func TestFuncs_RenderSection(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(page string) string { return page + "-content" },
		Now:                func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(
		`{{define "greet-content"}}hi {{.}}{{end}}{{define "page"}}<p>{{renderSection "greet" .}}</p>{{end}}`,
	))

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "page", "<b>"))
	assert.Equal(t, "<p>hi &lt;b&gt;</p>", buf.String())
}

func TestFuncs_RenderSectionWithoutTemplate(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(p string) string { return p }})
	render, ok := funcs["renderSection"].(func(string, any) (template.HTML, error))
	require.True(t, ok)
	_, err := render("x", nil)
	require.Error(t, err)
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("a", 250)
	desc := "<p>" + long + ` <a href="https://example.com/tickets" target="_blank" rel="nofollow noreferrer noopener">details &amp; tickets</a></p><p>Second</p>`

	assert.Equal(t, long+" details & tickets Second", Excerpt(desc, 280))
	assert.Equal(t, long+" details…", Excerpt(desc, 259))
	assert.Equal(t, "", Excerpt("", 10))
}

func TestFuncs_ExcerptIsEscapedAsText(t *testing.T) {
	funcs := Funcs(Deps{ContentTemplateFor: func(p string) string { return p }})
	tmpl := template.Must(template.New("card").Funcs(funcs).Parse(`<p>{{excerpt . 12}}</p>`))

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, `<a href="https://example.com/x">Tom &amp; Jerry</a> go`))
	assert.Equal(t, "<p>Tom &amp; Jerry…</p>", buf.String())
}
