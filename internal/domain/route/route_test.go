package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhub/portal/internal/domain/access"
)

func TestDefaultTable_GuardAssignments(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		path  string
		guard access.GuardKind
	}{
		{"/", access.GuardNone},
		{"/aboutus", access.GuardNone},
		{"/membership", access.GuardNone},
		{"/public_events", access.GuardNone},
		{"/account-pending", access.GuardNone},
		{"/account-deactivated", access.GuardNone},
		{"/signup", access.GuardUnauthenticatedOnly},
		{"/login", access.GuardUnauthenticatedOnly},
		{"/forgot-password", access.GuardUnauthenticatedOnly},
		{"/verify-email", access.GuardNone},
		{"/reset-password/abc123", access.GuardNone},
		{"/dashboard", access.GuardAuthenticated},
		{"/profiles", access.GuardAuthenticated},
		{"/profile/edit", access.GuardAuthenticated},
		{"/profile/42", access.GuardAuthenticated},
		{"/events", access.GuardAuthenticated},
		{"/announcements", access.GuardAuthenticated},
		{"/admin/permissions", access.GuardAuthenticatedAdmin},
		{"/admin/events", access.GuardAuthenticatedAdmin},
		{"/admin/events/e1", access.GuardAuthenticatedAdmin},
		{"/admin/announcements", access.GuardAuthenticatedAdmin},
		{"/admin/messages", access.GuardAuthenticatedAdmin},
		{"/admin/adminpage", access.GuardAuthenticatedAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, _, ok := table.Match(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.guard, d.Guard)
		})
	}
	assert.Len(t, table.Descriptors(), len(tests))
}

func TestMatch_LiteralBeatsParam(t *testing.T) {
	table := DefaultTable()

	d, params, ok := table.Match("/profile/edit")
	require.True(t, ok)
	assert.Equal(t, ProfileEdit, d.Name)
	assert.Empty(t, params)

	d, params, ok = table.Match("/profile/42")
	require.True(t, ok)
	assert.Equal(t, Profile, d.Name)
	assert.Equal(t, "42", params["id"])
}

func TestMatch_OrderIndependent(t *testing.T) {
	table := NewTable(
		Descriptor{Name: "param", Pattern: "/a/{x}/c"},
		Descriptor{Name: "literal", Pattern: "/a/b/{y}"},
	)
	d, params, ok := table.Match("/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "literal", d.Name)
	assert.Equal(t, Params{"y": "c"}, params)
}

func TestMatch_Unmatched(t *testing.T) {
	table := DefaultTable()
	for _, p := range []string{
		"/does-not-exist",
		"/profile",
		"/profile/42/extra",
		"/admin",
		"/admin/events/e1/edit",
		"/reset-password",
		"/dashboard/",
		"dashboard",
	} {
		_, _, ok := table.Match(p)
		assert.False(t, ok, p)
	}
}

func TestMatch_Root(t *testing.T) {
	d, _, ok := DefaultTable().Match("/")
	require.True(t, ok)
	assert.Equal(t, Welcome, d.Name)
}

func TestNewTable_RejectsConflicts(t *testing.T) {
	assert.Panics(t, func() {
		NewTable(
			Descriptor{Name: "a", Pattern: "/x/{id}"},
			Descriptor{Name: "b", Pattern: "/x/{other}"},
		)
	})
	assert.Panics(t, func() { NewTable(Descriptor{Name: "bad", Pattern: "nope"}) })
	assert.Panics(t, func() { NewTable(Descriptor{Name: "bad", Pattern: "/x/{}"}) })
}

func TestLookup(t *testing.T) {
	d, ok := DefaultTable().Lookup(AdminEventEdit)
	require.True(t, ok)
	assert.Equal(t, "/admin/events/{eventId}", d.Pattern)
	assert.Equal(t, LayoutAdmin, d.Layout)

	_, ok = DefaultTable().Lookup("missing")
	assert.False(t, ok)
}
