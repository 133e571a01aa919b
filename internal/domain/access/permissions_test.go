package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memberhub/portal/internal/domain/auth"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(auth.RoleAdmin, PermGrantStaff))
	assert.False(t, HasPermission(auth.RoleModerator, PermGrantStaff))
	assert.True(t, HasPermission(auth.RoleModerator, PermManageEvents))
	assert.False(t, HasPermission(auth.RoleMember, PermManageEvents))
	assert.False(t, HasPermission(auth.RoleBanned, PermApproveMembers))
	assert.False(t, HasPermission("", PermApproveMembers))
}

func TestCanChangeRole(t *testing.T) {
	admin := auth.User{ID: "a1", Role: auth.RoleAdmin}
	otherAdmin := auth.User{ID: "a2", Role: auth.RoleAdmin}
	moderator := auth.User{ID: "m1", Role: auth.RoleModerator}
	member := auth.User{ID: "u1", Role: auth.RoleMember}

	tests := []struct {
		name    string
		actor   auth.User
		target  auth.User
		newRole auth.Role
		want    error
	}{
		{"admin promotes member", admin, member, auth.RoleModerator, nil},
		{"admin bans member", admin, member, auth.RoleBanned, nil},
		{"moderator bans member", moderator, member, auth.RoleBanned, nil},
		{"moderator cannot grant staff", moderator, member, auth.RoleModerator, ErrStaffGrantRequired},
		{"member cannot change roles", member, moderator, auth.RoleMember, ErrNotStaff},
		{"other admin is protected", admin, otherAdmin, auth.RoleMember, ErrTargetIsAdmin},
		{"no self change", moderator, moderator, auth.RoleMember, ErrSelfChange},
		{"unchanged role", admin, member, auth.RoleMember, ErrRoleUnchanged},
		{"invalid role", admin, member, "owner", auth.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanChangeRole(tt.actor, tt.target, tt.newRole)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
