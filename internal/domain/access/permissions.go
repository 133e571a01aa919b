package access

import (
	"errors"

	"github.com/memberhub/portal/internal/domain/auth"
)

// Permission is an admin-console capability.
type Permission int

const (
	PermApproveMembers Permission = iota + 1
	PermChangeRoles
	PermGrantStaff
	PermManageEvents
	PermManageAnnouncements
	PermManageMessages
)

var permissionMatrix = map[auth.Role]map[Permission]bool{
	auth.RoleAdmin: {
		PermApproveMembers:      true,
		PermChangeRoles:         true,
		PermGrantStaff:          true,
		PermManageEvents:        true,
		PermManageAnnouncements: true,
		PermManageMessages:      true,
	},
	auth.RoleModerator: {
		PermApproveMembers:      true,
		PermChangeRoles:         true,
		PermManageEvents:        true,
		PermManageAnnouncements: true,
		PermManageMessages:      true,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role auth.Role, perm Permission) bool {
	return permissionMatrix[role][perm]
}

// Role change errors.
var (
	ErrNotStaff           = errors.New("only admins and moderators can change roles")
	ErrTargetIsAdmin      = errors.New("another admin's role cannot be changed")
	ErrStaffGrantRequired = errors.New("only admins can grant admin or moderator")
	ErrRoleUnchanged      = errors.New("member already has this role")
	ErrSelfChange         = errors.New("you cannot change your own role")
)

// CanChangeRole reports whether actor may move target to newRole.
// newRole must already be a valid role.
func CanChangeRole(actor auth.User, target auth.User, newRole auth.Role) error {
	if !newRole.Valid() {
		return auth.ErrInvalidRole
	}
	if !HasPermission(actor.Role, PermChangeRoles) {
		return ErrNotStaff
	}
	if actor.ID == target.ID {
		return ErrSelfChange
	}
	if target.Role == auth.RoleAdmin {
		return ErrTargetIsAdmin
	}
	if newRole.IsStaff() && !HasPermission(actor.Role, PermGrantStaff) {
		return ErrStaffGrantRequired
	}
	if target.Role == newRole {
		return ErrRoleUnchanged
	}
	return nil
}
