package models

import "strings"

// TenantRole is a user's role within a tenant. Roles form a total order of
// privilege: Owner > Admin > Member > Viewer. Owner and Admin are
// tenant-administrative; Member and Viewer are not.
type TenantRole string

const (
	RoleOwner  TenantRole = "Owner"
	RoleAdmin  TenantRole = "Admin"
	RoleMember TenantRole = "Member"
	RoleViewer TenantRole = "Viewer"
)

// ParseTenantRole normalizes a stored or user-supplied role string.
// The match is case-insensitive against {owner, admin, viewer}; anything
// else (including empty) is Member. Unknown values are not an error.
func ParseTenantRole(value string) TenantRole {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "owner":
		return RoleOwner
	case "admin":
		return RoleAdmin
	case "viewer":
		return RoleViewer
	default:
		return RoleMember
	}
}

// Storage returns the lowercase form used in persisted membership rows.
func (r TenantRole) Storage() string {
	return strings.ToLower(string(r))
}

// Level returns the role's position in the privilege order. Higher is more
// privileged.
func (r TenantRole) Level() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// IsTenantAdmin reports whether the role may see tenant-administrative
// areas (team, billing, audit logs).
func (r TenantRole) IsTenantAdmin() bool {
	return r == RoleOwner || r == RoleAdmin
}
