// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/domain/models"
)

// SessionCtx returns the current session's role, tenant id, user id, and a
// found flag. If no session is present in context it returns
// (RoleViewer, "", "", false). Callers can trust that ok=true means a valid,
// authenticated session.
func SessionCtx(r *http.Request) (role models.TenantRole, tenantID string, userID string, ok bool) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		return models.RoleViewer, "", "", false
	}
	return s.Role, s.TenantID, s.UserID, true
}

// Role returns the current session's role and whether a session is present.
func Role(r *http.Request) (models.TenantRole, bool) {
	role, _, _, ok := SessionCtx(r)
	return role, ok
}

// IsTenantAdmin reports whether the current session may manage the tenant.
// Owners and Admins both qualify.
func IsTenantAdmin(r *http.Request) bool {
	role, _, _, ok := SessionCtx(r)
	return ok && role.IsTenantAdmin()
}

// CanViewAuditLogs reports whether the current session may read the tenant's
// audit trail. Mirrors IsTenantAdmin today; kept separate so the policy can
// diverge without touching call sites.
func CanViewAuditLogs(r *http.Request) bool {
	return IsTenantAdmin(r)
}
