// Package tenantctx resolves a user's primary tenant context: tenant id,
// tenant name, and role. Resolution is authoritative when membership and
// tenant stores are configured, and falls back to a deterministic
// derivation from the user's email otherwise. The derivation here is
// deliberately distinct from the bootstrap naming in the provision
// package: the resolver names from the email domain, bootstrap names
// from the local part. Do not unify them.
package tenantctx

import (
	"strings"

	"github.com/dalemusser/tenanthub/internal/domain/models"
)

// TenantContext is one user's membership in their primary tenant for the
// lifetime of a session. TenantID is either a persisted row id or a
// deterministic derivation from the email domain; it is never
// client-supplied.
type TenantContext struct {
	TenantID   string            `json:"tenantId"`
	TenantName string            `json:"tenantName"`
	Role       models.TenantRole `json:"role"`
}

// DeriveTenantID derives the deterministic tenant id from an email: the
// first DNS label of the domain, lower-cased, stripped to [a-z0-9-], with
// leading and trailing hyphens trimmed, prefixed "tenant-". An empty slug
// yields "tenant-workspace".
func DeriveTenantID(email string) string {
	domain := ""
	if at := strings.Index(strings.ToLower(email), "@"); at >= 0 {
		domain = strings.ToLower(email)[at+1:]
	}
	label := domain
	if dot := strings.Index(domain, "."); dot >= 0 {
		label = domain[:dot]
	}

	var b strings.Builder
	lastHyphen := false
	for _, r := range label {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			// Runs of disallowed characters collapse to one hyphen.
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "workspace"
	}
	return "tenant-" + slug
}

// DeriveTenantContextFromEmail derives the fallback tenant context for an
// email. The domain's first DNS label becomes the human name, title-cased
// and suffixed with " Workspace". Pure and deterministic: the same email
// always yields the same tenant id and name.
func DeriveTenantContextFromEmail(email string, role models.TenantRole) TenantContext {
	domain := "workspace.local"
	if at := strings.Index(email, "@"); at >= 0 && at+1 < len(email) {
		domain = email[at+1:]
	}
	root := domain
	if dot := strings.Index(domain, "."); dot >= 0 {
		root = domain[:dot]
	}
	if root == "" {
		root = "workspace"
	}

	return TenantContext{
		TenantID:   DeriveTenantID(email),
		TenantName: titleCase(root) + " Workspace",
		Role:       role,
	}
}

// InferRoleFromEmail maps an email's local part onto a role for
// credential-less operating modes: a local part containing "admin",
// "member", or "viewer" gets that role, anything else is Owner.
func InferRoleFromEmail(email string) models.TenantRole {
	local := strings.ToLower(email)
	if at := strings.Index(local, "@"); at >= 0 {
		local = local[:at]
	}
	switch {
	case strings.Contains(local, "admin"):
		return models.RoleAdmin
	case strings.Contains(local, "member"):
		return models.RoleMember
	case strings.Contains(local, "viewer"):
		return models.RoleViewer
	default:
		return models.RoleOwner
	}
}

// titleCase capitalizes each token of value, splitting on whitespace,
// underscores, and hyphens. Empty input yields "Workspace".
func titleCase(value string) string {
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_' || r == '-'
	})
	if len(tokens) == 0 {
		return "Workspace"
	}
	for i, t := range tokens {
		lower := strings.ToLower(t)
		tokens[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(tokens, " ")
}
