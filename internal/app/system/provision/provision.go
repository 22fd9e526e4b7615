// Package provision performs one-time tenant bootstrap at signup: a new
// tenant row plus an owning membership for the registering user. It is not
// idempotent and must be invoked exactly once per registration event.
package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.uber.org/zap"
)

// ErrNotConfigured means bootstrap was requested without the elevated
// store credentials it needs. Operator-actionable, fatal to the operation.
var ErrNotConfigured = errors.New("tenant provisioning requires a configured store")

// ErrTenantCreation is the error class for the tenant insert failing.
var ErrTenantCreation = errors.New("tenant creation failed")

// ErrMembershipCreation means the tenant row was created but the owning
// membership insert failed. The orphaned tenant is left in place and the
// failure surfaced loudly; the account exists but tenant setup is
// incomplete and needs operator follow-up. Nothing retries automatically.
var ErrMembershipCreation = errors.New("membership creation failed")

// TenantCreator inserts a tenant row. Implemented by the tenants store.
type TenantCreator interface {
	Create(ctx context.Context, name string) (models.Tenant, error)
}

// MembershipCreator inserts a membership row. Implemented by the
// memberships store.
type MembershipCreator interface {
	Create(ctx context.Context, tenantID, userID string, role models.TenantRole) error
}

// Result is the outcome of a successful bootstrap. Role is always Owner.
type Result struct {
	TenantID   string
	TenantName string
	Role       models.TenantRole
}

// Bootstrapper provisions a tenant and owning membership for a new user.
type Bootstrapper struct {
	tenants     TenantCreator
	memberships MembershipCreator
	log         *zap.Logger
}

// NewBootstrapper builds a Bootstrapper. Both stores are required at call
// time; nil stores make BootstrapTenantForUser fail with ErrNotConfigured.
func NewBootstrapper(tenants TenantCreator, memberships MembershipCreator, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{tenants: tenants, memberships: memberships, log: logger}
}

// BootstrapTenantForUser creates the tenant and the owner membership as two
// sequential writes with no cross-row transaction. A crash or failure
// between them leaves an orphaned tenant row; tenants are cheap, and the
// failure is surfaced rather than hidden or rolled back.
func (b *Bootstrapper) BootstrapTenantForUser(ctx context.Context, userID, email string) (Result, error) {
	if b.tenants == nil || b.memberships == nil {
		return Result{}, ErrNotConfigured
	}

	name := DefaultTenantName(email)

	tenant, err := b.tenants.Create(ctx, name)
	if err != nil {
		b.log.Error("tenant insert failed",
			zap.String("user_id", userID),
			zap.String("tenant_name", name),
			zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrTenantCreation, err)
	}

	if err := b.memberships.Create(ctx, tenant.ID.Hex(), userID, models.RoleOwner); err != nil {
		b.log.Error("owner membership insert failed, tenant orphaned",
			zap.String("user_id", userID),
			zap.String("tenant_id", tenant.ID.Hex()),
			zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrMembershipCreation, err)
	}

	b.log.Info("tenant bootstrapped",
		zap.String("user_id", userID),
		zap.String("tenant_id", tenant.ID.Hex()),
		zap.String("tenant_name", tenant.Name))

	return Result{
		TenantID:   tenant.ID.Hex(),
		TenantName: tenant.Name,
		Role:       models.RoleOwner,
	}, nil
}

// DefaultTenantName derives the bootstrap tenant name from the email local
// part: non-alphanumerics become spaces, the remainder is title-cased, and
// an empty result falls back to "New". The display name is suffixed with
// " Workspace". This naming is intentionally independent of the resolver's
// domain-based fallback naming in tenantctx.
func DefaultTenantName(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	title := strings.Join(words, " ")
	if title == "" {
		title = "New"
	}
	return title + " Workspace"
}
