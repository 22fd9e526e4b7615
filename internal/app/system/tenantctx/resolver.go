package tenantctx

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.uber.org/zap"
)

// ErrTenantLookup is the error class for backing-store failures during
// resolution. "No membership found" is never one of these; absence falls
// back to derivation.
var ErrTenantLookup = errors.New("tenant lookup failed")

// MembershipSource yields a user's earliest-created membership, or nil when
// the user has none. Implemented by the memberships store.
type MembershipSource interface {
	FirstForUser(ctx context.Context, userID string) (*models.Membership, error)
}

// TenantSource yields a tenant's name by id, or "" when there is no such
// tenant. Implemented by the tenants store.
type TenantSource interface {
	NameByID(ctx context.Context, tenantID string) (string, error)
}

// Resolver resolves a user's primary tenant context. All dependencies are
// injected at construction; the resolver reads no ambient configuration.
// Constructing it with nil sources selects the credential-less operating
// mode, where every resolution is the deterministic derivation.
type Resolver struct {
	memberships MembershipSource
	tenants     TenantSource
	log         *zap.Logger
}

// NewResolver builds a Resolver. Pass nil sources to run without an
// authoritative store.
func NewResolver(memberships MembershipSource, tenants TenantSource, logger *zap.Logger) *Resolver {
	return &Resolver{memberships: memberships, tenants: tenants, log: logger}
}

// Authoritative reports whether an authoritative store is configured.
func (r *Resolver) Authoritative() bool {
	return r.memberships != nil && r.tenants != nil
}

// ResolvePrimaryTenantContext determines the tenant context for a user.
// The role hint applies only to the derivation fallback; a persisted
// membership's role always wins over anything a caller supplies. The only
// error condition is a backing-store failure, surfaced as ErrTenantLookup;
// partial data is worse than an explicit error.
func (r *Resolver) ResolvePrimaryTenantContext(ctx context.Context, userID, email string, fallbackRole models.TenantRole) (TenantContext, error) {
	if fallbackRole == "" {
		fallbackRole = models.RoleOwner
	}
	if !r.Authoritative() {
		return DeriveTenantContextFromEmail(email, fallbackRole), nil
	}

	membership, err := r.memberships.FirstForUser(ctx, userID)
	if err != nil {
		r.log.Error("membership lookup failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return TenantContext{}, fmt.Errorf("%w: membership lookup: %v", ErrTenantLookup, err)
	}
	if membership == nil {
		return DeriveTenantContextFromEmail(email, fallbackRole), nil
	}

	tenantID := membership.TenantID.Hex()
	name, err := r.tenants.NameByID(ctx, tenantID)
	if err != nil {
		r.log.Error("tenant name lookup failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return TenantContext{}, fmt.Errorf("%w: tenant lookup: %v", ErrTenantLookup, err)
	}
	if name == "" {
		name = DeriveTenantContextFromEmail(email, fallbackRole).TenantName
	}

	return TenantContext{
		TenantID:   tenantID,
		TenantName: name,
		Role:       models.ParseTenantRole(membership.Role),
	}, nil
}
