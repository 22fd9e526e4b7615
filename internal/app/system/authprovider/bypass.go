package authprovider

import (
	"context"

	"github.com/dalemusser/tenanthub/internal/app/system/normalize"
)

// BypassProvider accepts any credentials and mints a deterministic
// identity ("e2e-" + email). It exists for end-to-end test runs against a
// server with no real auth backend and must never be enabled in
// production configuration.
type BypassProvider struct{}

// NewBypassProvider returns the credential-less provider.
func NewBypassProvider() *BypassProvider { return &BypassProvider{} }

func (p *BypassProvider) SignIn(_ context.Context, email, _ string) (UserIdentity, error) {
	e := normalize.Email(email)
	return UserIdentity{UserID: "e2e-" + e, Email: e}, nil
}

func (p *BypassProvider) SignUp(ctx context.Context, email, password string) (UserIdentity, error) {
	return p.SignIn(ctx, email, password)
}
