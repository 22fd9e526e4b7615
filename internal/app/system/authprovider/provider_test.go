package authprovider_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	userstore "github.com/dalemusser/tenanthub/internal/app/store/users"
	"github.com/dalemusser/tenanthub/internal/app/system/authprovider"
	"github.com/dalemusser/tenanthub/internal/testutil"
	"go.uber.org/zap"
)

func TestBypassProvider_DeterministicIdentity(t *testing.T) {
	p := authprovider.NewBypassProvider()

	a, err := p.SignIn(context.Background(), "Owner@Acme.com", "anything")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	b, err := p.SignIn(context.Background(), "owner@acme.com", "something-else")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if a != b {
		t.Errorf("bypass identity must be deterministic per email: %+v vs %+v", a, b)
	}
	if a.UserID != "e2e-owner@acme.com" {
		t.Errorf("user id: got %q, want %q", a.UserID, "e2e-owner@acme.com")
	}
	if !a.Complete() {
		t.Error("bypass identity must be complete")
	}
}

func TestIsAuthError(t *testing.T) {
	plain := errors.New("connection refused")
	rejected := &authprovider.AuthError{Message: "Invalid email or password."}

	if authprovider.IsAuthError(plain) {
		t.Error("infrastructure error misclassified as credential rejection")
	}
	if !authprovider.IsAuthError(rejected) {
		t.Error("AuthError not recognized")
	}
	if !authprovider.IsAuthError(fmt.Errorf("wrapped: %w", rejected)) {
		t.Error("wrapped AuthError not recognized")
	}
}

func TestMongoProvider_SignUpAndSignIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	users := userstore.New(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	p := authprovider.NewMongoProvider(users, zap.NewNop())

	identity, err := p.SignUp(ctx, "jane@acme.com", "correct-horse")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if !identity.Complete() {
		t.Fatalf("incomplete identity from sign up: %+v", identity)
	}

	signedIn, err := p.SignIn(ctx, "jane@acme.com", "correct-horse")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if signedIn.UserID != identity.UserID {
		t.Errorf("sign in returned a different user: %q vs %q", signedIn.UserID, identity.UserID)
	}
}

func TestMongoProvider_WrongPassword_SameMessageAsUnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	users := userstore.New(db)
	p := authprovider.NewMongoProvider(users, zap.NewNop())

	if _, err := p.SignUp(ctx, "jane@acme.com", "correct-horse"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	_, wrongPass := p.SignIn(ctx, "jane@acme.com", "battery-staple")
	_, unknown := p.SignIn(ctx, "nobody@acme.com", "whatever")

	if !authprovider.IsAuthError(wrongPass) || !authprovider.IsAuthError(unknown) {
		t.Fatalf("expected credential rejections, got %v / %v", wrongPass, unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Errorf("rejection messages differ, leaking account existence: %q vs %q",
			wrongPass.Error(), unknown.Error())
	}
}

func TestMongoProvider_DuplicateSignUp_Rejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	users := userstore.New(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	p := authprovider.NewMongoProvider(users, zap.NewNop())

	if _, err := p.SignUp(ctx, "jane@acme.com", "correct-horse"); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	_, err := p.SignUp(ctx, "JANE@acme.com", "other-password")
	if !authprovider.IsAuthError(err) {
		t.Errorf("duplicate email should be a credential rejection, got %v", err)
	}
}
