// Package authprovider defines the credential-verification collaborator.
// Providers verify credentials and return a user identity; they know
// nothing about tenants or sessions.
package authprovider

import (
	"context"
	"errors"
)

// UserIdentity is the opaque identity produced by a provider. Immutable
// once issued for a request.
type UserIdentity struct {
	UserID string
	Email  string
}

// Complete reports whether the provider returned both mandatory fields.
// A provider success with either missing is an integrity fault, not
// something to patch with placeholders.
func (u UserIdentity) Complete() bool {
	return u.UserID != "" && u.Email != ""
}

// AuthError is a credential rejection whose message is surfaced verbatim
// to the caller.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// IsAuthError reports whether err is a credential rejection (as opposed to
// a provider/infrastructure failure).
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// Provider verifies credentials. SignIn authenticates an existing account;
// SignUp registers a new one. Both return an AuthError for credential
// problems and a plain error for infrastructure failures.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (UserIdentity, error)
	SignUp(ctx context.Context, email, password string) (UserIdentity, error)
}
