package authprovider

import (
	"context"

	userstore "github.com/dalemusser/tenanthub/internal/app/store/users"
	"github.com/dalemusser/tenanthub/internal/app/system/authutil"
	"github.com/dalemusser/tenanthub/internal/app/system/normalize"
	"go.uber.org/zap"
)

// MongoProvider authenticates against the local users collection with
// bcrypt password hashes.
type MongoProvider struct {
	users *userstore.Store
	log   *zap.Logger
}

// NewMongoProvider builds a provider over the given user store.
func NewMongoProvider(users *userstore.Store, logger *zap.Logger) *MongoProvider {
	return &MongoProvider{users: users, log: logger}
}

// SignIn verifies the email/password pair. Unknown email and wrong
// password produce the same message so the response does not leak which
// accounts exist.
func (p *MongoProvider) SignIn(ctx context.Context, email, password string) (UserIdentity, error) {
	user, err := p.users.GetByEmail(ctx, normalize.Email(email))
	if err != nil {
		if err == userstore.ErrNotFound {
			return UserIdentity{}, &AuthError{Message: "Invalid email or password."}
		}
		return UserIdentity{}, err
	}
	if !authutil.CheckPassword(password, user.PasswordHash) {
		return UserIdentity{}, &AuthError{Message: "Invalid email or password."}
	}
	return UserIdentity{UserID: user.ID.Hex(), Email: user.Email}, nil
}

// SignUp registers a new account. A duplicate email is a credential
// rejection, not an infrastructure failure.
func (p *MongoProvider) SignUp(ctx context.Context, email, password string) (UserIdentity, error) {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return UserIdentity{}, err
	}

	user, err := p.users.Create(ctx, normalize.Email(email), hash)
	if err != nil {
		if err == userstore.ErrEmailTaken {
			return UserIdentity{}, &AuthError{Message: "An account with this email already exists."}
		}
		return UserIdentity{}, err
	}

	p.log.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return UserIdentity{UserID: user.ID.Hex(), Email: user.Email}, nil
}
