// Package authutil holds password hashing and validation helpers for the
// local password auth provider.
package authutil

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the signup minimum. Login accepts any non-empty
// password; the hash comparison decides.
const MinPasswordLen = 8

// HashPassword returns a bcrypt hash of the password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the signup password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// PasswordRules returns the policy text shown next to password fields.
func PasswordRules() string {
	return "At least 8 characters."
}
