package auth

import (
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/gorilla/securecookie"
)

// Session is the server-issued record persisted in the session cookie. It is
// the sole server-trusted source for tenant and role on subsequent requests;
// nothing a client sends in a query string or body may override it.
//
// UserID and Email are mandatory. The tenant and profile fields are a cache
// of server-resolved state and are rewritten wholesale whenever the server
// recomputes any of them.
type Session struct {
	UserID     string            `json:"userId"`
	Email      string            `json:"email"`
	TenantID   string            `json:"tenantId,omitempty"`
	TenantName string            `json:"tenantName,omitempty"`
	Role       models.TenantRole `json:"role,omitempty"`
	FullName   string            `json:"fullName,omitempty"`
	JobTitle   string            `json:"jobTitle,omitempty"`
}

// Valid reports whether the mandatory identity fields are present.
func (s Session) Valid() bool {
	return s.UserID != "" && s.Email != ""
}

// Codec serializes a Session to and from an opaque cookie value. The value
// is JSON encoded and HMAC-authenticated by securecookie, so a tampered or
// garbled cookie decodes to "no session" rather than a partial record.
// Encoding is reversible for every valid Session.
//
// The cookie name participates in the MAC, so a value minted for one cookie
// cannot be replayed under another name.
type Codec struct {
	name string
	sc   *securecookie.SecureCookie
}

// NewCodec builds a codec for the named cookie. hashKey drives the HMAC;
// blockKey, when non-nil, additionally encrypts the payload with AES.
// maxAgeSeconds bounds how old a cookie securecookie will accept.
func NewCodec(name string, hashKey, blockKey []byte, maxAgeSeconds int) *Codec {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(maxAgeSeconds)
	return &Codec{name: name, sc: sc}
}

// Encode returns the opaque cookie value for a session.
func (c *Codec) Encode(s Session) (string, error) {
	return c.sc.Encode(c.name, s)
}

// Decode recovers a session from a cookie value. It fails closed: a bad
// signature, unparsable payload, or missing mandatory field all yield
// (zero, false), never a partially populated session.
func (c *Codec) Decode(value string) (Session, bool) {
	var s Session
	if err := c.sc.Decode(c.name, value, &s); err != nil {
		return Session{}, false
	}
	if !s.Valid() {
		return Session{}, false
	}
	return s, true
}
