package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrIdentityIncomplete means a caller tried to issue a session without the
// mandatory identity fields. It is an integrity fault, never patched over
// with placeholder values.
var ErrIdentityIncomplete = errors.New("session identity is incomplete: user id and email are required")

type ctxKey string

const currentSessionKey ctxKey = "currentSession"

// SessionManager owns the session lifecycle: it issues the cookie on login
// and signup, reissues it whenever the server rewrites session-carried data,
// and clears it on logout. There are no other transitions; expiry is
// enforced by the cookie's own max-age, not by application logic.
type SessionManager struct {
	codec  *Codec
	name   string
	domain string
	maxAge time.Duration
	secure bool
	log    *zap.Logger
}

// NewSessionManager builds a SessionManager around the given signing key and
// cookie policy. The cookie is HTTP-only, SameSite=Lax, path-scoped to "/",
// and marked Secure when secure is true (production).
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "tenanthub_session"
	}
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	codec := NewCodec(name, []byte(sessionKey), nil, int(maxAge.Seconds()))

	logger.Info("session manager initialized",
		zap.String("cookie", name),
		zap.Duration("max_age", maxAge),
		zap.Bool("secure", secure))

	return &SessionManager{
		codec:  codec,
		name:   name,
		domain: domain,
		maxAge: maxAge,
		secure: secure,
		log:    logger,
	}, nil
}

// CookieName returns the session cookie name.
func (m *SessionManager) CookieName() string { return m.name }

// Codec exposes the underlying codec, mainly for tests that need to mint
// cookie values directly.
func (m *SessionManager) Codec() *Codec { return m.codec }

// Issue writes the session cookie. The new session fully replaces any stale
// one; there is no merge. Refreshing after a server-side mutation is the
// same operation with the updated record.
func (m *SessionManager) Issue(w http.ResponseWriter, s Session) error {
	if !s.Valid() {
		return ErrIdentityIncomplete
	}
	encoded, err := m.codec.Encode(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Domain:   m.domain,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear unconditionally removes the session cookie. Logout never fails:
// the cookie value is emptied and the max-age tells the browser to drop it
// immediately, whether or not a valid session was present.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Domain:   m.domain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read recovers the session from the request cookies. Absent, expired,
// tampered, or malformed cookies all read as "no session".
func (m *SessionManager) Read(r *http.Request) (Session, bool) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return Session{}, false
	}
	return m.codec.Decode(c.Value)
}

// CurrentSession returns the session placed in the request context by
// LoadSessionUser, and a found flag.
func CurrentSession(r *http.Request) (*Session, bool) {
	s, ok := r.Context().Value(currentSessionKey).(*Session)
	return s, ok
}

// LoadSessionUser injects the decoded session into the request context when
// a valid session cookie is present. It never blocks a request.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := m.Read(r); ok {
			r = withSession(r, &s)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a session in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireRole ensures the session carries one of the allowed roles.
// Role comparison is case-insensitive. Signed-out requests get 401
// semantics, signed-in requests with the wrong role get 403 semantics,
// with HTMX/HTML/API variants as in RequireSignedIn.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := CurrentSession(r)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			if _, has := set[strings.ToLower(string(s.Role))]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenantAdmin gates tenant-administrative areas (team, billing,
// audit logs) to Owner and Admin sessions.
func (m *SessionManager) RequireTenantAdmin(next http.Handler) http.Handler {
	return m.RequireRole("owner", "admin")(next)
}

// helpers

func withSession(r *http.Request, s *Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, s))
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Browser/HTML: go to login and preserve return
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	// Non-HTML (API) callers: plain 401
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
