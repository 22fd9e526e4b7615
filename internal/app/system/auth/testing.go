package auth

import "net/http"

// WithTestSession injects a session into the request context directly,
// bypassing cookie decoding. Handler tests use this instead of running
// requests through LoadSessionUser.
func WithTestSession(r *http.Request, s *Session) *http.Request {
	return withSession(r, s)
}
