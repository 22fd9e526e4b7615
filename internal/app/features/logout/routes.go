// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// APIRoutes returns the JSON endpoint, mounted at /api/auth/logout.
// Logout is deliberately unauthenticated: clearing an absent session is a
// no-op, not an error.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	return r
}
