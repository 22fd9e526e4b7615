// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

// Routes serves the settings page, mounted under /settings/profile.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeProfilePage)
	return r
}

// APIRoutes serves the JSON endpoints, mounted under /api/profile.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleGetProfile)
	r.Post("/", h.HandleUpdateProfile)
	return r
}
