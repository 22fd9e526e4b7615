// internal/app/features/forgotpassword/routes.go
package forgotpassword

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForgotPassword)
	return r
}
