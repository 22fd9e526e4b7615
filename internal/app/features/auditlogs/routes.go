// internal/app/features/auditlogs/routes.go
package auditlogs

import (
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireTenantAdmin)
		pr.Get("/", h.ServeAuditLogs)
	})
	return r
}
