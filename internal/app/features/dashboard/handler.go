// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/dalemusser/tenanthub/internal/app/features/errors"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type dashboardData struct {
	viewdata.BaseVM
	TenantID string
}

// ServeDashboard renders the workspace dashboard. Tenant name, id, and role
// come from the session record only; query parameters such as
// ?tenantName=&role= never influence what is shown.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	templates.Render(w, r, "dashboard", dashboardData{
		BaseVM:   viewdata.NewBaseVM(r, "Dashboard", "/"),
		TenantID: s.TenantID,
	})
}
