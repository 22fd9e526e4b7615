// internal/app/features/team/handler.go
package team

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/tenanthub/internal/app/features/errors"
	membershipstore "github.com/dalemusser/tenanthub/internal/app/store/memberships"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log         *zap.Logger
	Memberships *membershipstore.Store // nil when no store is configured
}

func NewHandler(memberships *membershipstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Memberships: memberships,
	}
}

type memberVM struct {
	UserID string
	Role   string
}

type teamPageData struct {
	viewdata.BaseVM
	Members      []memberVM
	StoreOffline bool
}

// ServeTeam lists the tenant's memberships. Admin gating happens in the
// route middleware; this handler only needs the session's tenant id.
func (h *Handler) ServeTeam(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	data := teamPageData{
		BaseVM: viewdata.NewBaseVM(r, "Team", "/dashboard"),
	}

	if h.Memberships == nil {
		data.StoreOffline = true
		templates.Render(w, r, "team", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	members, err := h.Memberships.ListForTenant(ctx, s.TenantID)
	if err != nil {
		h.Log.Error("team: list memberships failed", zap.Error(err), zap.String("tenant_id", s.TenantID))
		uierrors.RenderForbidden(w, r, "Unable to load the team right now.", "/dashboard")
		return
	}

	for _, m := range members {
		data.Members = append(data.Members, memberVM{
			UserID: m.UserID,
			Role:   string(models.ParseTenantRole(m.Role)),
		})
	}

	templates.Render(w, r, "team", data)
}
