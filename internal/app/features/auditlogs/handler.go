// internal/app/features/auditlogs/handler.go
package auditlogs

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/tenanthub/internal/app/features/errors"
	"github.com/dalemusser/tenanthub/internal/app/store/audit"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const pageLimit = 50

type Handler struct {
	Log   *zap.Logger
	Audit *audit.Store // nil when no store is configured
}

func NewHandler(store *audit.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Audit: store,
	}
}

type eventVM struct {
	When      string
	EventType string
	UserID    string
	Success   bool
	Reason    string
}

type auditPageData struct {
	viewdata.BaseVM
	Events       []eventVM
	StoreOffline bool
}

// ServeAuditLogs lists recent audit events for the session's tenant, newest
// first. Route middleware restricts access to tenant admins.
func (h *Handler) ServeAuditLogs(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	data := auditPageData{
		BaseVM: viewdata.NewBaseVM(r, "Audit Logs", "/dashboard"),
	}

	if h.Audit == nil {
		data.StoreOffline = true
		templates.Render(w, r, "audit_logs", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	events, err := h.Audit.Query(ctx, audit.QueryFilter{
		TenantID: s.TenantID,
		Limit:    pageLimit,
	})
	if err != nil {
		h.Log.Error("audit-logs: query failed", zap.Error(err), zap.String("tenant_id", s.TenantID))
		uierrors.RenderForbidden(w, r, "Unable to load audit logs right now.", "/dashboard")
		return
	}

	for _, e := range events {
		data.Events = append(data.Events, eventVM{
			When:      e.Timestamp.UTC().Format(time.RFC3339),
			EventType: e.EventType,
			UserID:    e.UserID,
			Success:   e.Success,
			Reason:    e.FailureReason,
		})
	}

	templates.Render(w, r, "audit_logs", data)
}
