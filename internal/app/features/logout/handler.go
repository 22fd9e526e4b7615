// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/auditlog"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
	}
}

// HandleLogout handles POST /api/auth/logout. Clearing is unconditional:
// a missing or corrupt cookie still gets a deletion cookie, and the response
// is always a redirect to /login. Logout never fails.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.SessionMgr.Read(r); ok {
		h.AuditLog.Logout(r.Context(), r, s.UserID, s.TenantID)
	}

	h.SessionMgr.Clear(w)

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
