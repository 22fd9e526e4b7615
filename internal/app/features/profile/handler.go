// internal/app/features/profile/handler.go
package profile

import (
	profilestore "github.com/dalemusser/tenanthub/internal/app/store/profiles"
	"github.com/dalemusser/tenanthub/internal/app/system/auditlog"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler owns all user profile handlers.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Profiles   *profilestore.Store
	AuditLog   *auditlog.Logger
}

// NewHandler constructs a Handler bound to the profile store and session
// manager. The store itself tolerates an unconfigured database, so callers
// always pass a non-nil store.
func NewHandler(sessionMgr *auth.SessionManager, profiles *profilestore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Profiles:   profiles,
		AuditLog:   audit,
	}
}
