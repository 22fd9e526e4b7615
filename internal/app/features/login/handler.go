// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/tenanthub/internal/app/features/errors"
	loginstore "github.com/dalemusser/tenanthub/internal/app/store/logins"
	profilestore "github.com/dalemusser/tenanthub/internal/app/store/profiles"
	"github.com/dalemusser/tenanthub/internal/app/system/auditlog"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/authprovider"
	"github.com/dalemusser/tenanthub/internal/app/system/tenantctx"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	Provider      authprovider.Provider
	Resolver      *tenantctx.Resolver
	Profiles      *profilestore.Store
	Logins        *loginstore.Store // nil when no store is configured
	AuditLog      *auditlog.Logger
	ProviderName  string // recorded in login history ("password", "bypass")
	GoogleEnabled bool
}

func NewHandler(
	sessionMgr *auth.SessionManager,
	provider authprovider.Provider,
	resolver *tenantctx.Resolver,
	profiles *profilestore.Store,
	logins *loginstore.Store,
	audit *auditlog.Logger,
	providerName string,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:           logger,
		SessionMgr:    sessionMgr,
		Provider:      provider,
		Resolver:      resolver,
		Profiles:      profiles,
		Logins:        logins,
		AuditLog:      audit,
		ProviderName:  providerName,
		GoogleEnabled: googleEnabled,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	ReturnURL     string
	GoogleEnabled bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login", "/"),
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/login                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID     string `json:"userId"`
	RedirectTo string `json:"redirectTo"`
}

// HandleLoginAPI signs the user in and issues a fresh session that carries
// the resolved tenant context and any persisted profile fields. The session
// is replaced wholesale; nothing from a previous cookie survives.
func (h *Handler) HandleLoginAPI(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		uierrors.WriteJSONError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	identity, err := h.Provider.SignIn(ctx, email, req.Password)
	if err != nil {
		var authErr *authprovider.AuthError
		if errors.As(err, &authErr) {
			h.AuditLog.LoginFailed(ctx, r, email, authErr.Message)
			uierrors.WriteJSONError(w, http.StatusBadRequest, authErr.Message)
			return
		}
		h.Log.Error("login: provider sign-in failed", zap.Error(err))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	if !identity.Complete() {
		h.Log.Error("login: provider returned incomplete identity", zap.String("email", email))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "Login succeeded but user identity is incomplete.")
		return
	}

	sess, err := h.buildSession(ctx, identity)
	if err != nil {
		h.Log.Error("login: tenant resolution failed", zap.Error(err), zap.String("user_id", identity.UserID))
		if errors.Is(err, tenantctx.ErrTenantLookup) {
			// The identity is valid; only the tenant lookup broke. Say so,
			// instead of implying the sign-in itself failed.
			uierrors.WriteJSONError(w, http.StatusInternalServerError,
				"Login succeeded, but your tenant could not be loaded. Please try again or contact support.")
			return
		}
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	if err := h.SessionMgr.Issue(w, sess); err != nil {
		h.Log.Error("login: issue session failed", zap.Error(err), zap.String("user_id", identity.UserID))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "Unable to create session. Please try again.")
		return
	}

	if h.Logins != nil {
		if err := h.Logins.CreateFrom(ctx, r, identity.UserID, h.ProviderName); err != nil {
			h.Log.Warn("login: record login history failed", zap.Error(err), zap.String("user_id", identity.UserID))
		}
	}
	h.AuditLog.LoginSuccess(ctx, r, identity.UserID, identity.Email, sess.TenantID, h.ProviderName)

	uierrors.WriteJSON(w, http.StatusOK, loginResponse{
		UserID:     identity.UserID,
		RedirectTo: "/dashboard",
	})
}

// buildSession resolves the tenant context for an identity and overlays any
// persisted profile fields. Resolution falls back to pure derivation when no
// authoritative store is configured, so this never blocks a sign-in.
func (h *Handler) buildSession(ctx context.Context, identity authprovider.UserIdentity) (auth.Session, error) {
	roleHint := tenantctx.InferRoleFromEmail(identity.Email)
	tc, err := h.Resolver.ResolvePrimaryTenantContext(ctx, identity.UserID, identity.Email, roleHint)
	if err != nil {
		return auth.Session{}, err
	}

	sess := auth.Session{
		UserID:     identity.UserID,
		Email:      identity.Email,
		TenantID:   tc.TenantID,
		TenantName: tc.TenantName,
		Role:       tc.Role,
	}

	if profile, found, err := h.Profiles.Load(ctx, identity.UserID); err == nil && found {
		sess.FullName = profile.FullName
		sess.JobTitle = profile.JobTitle
	}

	return sess, nil
}
