// internal/app/features/signup/handler.go
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/tenanthub/internal/app/features/errors"
	"github.com/dalemusser/tenanthub/internal/app/system/auditlog"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/authprovider"
	"github.com/dalemusser/tenanthub/internal/app/system/authutil"
	"github.com/dalemusser/tenanthub/internal/app/system/provision"
	"github.com/dalemusser/tenanthub/internal/app/system/tenantctx"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log          *zap.Logger
	SessionMgr   *auth.SessionManager
	Provider     authprovider.Provider
	Bootstrapper *provision.Bootstrapper
	AuditLog     *auditlog.Logger
}

func NewHandler(
	sessionMgr *auth.SessionManager,
	provider authprovider.Provider,
	bootstrapper *provision.Bootstrapper,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		Provider:     provider,
		Bootstrapper: bootstrapper,
		AuditLog:     audit,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /signup                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

type signupFormData struct {
	viewdata.BaseVM
	PasswordRules string
}

func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "signup", signupFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign up", "/"),
		PasswordRules: authutil.PasswordRules(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/signup                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	UserID     string `json:"userId"`
	RedirectTo string `json:"redirectTo"`
}

// HandleSignupAPI registers the user, bootstraps their tenant exactly once,
// and issues a session carrying the new tenant context. A failed membership
// insert leaves an orphaned tenant behind; that failure is surfaced to the
// caller rather than silently retried.
func (h *Handler) HandleSignupAPI(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || authutil.ValidatePassword(req.Password) != nil {
		uierrors.WriteJSONError(w, http.StatusBadRequest,
			"Provide a valid email and a password with at least 8 characters.")
		return
	}

	// Long timeout: signup spans the user insert plus the two bootstrap
	// writes (tenant, owner membership).
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	identity, err := h.Provider.SignUp(ctx, email, req.Password)
	if err != nil {
		var authErr *authprovider.AuthError
		if errors.As(err, &authErr) {
			h.AuditLog.SignupFailed(ctx, r, email, authErr.Message)
			uierrors.WriteJSONError(w, http.StatusBadRequest, authErr.Message)
			return
		}
		h.Log.Error("signup: provider sign-up failed", zap.Error(err))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	if !identity.Complete() {
		h.Log.Error("signup: provider returned incomplete identity", zap.String("email", email))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "Signup succeeded but user identity is incomplete.")
		return
	}

	sess := auth.Session{
		UserID: identity.UserID,
		Email:  identity.Email,
	}

	result, err := h.Bootstrapper.BootstrapTenantForUser(ctx, identity.UserID, identity.Email)
	switch {
	case err == nil:
		sess.TenantID = result.TenantID
		sess.TenantName = result.TenantName
		sess.Role = result.Role
		h.AuditLog.TenantBootstrapped(ctx, r, identity.UserID, result.TenantID, result.TenantName, string(result.Role))

	case errors.Is(err, provision.ErrNotConfigured):
		// No authoritative store: fall back to pure derivation so the
		// account still lands in a usable workspace.
		tc := tenantctx.DeriveTenantContextFromEmail(identity.Email, tenantctx.InferRoleFromEmail(identity.Email))
		sess.TenantID = tc.TenantID
		sess.TenantName = tc.TenantName
		sess.Role = tc.Role

	case errors.Is(err, provision.ErrMembershipCreation):
		h.Log.Error("signup: owner membership insert failed", zap.Error(err), zap.String("user_id", identity.UserID))
		h.AuditLog.TenantBootstrapFailed(ctx, r, identity.UserID, "", err.Error())
		uierrors.WriteJSONError(w, http.StatusInternalServerError,
			"Your account was created, but tenant setup is incomplete. Please contact support.")
		return

	default:
		// The provider already created the account; only the tenant insert
		// failed. The response must not read as a total failure.
		h.Log.Error("signup: tenant bootstrap failed", zap.Error(err), zap.String("user_id", identity.UserID))
		h.AuditLog.TenantBootstrapFailed(ctx, r, identity.UserID, "", err.Error())
		uierrors.WriteJSONError(w, http.StatusInternalServerError,
			"Your account was created, but tenant setup is incomplete. Please contact support.")
		return
	}

	if err := h.SessionMgr.Issue(w, sess); err != nil {
		h.Log.Error("signup: issue session failed", zap.Error(err), zap.String("user_id", identity.UserID))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "Unable to create session. Please try again.")
		return
	}

	h.AuditLog.SignupSuccess(ctx, r, identity.UserID, identity.Email, sess.TenantID)

	uierrors.WriteJSON(w, http.StatusCreated, signupResponse{
		UserID:     identity.UserID,
		RedirectTo: "/dashboard",
	})
}
