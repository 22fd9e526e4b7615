// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	loginstore "github.com/dalemusser/tenanthub/internal/app/store/logins"
	profilestore "github.com/dalemusser/tenanthub/internal/app/store/profiles"
	"github.com/dalemusser/tenanthub/internal/app/system/auditlog"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/normalize"
	"github.com/dalemusser/tenanthub/internal/app/system/tenantctx"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateSessionName is the short-lived cookie that carries the OAuth state
// across the redirect to Google and back.
const stateSessionName = "tenanthub_oauthstate"

// Handler handles Google OAuth authentication. A successful callback yields
// the same identity → tenant resolution → session issue path as the
// password login endpoint, with the Google subject id as the user id.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Resolver   *tenantctx.Resolver
	Profiles   *profilestore.Store
	Logins     *loginstore.Store // nil when no store is configured
	AuditLog   *auditlog.Logger
	States     sessions.Store

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://tenanthub.example.com/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler. stateKey signs the state
// cookie; it can be the session key.
func NewHandler(
	sessionMgr *auth.SessionManager,
	resolver *tenantctx.Resolver,
	profiles *profilestore.Store,
	logins *loginstore.Store,
	audit *auditlog.Logger,
	clientID, clientSecret, baseURL string,
	stateKey []byte,
	secure bool,
	logger *zap.Logger,
) *Handler {
	states := sessions.NewCookieStore(stateKey)
	states.Options = &sessions.Options{
		Path:     "/auth/google",
		MaxAge:   600, // the whole consent round-trip, not a login session
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		Resolver:     resolver,
		Profiles:     profiles,
		Logins:       logins,
		AuditLog:     audit,
		States:       states,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Initiates the Google OAuth flow by redirecting to Google's consent screen.   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	sess, _ := h.States.New(r, stateSessionName)
	sess.Values["state"] = state
	if err := sess.Save(r, w); err != nil {
		h.Log.Error("failed to save OAuth state cookie", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow", zap.String("redirect_url", url))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
| Validates state, exchanges code for tokens, fetches user info, resolves     |
| tenant context, and issues the app session.                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		errDesc := r.URL.Query().Get("error_description")
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", errDesc))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	sess, err := h.States.Get(r, stateSessionName)
	if err != nil || sess.IsNew {
		h.Log.Warn("missing or invalid OAuth state cookie", zap.Error(err))
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}
	want, _ := sess.Values["state"].(string)
	if want == "" || want != state {
		h.Log.Warn("OAuth state mismatch")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	// State is single-use: expire the cookie regardless of what follows.
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		h.Log.Warn("failed to expire OAuth state cookie", zap.Error(err))
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	if googleUser.ID == "" || googleUser.Email == "" {
		h.Log.Error("Google user info incomplete", zap.String("google_id", googleUser.ID))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	h.createSessionAndRedirect(w, r, googleUser)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session creation                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, googleUser *googleUserInfo) {
	userID := "google-" + googleUser.ID
	email := normalize.Email(googleUser.Email)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tc, err := h.Resolver.ResolvePrimaryTenantContext(ctx, userID, email, tenantctx.InferRoleFromEmail(email))
	if err != nil {
		h.Log.Error("google login: tenant resolution failed", zap.Error(err), zap.String("user_id", userID))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	appSess := auth.Session{
		UserID:     userID,
		Email:      email,
		TenantID:   tc.TenantID,
		TenantName: tc.TenantName,
		Role:       tc.Role,
		FullName:   googleUser.Name,
	}
	if profile, found, err := h.Profiles.Load(ctx, userID); err == nil && found {
		appSess.FullName = profile.FullName
		appSess.JobTitle = profile.JobTitle
	}

	if err := h.SessionMgr.Issue(w, appSess); err != nil {
		h.Log.Error("google login: issue session failed", zap.Error(err), zap.String("user_id", userID))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	if h.Logins != nil {
		if err := h.Logins.CreateFrom(ctx, r, userID, "google"); err != nil {
			h.Log.Warn("google login: record login history failed", zap.Error(err), zap.String("user_id", userID))
		}
	}
	h.AuditLog.LoginSuccess(ctx, r, userID, email, appSess.TenantID, "google")

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", userID),
		zap.String("tenant_id", appSess.TenantID))

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
