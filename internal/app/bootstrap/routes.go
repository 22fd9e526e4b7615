// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogsfeature "github.com/dalemusser/tenanthub/internal/app/features/auditlogs"
	authgooglefeature "github.com/dalemusser/tenanthub/internal/app/features/authgoogle"
	billingfeature "github.com/dalemusser/tenanthub/internal/app/features/billing"
	dashboardfeature "github.com/dalemusser/tenanthub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/tenanthub/internal/app/features/errors"
	forgotpasswordfeature "github.com/dalemusser/tenanthub/internal/app/features/forgotpassword"
	healthfeature "github.com/dalemusser/tenanthub/internal/app/features/health"
	homefeature "github.com/dalemusser/tenanthub/internal/app/features/home"
	loginfeature "github.com/dalemusser/tenanthub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/tenanthub/internal/app/features/logout"
	profilefeature "github.com/dalemusser/tenanthub/internal/app/features/profile"
	signupfeature "github.com/dalemusser/tenanthub/internal/app/features/signup"
	teamfeature "github.com/dalemusser/tenanthub/internal/app/features/team"
	"github.com/dalemusser/tenanthub/internal/app/store/audit"
	loginstore "github.com/dalemusser/tenanthub/internal/app/store/logins"
	membershipstore "github.com/dalemusser/tenanthub/internal/app/store/memberships"
	profilestore "github.com/dalemusser/tenanthub/internal/app/store/profiles"
	tenantstore "github.com/dalemusser/tenanthub/internal/app/store/tenants"
	userstore "github.com/dalemusser/tenanthub/internal/app/store/users"
	"github.com/dalemusser/tenanthub/internal/app/system/auditlog"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/authprovider"
	"github.com/dalemusser/tenanthub/internal/app/system/provision"
	"github.com/dalemusser/tenanthub/internal/app/system/tenantctx"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// TenantHub initializes the template engine, applies session middleware,
// wires the tenant-context resolver and auth provider against whatever
// stores are configured, and mounts the page and JSON API routers. With no
// Mongo configured the same surface comes up in degraded mode: derived
// tenant context, session-only profiles, bypass-only sign-in.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Stores, resolver, and tenant bootstrapper. The resolver and
	// bootstrapper take untyped nils when no database is configured so
	// their unconfigured paths (derivation, ErrNotConfigured) engage.
	db := deps.TenantHubMongoDatabase
	profiles := profilestore.New(db, logger)

	var (
		users        *userstore.Store
		logins       *loginstore.Store
		memberships  *membershipstore.Store
		auditStore   *audit.Store
		resolver     *tenantctx.Resolver
		bootstrapper *provision.Bootstrapper
	)
	if db != nil {
		users = userstore.New(db)
		logins = loginstore.New(db)
		memberships = membershipstore.New(db)
		auditStore = audit.New(db)
		tenants := tenantstore.New(db)
		resolver = tenantctx.NewResolver(memberships, tenants, logger)
		bootstrapper = provision.NewBootstrapper(tenants, memberships, logger)
	} else {
		resolver = tenantctx.NewResolver(nil, nil, logger)
		bootstrapper = provision.NewBootstrapper(nil, nil, logger)
	}

	auditLog := auditlog.New(auditStore, logger, auditlog.Config{
		Auth:   appCfg.AuditLogAuth,
		Tenant: appCfg.AuditLogTenant,
	})

	// Auth provider selection. Bypass wins when configured; otherwise the
	// password provider needs the users collection.
	var provider authprovider.Provider
	providerName := "password"
	switch {
	case appCfg.AuthBypass:
		provider = authprovider.NewBypassProvider()
		providerName = "bypass"
		logger.Warn("auth bypass enabled; any credentials are accepted")
	case users != nil:
		provider = authprovider.NewMongoProvider(users, logger)
	default:
		provider = authprovider.NewBypassProvider()
		providerName = "bypass"
		logger.Warn("no user store configured; falling back to bypass sign-in")
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the session into context if logged in.
	// This makes the current session available to all handlers via
	// auth.CurrentSession(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TenantHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	forgotHandler := forgotpasswordfeature.NewHandler(logger)
	r.Mount("/forgot-password", forgotpasswordfeature.Routes(forgotHandler))

	// Authentication pages + JSON API
	loginHandler := loginfeature.NewHandler(sessionMgr, provider, resolver, profiles, logins, auditLog, providerName, appCfg.GoogleConfigured(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/api/auth/login", loginfeature.APIRoutes(loginHandler))

	signupHandler := signupfeature.NewHandler(sessionMgr, provider, bootstrapper, auditLog, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))
	r.Mount("/api/auth/signup", signupfeature.APIRoutes(signupHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/api/auth/logout", logoutfeature.APIRoutes(logoutHandler))

	// Optional Google sign-in
	if appCfg.GoogleConfigured() {
		googleHandler := authgooglefeature.NewHandler(sessionMgr, resolver, profiles, logins, auditLog,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, []byte(appCfg.SessionKey), secure, logger)
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	}

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorsfeature.RenderNotFound(w, req, "The page you requested does not exist.", "")
	})

	// Signed-in pages
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	profileHandler := profilefeature.NewHandler(sessionMgr, profiles, auditLog, logger)
	r.Mount("/settings/profile", profilefeature.Routes(profileHandler))
	r.Mount("/api/profile", profilefeature.APIRoutes(profileHandler))

	// Tenant-admin pages
	teamHandler := teamfeature.NewHandler(memberships, logger)
	r.Mount("/team", teamfeature.Routes(teamHandler, sessionMgr))

	billingHandler := billingfeature.NewHandler(logger)
	r.Mount("/billing", billingfeature.Routes(billingHandler, sessionMgr))

	auditLogsHandler := auditlogsfeature.NewHandler(auditStore, logger)
	r.Mount("/audit-logs", auditlogsfeature.Routes(auditLogsHandler, sessionMgr))

	return r, nil
}
