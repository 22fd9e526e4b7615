// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to
// TenantHub: the Mongo connection, session cookie parameters, auth
// provider selection, Google OAuth credentials, and audit routing.
type AppConfig struct {
	// MongoDB connection configuration. A blank MongoURI means TenantHub
	// runs without an authoritative store: tenant context is derived from
	// the email address, profile writes live in the session only, and the
	// password provider is unavailable.
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: tenanthub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session cookie lifetime (default: 168h)

	// Auth bypass mode: the provider accepts any credentials and mints a
	// deterministic identity from the email. For local development and
	// end-to-end test rigs only.
	AuthBypass bool

	// Google OAuth configuration (both set enables /auth/google)
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks and absolute links
	BaseURL string // e.g., "https://tenanthub.example.com" or "http://localhost:3000"

	// Audit logging: 'all' (db+log), 'db', 'log', or 'off' per category
	AuditLogAuth   string // login/signup/logout events
	AuditLogTenant string // tenant bootstrap and profile events
}

// MongoConfigured reports whether an authoritative Mongo store is
// configured. Everything that degrades without a database keys off this.
func (c AppConfig) MongoConfigured() bool {
	return c.MongoURI != ""
}

// GoogleConfigured reports whether Google sign-in should be mounted.
func (c AppConfig) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
