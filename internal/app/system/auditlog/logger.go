// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/store/audit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout, signup).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Tenant controls logging for tenant lifecycle events (bootstrap, profile updates).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Tenant string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to RemoteAddr
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.TenantID != "" {
		fields = append(fields, zap.String("tenant_id", event.TenantID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	// Determine which config setting applies based on event category
	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryTenant:
		setting = l.config.Tenant
	default:
		setting = "all" // Default to logging everything for unknown categories
	}

	// Check if logging is disabled for this category
	if setting == "off" {
		return
	}

	// Log to zap if configured
	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	// Log to MongoDB if configured and a store is available
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, email, tenantID, provider string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    userID,
		Email:     email,
		TenantID:  tenantID,
		IP:        getClientIP(r),
		Success:   true,
		Details: map[string]string{
			"provider": provider,
		},
	})
}

// LoginFailed logs a rejected sign-in attempt. The attempted email is kept
// in details rather than the email field so failed lookups are not confused
// with real identities.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedEmail, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		IP:            getClientIP(r),
		Success:       false,
		FailureReason: reason,
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// SignupSuccess logs a completed registration.
func (l *Logger) SignupSuccess(ctx context.Context, r *http.Request, userID, email, tenantID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSignupSuccess,
		UserID:    userID,
		Email:     email,
		TenantID:  tenantID,
		IP:        getClientIP(r),
		Success:   true,
	})
}

// SignupFailed logs a rejected registration attempt.
func (l *Logger) SignupFailed(ctx context.Context, r *http.Request, attemptedEmail, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventSignupFailed,
		IP:            getClientIP(r),
		Success:       false,
		FailureReason: reason,
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// Logout logs a user logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID, tenantID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		TenantID:  tenantID,
		IP:        getClientIP(r),
		Success:   true,
	})
}

// --- Tenant Events ---

// TenantBootstrapped logs a successful tenant bootstrap for a new user.
func (l *Logger) TenantBootstrapped(ctx context.Context, r *http.Request, userID, tenantID, tenantName, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryTenant,
		EventType: audit.EventTenantBootstrapped,
		UserID:    userID,
		TenantID:  tenantID,
		IP:        getClientIP(r),
		Success:   true,
		Details: map[string]string{
			"tenant_name": tenantName,
			"role":        role,
		},
	})
}

// TenantBootstrapFailed logs a failed tenant bootstrap. An orphaned tenant id
// is included when the tenant insert succeeded but the membership did not.
func (l *Logger) TenantBootstrapFailed(ctx context.Context, r *http.Request, userID, orphanTenantID, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryTenant,
		EventType:     audit.EventTenantBootstrapFailed,
		UserID:        userID,
		TenantID:      orphanTenantID,
		IP:            getClientIP(r),
		Success:       false,
		FailureReason: reason,
	})
}

// ProfileUpdated logs a profile save, noting whether it persisted to the
// database or degraded to session-only storage.
func (l *Logger) ProfileUpdated(ctx context.Context, r *http.Request, userID, tenantID, persistence string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryTenant,
		EventType: audit.EventProfileUpdated,
		UserID:    userID,
		TenantID:  tenantID,
		IP:        getClientIP(r),
		Success:   true,
		Details: map[string]string{
			"persistence": persistence,
		},
	})
}
