package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func testSession() auth.Session {
	return auth.Session{
		UserID:     "user-123",
		Email:      "owner@acme.com",
		TenantID:   "tenant-acme",
		TenantName: "Acme Workspace",
		Role:       models.RoleOwner,
	}
}

func TestNewSessionManager_EmptyKey_Fails(t *testing.T) {
	_, err := auth.NewSessionManager("", "test-session", "", time.Hour, false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestIssueAndRead_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()

	if err := sm.Issue(rec, testSession()); err != nil {
		t.Fatalf("issue: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "test-session" {
		t.Errorf("cookie name: got %q, want %q", c.Name, "test-session")
	}
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite: got %v, want Lax", c.SameSite)
	}
	if c.Path != "/" {
		t.Errorf("cookie path: got %q, want %q", c.Path, "/")
	}

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(c)

	got, ok := sm.Read(req)
	if !ok {
		t.Fatal("read failed for a freshly issued cookie")
	}
	if got != testSession() {
		t.Errorf("session mismatch: got %+v, want %+v", got, testSession())
	}
}

func TestIssue_IncompleteIdentity_Fails(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()

	err := sm.Issue(rec, auth.Session{Email: "no-id@test.com"})
	if err == nil {
		t.Fatal("expected error issuing a session without a user id")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be written for an invalid session")
	}
}

func TestIssue_ReplacesWholeSession(t *testing.T) {
	sm := newTestSessionManager(t)

	first := testSession()
	second := auth.Session{UserID: "user-456", Email: "viewer@other.com", Role: models.RoleViewer}

	rec := httptest.NewRecorder()
	if err := sm.Issue(rec, second); err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	got, ok := sm.Read(req)
	if !ok {
		t.Fatal("read failed")
	}
	if got.TenantID == first.TenantID && first.TenantID != "" {
		t.Error("old tenant context leaked into the reissued session")
	}
	if got != second {
		t.Errorf("session mismatch: got %+v, want %+v", got, second)
	}
}

func TestClear_RemovesCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()

	sm.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 deletion cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" {
		t.Errorf("cleared cookie value: got %q, want empty", cookies[0].Value)
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge: got %d, want negative", cookies[0].MaxAge)
	}
}

func TestRead_TamperedCookie_NoSession(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()
	if err := sm.Issue(rec, testSession()); err != nil {
		t.Fatalf("issue: %v", err)
	}
	c := rec.Result().Cookies()[0]
	c.Value = "x" + c.Value

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(c)

	if _, ok := sm.Read(req); ok {
		t.Error("tampered cookie produced a session")
	}
}

func TestLoadSessionUser_PutsSessionInContext(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if err := sm.Issue(rec, testSession()); err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *auth.Session
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentSession(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("no session in context after LoadSessionUser")
	}
	if got.UserID != "user-123" {
		t.Errorf("user id: got %q, want %q", got.UserID, "user-123")
	}
}

func TestRequireSignedIn_NoSession_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSignedIn_NoSession_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/profile", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoSession_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireSignedIn_WithSession_CallsNext(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	s := testSession()
	req := auth.WithTestSession(httptest.NewRequest("GET", "/dashboard", nil), &s)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("signed-in request did not reach the handler")
	}
}

func TestRequireTenantAdmin_RoleGating(t *testing.T) {
	sm := newTestSessionManager(t)

	cases := []struct {
		role    models.TenantRole
		allowed bool
	}{
		{models.RoleOwner, true},
		{models.RoleAdmin, true},
		{models.RoleMember, false},
		{models.RoleViewer, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			called := false
			handler := sm.RequireTenantAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			s := testSession()
			s.Role = tc.role
			req := auth.WithTestSession(httptest.NewRequest("GET", "/team", nil), &s)
			req.Header.Set("Accept", "text/html")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if called != tc.allowed {
				t.Errorf("role %s: handler called = %v, want %v", tc.role, called, tc.allowed)
			}
			if !tc.allowed {
				if rec.Code != http.StatusSeeOther {
					t.Errorf("expected redirect status, got %d", rec.Code)
				}
				if loc := rec.Header().Get("Location"); loc != "/forbidden" {
					t.Errorf("expected redirect to /forbidden, got %q", loc)
				}
			}
		})
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.RequireRole("OWNER")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	s := testSession()
	req := auth.WithTestSession(httptest.NewRequest("GET", "/team", nil), &s)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("role comparison should be case-insensitive")
	}
}
