package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestSession builds a fully populated session for handler tests.
func TestSession(role models.TenantRole) auth.Session {
	return auth.Session{
		UserID:     primitive.NewObjectID().Hex(),
		Email:      strings.ToLower(string(role)) + "@test.com",
		TenantID:   "tenant-test",
		TenantName: "Test Workspace",
		Role:       role,
		FullName:   "Test " + string(role),
	}
}

// OwnerSession returns a session with the Owner role.
func OwnerSession() auth.Session { return TestSession(models.RoleOwner) }

// AdminSession returns a session with the Admin role.
func AdminSession() auth.Session { return TestSession(models.RoleAdmin) }

// MemberSession returns a session with the Member role.
func MemberSession() auth.Session { return TestSession(models.RoleMember) }

// ViewerSession returns a session with the Viewer role.
func ViewerSession() auth.Session { return TestSession(models.RoleViewer) }

// WithSession adds a session to the request context, bypassing the session
// middleware. Use this to test handlers that call auth.CurrentSession.
func WithSession(r *http.Request, s auth.Session) *http.Request {
	return auth.WithTestSession(r, &s)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a session in context.
func NewAuthenticatedRequest(method, target string, s auth.Session) *http.Request {
	return WithSession(httptest.NewRequest(method, target, nil), s)
}

// NewJSONRequest creates a request with a JSON body and content type.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
