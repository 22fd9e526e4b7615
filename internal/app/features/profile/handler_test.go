package profile_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/features/profile"
	profilestore "github.com/dalemusser/tenanthub/internal/app/store/profiles"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/tenanthub/internal/testutil"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

// newDegradedHandler builds a handler whose profile store has no database,
// so every save degrades to session-only persistence.
func newDegradedHandler(t *testing.T) (*profile.Handler, *auth.SessionManager) {
	t.Helper()
	sm := newTestSessionManager(t)
	logger := zap.NewNop()
	return profile.NewHandler(sm, profilestore.New(nil, logger), nil, logger), sm
}

func sessionWith(fullName string) auth.Session {
	return auth.Session{
		UserID:     "user-1",
		Email:      "owner@acme.com",
		TenantID:   "tenant-acme",
		TenantName: "Acme Workspace",
		Role:       models.RoleOwner,
		FullName:   fullName,
	}
}

func TestHandleGetProfile_NoSession_Returns401(t *testing.T) {
	h, _ := newDegradedHandler(t)

	req := testutil.NewRequest("GET", "/api/profile")
	rec := testutil.NewRecorder()

	h.HandleGetProfile(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Authentication required.")
}

func TestHandleGetProfile_SessionOnly_ReportsSessionPersistence(t *testing.T) {
	h, _ := newDegradedHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/api/profile", sessionWith("Ada Lovelace"))
	rec := testutil.NewRecorder()

	h.HandleGetProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Profile     models.UserProfile `json:"profile"`
		Persistence string             `json:"persistence"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profile.FullName != "Ada Lovelace" {
		t.Errorf("fullName: got %q, want %q", resp.Profile.FullName, "Ada Lovelace")
	}
	if resp.Persistence != profile.PersistenceSession {
		t.Errorf("persistence: got %q, want %q", resp.Persistence, profile.PersistenceSession)
	}
}

func TestHandleUpdateProfile_NoSession_Returns401(t *testing.T) {
	h, _ := newDegradedHandler(t)

	req := testutil.NewJSONRequest("POST", "/api/profile", `{"fullName":"X"}`)
	rec := testutil.NewRecorder()

	h.HandleUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleUpdateProfile_InvalidJSON(t *testing.T) {
	h, _ := newDegradedHandler(t)

	req := testutil.WithSession(testutil.NewJSONRequest("POST", "/api/profile", `{nope`), sessionWith(""))
	rec := testutil.NewRecorder()

	h.HandleUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Invalid JSON payload.")
}

func TestHandleUpdateProfile_OverlongField_Rejected(t *testing.T) {
	h, _ := newDegradedHandler(t)

	long := strings.Repeat("x", models.MaxProfileFieldLen+1)
	body := `{"fullName":"` + long + `","jobTitle":"ok"}`
	req := testutil.WithSession(testutil.NewJSONRequest("POST", "/api/profile", body), sessionWith(""))
	rec := testutil.NewRecorder()

	h.HandleUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Profile fields must be 80 characters or fewer.")
	if len(rec.Result().Cookies()) != 0 {
		t.Error("session must not be reissued for rejected input")
	}
}

func TestHandleUpdateProfile_ExactCap_Accepted(t *testing.T) {
	h, _ := newDegradedHandler(t)

	exact := strings.Repeat("x", models.MaxProfileFieldLen)
	body := `{"fullName":"` + exact + `"}`
	req := testutil.WithSession(testutil.NewJSONRequest("POST", "/api/profile", body), sessionWith(""))
	rec := testutil.NewRecorder()

	h.HandleUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleUpdateProfile_Degraded_ReportsSessionAndRewritesCookie(t *testing.T) {
	h, sm := newDegradedHandler(t)

	body := `{"fullName":"Grace Hopper","jobTitle":"Rear Admiral"}`
	req := testutil.WithSession(testutil.NewJSONRequest("POST", "/api/profile", body), sessionWith("Old Name"))
	rec := testutil.NewRecorder()

	h.HandleUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Profile     models.UserProfile `json:"profile"`
		Persistence string             `json:"persistence"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Persistence != profile.PersistenceSession {
		t.Errorf("persistence: got %q, want %q (store is unconfigured)", resp.Persistence, profile.PersistenceSession)
	}
	if resp.Profile.FullName != "Grace Hopper" {
		t.Errorf("fullName: got %q, want %q", resp.Profile.FullName, "Grace Hopper")
	}

	// The whole session is rewritten: identity and tenant fields carry over,
	// profile fields take the new values.
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected a reissued session cookie, got %d cookies", len(cookies))
	}
	verify := testutil.NewRequest("GET", "/dashboard")
	verify.AddCookie(cookies[0])
	s, ok := sm.Read(verify)
	if !ok {
		t.Fatal("reissued cookie does not decode")
	}
	if s.FullName != "Grace Hopper" || s.JobTitle != "Rear Admiral" {
		t.Errorf("profile fields not rewritten: %+v", s)
	}
	if s.UserID != "user-1" || s.TenantID != "tenant-acme" || s.Role != models.RoleOwner {
		t.Errorf("identity/tenant fields lost in rewrite: %+v", s)
	}
}

func TestHandleUpdateProfile_SanitizesMarkup(t *testing.T) {
	h, sm := newDegradedHandler(t)

	body := `{"fullName":"<script>alert(1)</script>Ada","jobTitle":"<b>Engineer</b>"}`
	req := testutil.WithSession(testutil.NewJSONRequest("POST", "/api/profile", body), sessionWith(""))
	rec := testutil.NewRecorder()

	h.HandleUpdateProfile(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	verify := testutil.NewRequest("GET", "/")
	verify.AddCookie(rec.Result().Cookies()[0])
	s, ok := sm.Read(verify)
	if !ok {
		t.Fatal("cookie does not decode")
	}
	if strings.Contains(s.FullName, "<") || strings.Contains(s.JobTitle, "<") {
		t.Errorf("markup survived sanitization: fullName=%q jobTitle=%q", s.FullName, s.JobTitle)
	}
}
