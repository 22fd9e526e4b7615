package signup_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/features/signup"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/authprovider"
	"github.com/dalemusser/tenanthub/internal/app/system/provision"
	"github.com/dalemusser/tenanthub/internal/app/system/tenantctx"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/tenanthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubProvider struct {
	identity authprovider.UserIdentity
	err      error
}

func (p *stubProvider) SignIn(ctx context.Context, email, password string) (authprovider.UserIdentity, error) {
	return p.identity, p.err
}

func (p *stubProvider) SignUp(ctx context.Context, email, password string) (authprovider.UserIdentity, error) {
	return p.identity, p.err
}

type fakeTenantCreator struct{ err error }

func (f *fakeTenantCreator) Create(ctx context.Context, name string) (models.Tenant, error) {
	if f.err != nil {
		return models.Tenant{}, f.err
	}
	return models.Tenant{ID: primitive.NewObjectID(), Name: name, CreatedAt: time.Now()}, nil
}

type fakeMembershipCreator struct{ err error }

func (f *fakeMembershipCreator) Create(ctx context.Context, tenantID, userID string, role models.TenantRole) error {
	return f.err
}

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

func newTestHandler(t *testing.T, provider authprovider.Provider, bootstrapper *provision.Bootstrapper) *signup.Handler {
	t.Helper()
	return signup.NewHandler(newTestSessionManager(t), provider, bootstrapper, nil, zap.NewNop())
}

func TestHandleSignupAPI_Success_Returns201(t *testing.T) {
	b := provision.NewBootstrapper(&fakeTenantCreator{}, &fakeMembershipCreator{}, zap.NewNop())
	h := newTestHandler(t, authprovider.NewBypassProvider(), b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"jane@acme.com","password":"longenough"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		UserID     string `json:"userId"`
		RedirectTo string `json:"redirectTo"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != "e2e-jane@acme.com" {
		t.Errorf("userId: got %q, want %q", resp.UserID, "e2e-jane@acme.com")
	}
	if resp.RedirectTo != "/dashboard" {
		t.Errorf("redirectTo: got %q, want %q", resp.RedirectTo, "/dashboard")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a session cookie on successful signup")
	}
}

func TestHandleSignupAPI_ShortPassword_Rejected(t *testing.T) {
	b := provision.NewBootstrapper(&fakeTenantCreator{}, &fakeMembershipCreator{}, zap.NewNop())
	h := newTestHandler(t, authprovider.NewBypassProvider(), b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"jane@acme.com","password":"seven77"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Provide a valid email and a password with at least 8 characters.")
}

func TestHandleSignupAPI_EmptyEmail_Rejected(t *testing.T) {
	b := provision.NewBootstrapper(&fakeTenantCreator{}, &fakeMembershipCreator{}, zap.NewNop())
	h := newTestHandler(t, authprovider.NewBypassProvider(), b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"  ","password":"longenough"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleSignupAPI_DuplicateEmail_SurfacesProviderMessage(t *testing.T) {
	b := provision.NewBootstrapper(&fakeTenantCreator{}, &fakeMembershipCreator{}, zap.NewNop())
	h := newTestHandler(t, &stubProvider{err: &authprovider.AuthError{Message: "An account with that email already exists."}}, b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"jane@acme.com","password":"longenough"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "An account with that email already exists.")
}

func TestHandleSignupAPI_MembershipFailure_Returns500AndNoSession(t *testing.T) {
	b := provision.NewBootstrapper(
		&fakeTenantCreator{},
		&fakeMembershipCreator{err: errors.New("duplicate key")},
		zap.NewNop(),
	)
	h := newTestHandler(t, authprovider.NewBypassProvider(), b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"jane@acme.com","password":"longenough"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Your account was created, but tenant setup is incomplete.")
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no session cookie should be issued when tenant setup fails")
	}
}

func TestHandleSignupAPI_NoStores_FallsBackToDerivedContext(t *testing.T) {
	sm := newTestSessionManager(t)
	b := provision.NewBootstrapper(nil, nil, zap.NewNop())
	h := signup.NewHandler(sm, authprovider.NewBypassProvider(), b, nil, zap.NewNop())

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"owner@acme.com","password":"longenough"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	verify := testutil.NewRequest("GET", "/dashboard")
	verify.AddCookie(rec.Result().Cookies()[0])
	s, ok := sm.Read(verify)
	if !ok {
		t.Fatal("issued cookie does not decode")
	}
	want := tenantctx.DeriveTenantContextFromEmail("owner@acme.com", models.RoleOwner)
	if s.TenantID != want.TenantID || s.TenantName != want.TenantName || s.Role != want.Role {
		t.Errorf("derived context mismatch: got {%s %s %s}, want %+v", s.TenantID, s.TenantName, s.Role, want)
	}
}

func TestHandleSignupAPI_InvalidJSON(t *testing.T) {
	b := provision.NewBootstrapper(nil, nil, zap.NewNop())
	h := newTestHandler(t, authprovider.NewBypassProvider(), b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `not json at all`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Invalid JSON payload.")
}

func TestHandleSignupAPI_TenantInsertFailure_ReportsAccountCreated(t *testing.T) {
	b := provision.NewBootstrapper(
		&fakeTenantCreator{err: errors.New("connection reset")},
		&fakeMembershipCreator{},
		zap.NewNop(),
	)
	h := newTestHandler(t, authprovider.NewBypassProvider(), b)

	req := testutil.NewJSONRequest("POST", "/api/auth/signup", `{"email":"jane@acme.com","password":"longenough"}`)
	rec := testutil.NewRecorder()

	h.HandleSignupAPI(rec, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Your account was created, but tenant setup is incomplete.")
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no session cookie should be issued when tenant setup fails")
	}
}
