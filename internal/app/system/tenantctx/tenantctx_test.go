package tenantctx_test

import (
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/system/tenantctx"
	"github.com/dalemusser/tenanthub/internal/domain/models"
)

func TestDeriveTenantContextFromEmail_AcmeOwner(t *testing.T) {
	tc := tenantctx.DeriveTenantContextFromEmail("owner@acme.com", models.RoleOwner)

	if tc.TenantID != "tenant-acme" {
		t.Errorf("tenant id: got %q, want %q", tc.TenantID, "tenant-acme")
	}
	if tc.TenantName != "Acme Workspace" {
		t.Errorf("tenant name: got %q, want %q", tc.TenantName, "Acme Workspace")
	}
	if tc.Role != models.RoleOwner {
		t.Errorf("role: got %q, want %q", tc.Role, models.RoleOwner)
	}
}

func TestDeriveTenantContextFromEmail_Deterministic(t *testing.T) {
	a := tenantctx.DeriveTenantContextFromEmail("user@big-corp.example.org", models.RoleMember)
	b := tenantctx.DeriveTenantContextFromEmail("user@big-corp.example.org", models.RoleMember)
	if a != b {
		t.Errorf("derivation is not deterministic: %+v vs %+v", a, b)
	}
}

func TestDeriveTenantID(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"owner@acme.com", "tenant-acme"},
		{"a@ACME.com", "tenant-acme"},
		{"a@big-corp.co.uk", "tenant-big-corp"},
		{"a@my_company.io", "tenant-my-company"},
		{"a@---.com", "tenant-workspace"},
		{"no-at-sign", "tenant-workspace"},
		{"", "tenant-workspace"},
		{"a@123go.dev", "tenant-123go"},
	}

	for _, tc := range cases {
		if got := tenantctx.DeriveTenantID(tc.email); got != tc.want {
			t.Errorf("DeriveTenantID(%q): got %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestDeriveTenantContextFromEmail_Names(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"a@acme.com", "Acme Workspace"},
		{"a@big-corp.com", "Big Corp Workspace"},
		{"a@snake_case.io", "Snake Case Workspace"},
		{"no-at-sign", "Workspace Workspace"},
	}

	for _, tc := range cases {
		got := tenantctx.DeriveTenantContextFromEmail(tc.email, models.RoleOwner)
		if got.TenantName != tc.want {
			t.Errorf("name for %q: got %q, want %q", tc.email, got.TenantName, tc.want)
		}
	}
}

func TestInferRoleFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  models.TenantRole
	}{
		{"owner@acme.com", models.RoleOwner},
		{"admin@acme.com", models.RoleAdmin},
		{"site-admin@acme.com", models.RoleAdmin},
		{"member@acme.com", models.RoleMember},
		{"viewer@acme.com", models.RoleViewer},
		{"alice@acme.com", models.RoleOwner},
		{"ADMIN@acme.com", models.RoleAdmin},
		{"admin-at-heart@wherever", models.RoleAdmin},
	}

	for _, tc := range cases {
		if got := tenantctx.InferRoleFromEmail(tc.email); got != tc.want {
			t.Errorf("InferRoleFromEmail(%q): got %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestParseTenantRole(t *testing.T) {
	cases := []struct {
		in   string
		want models.TenantRole
	}{
		{"owner", models.RoleOwner},
		{"Owner", models.RoleOwner},
		{"OWNER", models.RoleOwner},
		{" admin ", models.RoleAdmin},
		{"viewer", models.RoleViewer},
		{"member", models.RoleMember},
		{"superuser", models.RoleMember},
		{"", models.RoleMember},
	}

	for _, tc := range cases {
		if got := models.ParseTenantRole(tc.in); got != tc.want {
			t.Errorf("ParseTenantRole(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
