// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/authz"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// Session context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserEmail  string
	FullName   string
	TenantName string

	// Navigation gating. Team, billing, and audit log sections are visible
	// to tenant admins (Owner or Admin) only.
	ShowTeam      bool
	ShowBilling   bool
	ShowAuditLogs bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
}

// NewBaseVM creates a fully populated BaseVM for a page. Everything here is
// derived from the server-issued session; request parameters never influence
// the identity or tenant fields.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}

	s, ok := auth.CurrentSession(r)
	if !ok {
		return vm
	}

	vm.IsLoggedIn = true
	vm.Role = string(s.Role)
	vm.UserEmail = s.Email
	vm.FullName = s.FullName
	vm.TenantName = s.TenantName

	admin := authz.IsTenantAdmin(r)
	vm.ShowTeam = admin
	vm.ShowBilling = admin
	vm.ShowAuditLogs = authz.CanViewAuditLogs(r)

	return vm
}
