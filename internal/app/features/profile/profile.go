// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/tenanthub/internal/app/features/errors"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tenanthub/internal/app/system/normalize"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"github.com/dalemusser/tenanthub/internal/app/system/viewdata"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Persistence outcomes reported to API clients. "database+session" means the
// profile reached the store; "session" means the save degraded to the cookie.
const (
	PersistenceDatabase = "database+session"
	PersistenceSession  = "session"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /settings/profile                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type profilePageData struct {
	viewdata.BaseVM
	ProfileFullName string
	ProfileJobTitle string
	MaxFieldLen     int
}

// ServeProfilePage renders the profile settings form. Initial values come
// from the persisted store when available, otherwise the session cache.
func (h *Handler) ServeProfilePage(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fullName, jobTitle := s.FullName, s.JobTitle
	if p, found, err := h.Profiles.Load(ctx, s.UserID); err == nil && found {
		fullName, jobTitle = p.FullName, p.JobTitle
	}

	templates.Render(w, r, "profile_settings", profilePageData{
		BaseVM:          viewdata.NewBaseVM(r, "Profile", "/dashboard"),
		ProfileFullName: fullName,
		ProfileJobTitle: jobTitle,
		MaxFieldLen:     models.MaxProfileFieldLen,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/profile                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

type profileResponse struct {
	Profile     models.UserProfile `json:"profile"`
	Persistence string             `json:"persistence"`
}

// HandleGetProfile returns the current profile. Persisted values win over
// the session cache when both exist.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		uierrors.WriteJSONError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	resp := profileResponse{
		Profile:     models.UserProfile{FullName: s.FullName, JobTitle: s.JobTitle},
		Persistence: PersistenceSession,
	}
	if p, found, err := h.Profiles.Load(ctx, s.UserID); err == nil && found {
		resp.Profile = p
		resp.Persistence = PersistenceDatabase
	}

	uierrors.WriteJSON(w, http.StatusOK, resp)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/profile                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
}

// HandleUpdateProfile validates and saves the profile, then rewrites the
// whole session so the cookie cache matches whatever the store accepted.
// Overlong fields are rejected outright, never truncated.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.CurrentSession(r)
	if !ok {
		uierrors.WriteJSONError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	fullName := htmlsanitize.Strip(normalize.Name(req.FullName))
	jobTitle := htmlsanitize.Strip(normalize.Name(req.JobTitle))
	if len(fullName) > models.MaxProfileFieldLen || len(jobTitle) > models.MaxProfileFieldLen {
		uierrors.WriteJSONError(w, http.StatusBadRequest, "Profile fields must be 80 characters or fewer.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, persisted, err := h.Profiles.Save(ctx, s.UserID, models.UserProfile{
		FullName: fullName,
		JobTitle: jobTitle,
	})
	if err != nil {
		h.Log.Error("profile: save failed", zap.Error(err), zap.String("user_id", s.UserID))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	// Full session rewrite: identity and tenant fields carry over, profile
	// fields take the saved values.
	next := *s
	next.FullName = saved.FullName
	next.JobTitle = saved.JobTitle
	if err := h.SessionMgr.Issue(w, next); err != nil {
		h.Log.Error("profile: session rewrite failed", zap.Error(err), zap.String("user_id", s.UserID))
		uierrors.WriteJSONError(w, http.StatusInternalServerError, "Unable to update session. Please try again.")
		return
	}

	persistence := PersistenceSession
	if persisted {
		persistence = PersistenceDatabase
	}
	h.AuditLog.ProfileUpdated(ctx, r, s.UserID, s.TenantID, persistence)

	uierrors.WriteJSON(w, http.StatusOK, profileResponse{
		Profile:     saved,
		Persistence: persistence,
	})
}
