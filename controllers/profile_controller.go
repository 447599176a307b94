package controllers

import (
	"net/http"

	"kesher_server/apperrors"
	"kesher_server/middleware"
	"kesher_server/models"
	"kesher_server/services"

	"github.com/gorilla/mux"
)

type ProfileController struct {
	ProfileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// CreateProfile handles POST /api/profile. The profile is created for the
// authenticated caller; the body's userId must match.
func (c *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	if profile.UserID != middleware.CallerID(r) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "cannot create a profile for another user"))
		return
	}

	created, err := c.ProfileService.CreateProfile(r.Context(), profile)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetProfile handles GET /api/profile/{userId}. Any authenticated user may
// read the projection.
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	view, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// UpdateProfile handles PATCH /api/profile/{userId}. Only the owner may
// write.
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID != middleware.CallerID(r) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "cannot update another user's profile"))
		return
	}

	var update services.ProfileUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	updated, err := c.ProfileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteProfile handles DELETE /api/profile/{userId}. Only the owner may
// delete.
func (c *ProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID != middleware.CallerID(r) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "cannot delete another user's profile"))
		return
	}

	if err := c.ProfileService.DeleteProfile(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
