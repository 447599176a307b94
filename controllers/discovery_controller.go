package controllers

import (
	"net/http"
	"strconv"

	"kesher_server/apperrors"
	"kesher_server/middleware"
	"kesher_server/models"
	"kesher_server/services"
)

type DiscoveryController struct {
	CandidateService *services.CandidateService
	ScoreService     *services.ScoreService
}

func NewDiscoveryController(candidateService *services.CandidateService, scoreService *services.ScoreService) *DiscoveryController {
	return &DiscoveryController{CandidateService: candidateService, ScoreService: scoreService}
}

// GetCandidates handles GET /api/discovery/candidates. Filters come from
// query parameters; the requester is always the authenticated caller.
func (c *DiscoveryController) GetCandidates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := services.CandidateFilters{Gender: query.Get("gender")}
	if v := query.Get("ageMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, apperrors.New(apperrors.InvalidArgument, "ageMin must be an integer"))
			return
		}
		filters.AgeMin = &n
	}
	if v := query.Get("ageMax"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, apperrors.New(apperrors.InvalidArgument, "ageMax must be an integer"))
			return
		}
		filters.AgeMax = &n
	}
	if v := query.Get("maxDistanceKm"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, apperrors.New(apperrors.InvalidArgument, "maxDistanceKm must be a number"))
			return
		}
		filters.MaxDistanceKm = &f
	}
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, apperrors.New(apperrors.InvalidArgument, "limit must be an integer"))
			return
		}
		filters.Limit = n
	}

	candidates, err := c.CandidateService.FindCandidates(r.Context(), middleware.CallerID(r), filters)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

type scoreRequest struct {
	UserID    string           `json:"userId"`
	Candidate models.Candidate `json:"candidate"`
}

// ScoreCandidate handles POST /api/discovery/score. The source user must be
// the authenticated caller.
func (c *DiscoveryController) ScoreCandidate(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID != middleware.CallerID(r) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "cannot score on behalf of another user"))
		return
	}

	score, err := c.ScoreService.Score(r.Context(), req.UserID, req.Candidate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, score)
}

type sharedInterestsRequest struct {
	UserA string `json:"userA"`
	UserB string `json:"userB"`
}

// SharedInterests handles POST /api/discovery/shared-interests. The caller
// must be one of the two users.
func (c *DiscoveryController) SharedInterests(w http.ResponseWriter, r *http.Request) {
	var req sharedInterestsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	caller := middleware.CallerID(r)
	if caller != req.UserA && caller != req.UserB {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "caller must be one of the two users"))
		return
	}

	shared, err := c.ScoreService.SharedInterests(r.Context(), req.UserA, req.UserB)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"sharedInterests": shared})
}
