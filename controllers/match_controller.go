package controllers

import (
	"net/http"

	"kesher_server/apperrors"
	"kesher_server/middleware"
	"kesher_server/services"

	"github.com/gorilla/mux"
)

type MatchController struct {
	MatchService   *services.MatchService
	StarterService *services.StarterService
}

func NewMatchController(matchService *services.MatchService, starterService *services.StarterService) *MatchController {
	return &MatchController{MatchService: matchService, StarterService: starterService}
}

type createMatchRequest struct {
	UserA string  `json:"userA"`
	UserB string  `json:"userB"`
	Score float64 `json:"score"`
}

// CreateMatch handles POST /api/match.
// TODO: decide whether match creation should require the caller to be one of
// the participants, or stay open to any authenticated backend caller.
func (c *MatchController) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	match, err := c.MatchService.CreateMatch(r.Context(), req.UserA, req.UserB, req.Score)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, match)
}

// GetActiveMatch handles GET /api/match/active?userId=... The caller may
// only ask about themselves.
func (c *MatchController) GetActiveMatch(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = middleware.CallerID(r)
	}
	if userID != middleware.CallerID(r) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "cannot read another user's active match"))
		return
	}

	match, err := c.MatchService.GetActiveMatch(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"match": match})
}

type closeMatchRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CloseMatch handles POST /api/match/{matchId}/close. Participant checks
// live in the service.
func (c *MatchController) CloseMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var req closeMatchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	if err := c.MatchService.CloseMatch(r.Context(), matchID, middleware.CallerID(r), req.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"closed": true})
}

// ListStarters handles GET /api/match/{matchId}/starters. Participants only.
func (c *MatchController) ListStarters(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	match, err := c.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !match.HasParticipant(middleware.CallerID(r)) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "not a participant of this match"))
		return
	}

	starters, err := c.StarterService.ListStarters(r.Context(), matchID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"starters": starters})
}

type markStarterUsedRequest struct {
	Order int `json:"order"`
}

// MarkStarterUsed handles POST /api/match/{matchId}/starters/mark-used.
func (c *MatchController) MarkStarterUsed(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var req markStarterUsedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Order < 1 || req.Order > 3 {
		respondError(w, apperrors.New(apperrors.InvalidArgument, "order must be between 1 and 3"))
		return
	}

	match, err := c.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !match.HasParticipant(middleware.CallerID(r)) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "not a participant of this match"))
		return
	}

	if err := c.StarterService.MarkStarterUsed(r.Context(), matchID, req.Order); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"used": true})
}
