package controllers

import (
	"net/http"
	"strconv"

	"kesher_server/apperrors"
	"kesher_server/middleware"
	"kesher_server/services"
)

type ChatController struct {
	ChatService *services.ChatService
	Moderator   services.Moderator
}

func NewChatController(chatService *services.ChatService, moderator services.Moderator) *ChatController {
	return &ChatController{ChatService: chatService, Moderator: moderator}
}

type sendMessageRequest struct {
	MatchID  string `json:"matchId"`
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
}

// SendMessage handles POST /api/chat/message. The sender must be the
// authenticated caller.
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SenderID != middleware.CallerID(r) {
		respondError(w, apperrors.New(apperrors.PermissionDenied, "cannot send a message as another user"))
		return
	}

	message, err := c.ChatService.StoreMessage(r.Context(), req.MatchID, req.SenderID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

// GetMessages handles GET /api/chat/messages?matchId=...&limit=...
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")

	var limit int32
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, apperrors.New(apperrors.InvalidArgument, "limit must be a non-negative integer"))
			return
		}
		limit = int32(n)
	}

	messages, err := c.ChatService.GetMessages(r.Context(), matchID, middleware.CallerID(r), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

type markAsReadRequest struct {
	MatchID string `json:"matchId"`
}

// MarkMessagesAsRead handles POST /api/chat/messages/mark-as-read.
func (c *ChatController) MarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var req markAsReadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := c.ChatService.MarkMessagesAsRead(r.Context(), req.MatchID, middleware.CallerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

type moderateRequest struct {
	Text string `json:"text"`
}

// Moderate handles POST /api/chat/moderate. It runs the gate without
// persisting anything, so clients can pre-check drafts.
func (c *ChatController) Moderate(w http.ResponseWriter, r *http.Request) {
	var req moderateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := c.Moderator.Moderate(req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
