// Package controllers decodes HTTP requests, enforces caller identity, and
// delegates to the service layer.
package controllers

import (
	"encoding/json"
	"net/http"

	"kesher_server/apperrors"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	if code == apperrors.Internal {
		zap.S().Errorf("🔥 internal error: %v", err)
	}
	respondJSON(w, apperrors.HTTPStatus(err), map[string]interface{}{
		"error": map[string]string{
			"code":    string(code),
			"message": apperrors.Message(err),
		},
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, apperrors.New(apperrors.InvalidArgument, "invalid request body"))
		return false
	}
	return true
}
