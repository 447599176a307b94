// Package middleware holds the HTTP middlewares shared by all API routes.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const callerIDKey contextKey = "callerID"

// CallerID returns the authenticated user id attached by Auth, or "" for
// unauthenticated requests.
func CallerID(r *http.Request) string {
	id, _ := r.Context().Value(callerIDKey).(string)
	return id
}

// WithCallerID returns a copy of r carrying the given caller identity.
func WithCallerID(r *http.Request, callerID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), callerIDKey, callerID))
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    "unauthenticated",
			"message": message,
		},
	})
}

// Auth validates the bearer token and stores the subject claim as the
// caller id. Tokens are HMAC-signed (HS256).
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				writeAuthError(w, http.StatusUnauthorized, "token has no subject")
				return
			}

			next.ServeHTTP(w, WithCallerID(r, subject))
		})
	}
}
