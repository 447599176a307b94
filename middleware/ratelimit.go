package middleware

import (
	"encoding/json"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const limiterCacheSize = 1024

// RateLimit enforces a per-caller token bucket. Limiters are kept in a
// bounded LRU so an open set of callers cannot grow memory without bound.
// Unauthenticated requests fall back to the remote address as the key.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiters, _ := lru.New[string, *rate.Limiter](limiterCacheSize)

	limiterFor := func(key string) *rate.Limiter {
		if limiter, ok := limiters.Get(key); ok {
			return limiter
		}
		limiter := rate.NewLimiter(rate.Limit(rps), burst)
		limiters.Add(key, limiter)
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := CallerID(r)
			if key == "" {
				key = r.RemoteAddr
			}

			if !limiterFor(key).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{
						"code":    "resource-exhausted",
						"message": "too many requests",
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
