// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kesher_matches_created_total",
		Help: "Matches created.",
	})
	MatchesClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kesher_matches_closed_total",
		Help: "Matches closed.",
	})
	MessagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kesher_messages_stored_total",
		Help: "Chat messages accepted and persisted.",
	})
	MessagesBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kesher_messages_blocked_total",
		Help: "Chat messages rejected by the moderation gate.",
	}, []string{"label"})
	PushSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kesher_push_sent_total",
		Help: "Push notifications dispatched.",
	})
	PushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kesher_push_failed_total",
		Help: "Push dispatch failures (best-effort, non-fatal).",
	})
	TokensPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kesher_push_tokens_pruned_total",
		Help: "Invalid device tokens removed after failed deliveries.",
	})
)

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
