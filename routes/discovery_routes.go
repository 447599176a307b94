package routes

import (
	"net/http"

	"kesher_server/controllers"

	"github.com/gorilla/mux"
)

func RegisterDiscoveryRoutes(router *mux.Router, controller *controllers.DiscoveryController) {
	sub := router.PathPrefix("/discovery").Subrouter()
	sub.HandleFunc("/candidates", controller.GetCandidates).Methods(http.MethodGet)
	sub.HandleFunc("/score", controller.ScoreCandidate).Methods(http.MethodPost)
	sub.HandleFunc("/shared-interests", controller.SharedInterests).Methods(http.MethodPost)
}
