package routes

import (
	"net/http"

	"kesher_server/controllers"

	"github.com/gorilla/mux"
)

func RegisterMatchRoutes(router *mux.Router, controller *controllers.MatchController) {
	sub := router.PathPrefix("/match").Subrouter()
	sub.HandleFunc("", controller.CreateMatch).Methods(http.MethodPost)
	sub.HandleFunc("/active", controller.GetActiveMatch).Methods(http.MethodGet)
	sub.HandleFunc("/{matchId}/close", controller.CloseMatch).Methods(http.MethodPost)
	sub.HandleFunc("/{matchId}/starters", controller.ListStarters).Methods(http.MethodGet)
	sub.HandleFunc("/{matchId}/starters/mark-used", controller.MarkStarterUsed).Methods(http.MethodPost)
}
