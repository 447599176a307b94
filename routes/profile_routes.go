// Package routes binds controllers to their URL paths.
package routes

import (
	"net/http"

	"kesher_server/controllers"

	"github.com/gorilla/mux"
)

func RegisterProfileRoutes(router *mux.Router, controller *controllers.ProfileController) {
	sub := router.PathPrefix("/profile").Subrouter()
	sub.HandleFunc("", controller.CreateProfile).Methods(http.MethodPost)
	sub.HandleFunc("/{userId}", controller.GetProfile).Methods(http.MethodGet)
	sub.HandleFunc("/{userId}", controller.UpdateProfile).Methods(http.MethodPatch)
	sub.HandleFunc("/{userId}", controller.DeleteProfile).Methods(http.MethodDelete)
}
