package routes

import (
	"net/http"

	"kesher_server/controllers"

	"github.com/gorilla/mux"
)

func RegisterChatRoutes(router *mux.Router, controller *controllers.ChatController) {
	sub := router.PathPrefix("/chat").Subrouter()
	sub.HandleFunc("/message", controller.SendMessage).Methods(http.MethodPost)
	sub.HandleFunc("/messages", controller.GetMessages).Methods(http.MethodGet)
	sub.HandleFunc("/messages/mark-as-read", controller.MarkMessagesAsRead).Methods(http.MethodPost)
	sub.HandleFunc("/moderate", controller.Moderate).Methods(http.MethodPost)
}
