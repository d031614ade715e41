package routes

import (
	"triphita/internal/handlers"
	"triphita/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	postHandler *handlers.PostHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	router.HandleFunc("/healthz", healthHandler.Healthz).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", userHandler.Register).Methods("POST")

	api.HandleFunc("/search", postHandler.SearchPosts).Methods("GET")

	api.HandleFunc("/blog-posts", postHandler.ListPosts).Methods("GET")
	api.HandleFunc("/blog-posts", postHandler.CreatePost).Methods("POST")
	api.HandleFunc("/blog-posts/stats", postHandler.GetStats).Methods("GET")
	api.HandleFunc("/blog-posts/{id:[0-9]+}", postHandler.GetPost).Methods("GET")
	api.HandleFunc("/blog-posts/{id:[0-9]+}", postHandler.UpdatePost).Methods("PATCH")
	api.HandleFunc("/blog-posts/{id:[0-9]+}", postHandler.DeletePost).Methods("DELETE")
}
