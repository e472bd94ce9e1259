package routers

import (
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.Use(middlewares.AuthenticateAdmin)
	router.Get("/", userController.ListUsers)
	router.Post("/", userController.CreateUser)
	router.Delete("/{login}", userController.DeactivateUser)
}
