package routers

import (
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.With(middlewares.LoginRateLimit).Post("/login", authController.Login)
	router.With(middlewares.Authenticate).Get("/me", authController.Me)
}
