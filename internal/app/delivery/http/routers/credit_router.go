package routers

import (
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCreditRoutes(router chi.Router, middlewares *middlewares.Middlewares, creditController *controllers.CreditController) {
	router.With(middlewares.Authenticate).Get("/", creditController.GetCredits)
}
