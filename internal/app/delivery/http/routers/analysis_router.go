package routers

import (
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAnalysisRoutes(router chi.Router, middlewares *middlewares.Middlewares, analysisController *controllers.AnalysisController) {
	router.With(middlewares.Authenticate).Post("/", analysisController.AnalyzeAudio)
}
