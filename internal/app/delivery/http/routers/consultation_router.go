package routers

import (
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConsultationRoutes(router chi.Router, middlewares *middlewares.Middlewares, consultationController *controllers.ConsultationController) {
	router.With(middlewares.Authenticate).Post("/consultations", consultationController.SaveConsultation)
	router.With(middlewares.Authenticate).Get("/patients", consultationController.ListPatients)
	router.With(middlewares.AuthenticateAdmin).Delete("/patients/{rowIndex}", consultationController.DeletePatient)
}
