package routers

import (
	"fmt"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/delivery/http/controllers"
	"jazaidoc-service/internal/app/delivery/http/middlewares"
	"jazaidoc-service/internal/app/services/shared/metrics"
	"jazaidoc-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Credit       *controllers.CreditController
	Consultation *controllers.ConsultationController
	Analysis     *controllers.AnalysisController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	m *metrics.Metrics,
	controllers *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderContentType,
			constvars.HeaderSessionToken,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders: []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))
	if internalConfig.App.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.BodyLimit)

	router.With(middlewares.AuthenticateAdmin).Method("GET", "/metrics", m.Handler())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, controllers.Auth)
			})

			r.Route("/users", func(r chi.Router) {
				attachUserRoutes(r, middlewares, controllers.User)
			})

			r.Route("/credits", func(r chi.Router) {
				attachCreditRoutes(r, middlewares, controllers.Credit)
			})

			attachConsultationRoutes(r, middlewares, controllers.Consultation)

			r.Route("/analyze", func(r chi.Router) {
				attachAnalysisRoutes(r, middlewares, controllers.Analysis)
			})
		})
	})
}
