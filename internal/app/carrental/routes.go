// Package carrental предоставляет маршруты для основного приложения.
package carrental

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/car-rental/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/car-rental/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/car-rental/internal/http/handlers/auth/register"
	bookingclose "github.com/magabrotheeeer/car-rental/internal/http/handlers/booking/close"
	bookingcreate "github.com/magabrotheeeer/car-rental/internal/http/handlers/booking/create"
	"github.com/magabrotheeeer/car-rental/internal/http/handlers/booking/estimate"
	bookinglist "github.com/magabrotheeeer/car-rental/internal/http/handlers/booking/list"
	bookingpreview "github.com/magabrotheeeer/car-rental/internal/http/handlers/booking/preview"
	carlist "github.com/magabrotheeeer/car-rental/internal/http/handlers/car/list"
	"github.com/magabrotheeeer/car-rental/internal/http/handlers/health"
	profileupdate "github.com/magabrotheeeer/car-rental/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/car-rental/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental/internal/lib/jwt"
	bookingservice "github.com/magabrotheeeer/car-rental/internal/services/booking"
	fleetservice "github.com/magabrotheeeer/car-rental/internal/services/fleet"
	identityservice "github.com/magabrotheeeer/car-rental/internal/services/identity"
	"github.com/magabrotheeeer/car-rental/internal/storage/postgres"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *postgres.Storage,
	identityService *identityservice.IdentityService,
	fleetService *fleetservice.FleetService,
	bookingService *bookingservice.BookingService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, identityService).ServeHTTP)
		r.Post("/login", login.New(logger, identityService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, identityService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, identityService).ServeHTTP)
			r.Get("/cars", carlist.New(logger, fleetService).ServeHTTP)
			r.Post("/bookings", bookingcreate.New(logger, bookingService).ServeHTTP)
			r.Get("/bookings/active", bookinglist.New(logger, bookingService).ServeHTTP)
			r.Post("/bookings/{id}/preview", bookingpreview.New(logger, bookingService).ServeHTTP)
			r.Post("/bookings/{id}/return", bookingclose.New(logger, bookingService).ServeHTTP)
			r.Post("/estimate", estimate.New(logger).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health.New(db).ServeHTTP)
}
