package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Service описывает интерфейс чтения активных бронирований.
type Service interface {
	ListActive(ctx context.Context, email string) ([]models.Booking, error)
}

type Handler struct {
	log      *slog.Logger
	bookings Service
}

func New(log *slog.Logger, bookings Service) *Handler {
	return &Handler{
		log:      log,
		bookings: bookings,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Error("no email in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	bookings, err := h.bookings.ListActive(r.Context(), email)
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"bookings": bookings,
	}))
}
