// Package create реализует HTTP-обработчик оформления бронирования.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-rental/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Request — входные данные бронирования. Days меньше единицы
// не отклоняется: сервис поднимает его до 1.
type Request struct {
	CarID string `json:"car_id" validate:"required"`
	Days  int    `json:"days"`
}

// Service описывает интерфейс оформления бронирования.
type Service interface {
	Create(ctx context.Context, email, carID string, days int) (*models.Booking, error)
}

type Handler struct {
	log      *slog.Logger
	bookings Service
	validate *validator.Validate
}

func New(log *slog.Logger, bookings Service) *Handler {
	return &Handler{
		log:      log,
		bookings: bookings,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	booking, err := h.bookings.Create(r.Context(), email, req.CarID, req.Days)
	if err != nil {
		log.Error("failed to create booking", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("booking created", slog.String("booking_id", booking.ID))
	render.JSON(w, r, response.OKWithData(booking))
}
