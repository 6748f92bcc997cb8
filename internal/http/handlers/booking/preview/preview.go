// Package preview реализует HTTP-обработчик предварительного расчёта
// счёта возврата. Расчёт ничего не изменяет: бронирование остаётся
// активным, остатки каталога не трогаются.
package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Request — параметры возврата для оценки. Отрицательная просрочка
// трактуется как ноль.
type Request struct {
	LateHours int  `json:"late_hours"`
	Damaged   bool `json:"damaged"`
}

// Service описывает интерфейс расчёта счёта.
type Service interface {
	Preview(ctx context.Context, email, bookingID string, lateHours int, damaged bool) (*models.Bill, error)
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
	const op = "handlers.booking.preview"

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

	bookingID := chi.URLParam(r, "id")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	bill, err := h.bookings.Preview(r.Context(), email, bookingID, req.LateHours, req.Damaged)
	if err != nil {
		log.Error("failed to preview bill", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.OKWithData(bill))
}
