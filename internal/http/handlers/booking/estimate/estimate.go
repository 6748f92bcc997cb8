package estimate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	bookingservice "github.com/magabrotheeeer/car-rental/internal/services/booking"
)

// Request — параметры оценки поездки.
type Request struct {
	Days   int `json:"days"`
	People int `json:"people"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.estimate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	est, err := bookingservice.EstimateTrip(req.Days, req.People)
	if err != nil {
		log.Error("failed to estimate trip", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.OKWithData(est))
}
