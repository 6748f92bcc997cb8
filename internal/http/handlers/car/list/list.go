// Package list реализует HTTP-обработчик каталога автомобилей
// с необязательным фильтром по типу.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Service описывает интерфейс каталога.
type Service interface {
	List(ctx context.Context, typeFilter string) ([]models.Car, error)
}

type Handler struct {
	log   *slog.Logger
	fleet Service
}

func New(log *slog.Logger, fleet Service) *Handler {
	return &Handler{
		log:   log,
		fleet: fleet,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	typeFilter := r.URL.Query().Get("type")

	cars, err := h.fleet.List(r.Context(), typeFilter)
	if err != nil {
		log.Error("failed to list cars", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"cars": cars,
	}))
}
