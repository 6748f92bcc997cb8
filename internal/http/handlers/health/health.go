// Package health содержит обработчик проверки доступности сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/storage/postgres"
)

type Handler struct {
	storage *postgres.Storage
}

func New(storage *postgres.Storage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.storage != nil {
		if err := postgres.CheckDatabaseReady(h.storage); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("database unavailable"))
			return
		}
	}
	render.JSON(w, r, response.OKWithData(map[string]string{"status": "ok"}))
}
