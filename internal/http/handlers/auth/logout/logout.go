package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
)

// Service описывает интерфейс выхода из сессии.
type Service interface {
	Logout(ctx context.Context) error
}

type Handler struct {
	log      *slog.Logger
	identity Service
}

func New(log *slog.Logger, identity Service) *Handler {
	return &Handler{
		log:      log,
		identity: identity,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.identity.Logout(r.Context()); err != nil {
		log.Error("logout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to logout"))
		return
	}

	log.Info("session cleared")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged out",
	}))
}
