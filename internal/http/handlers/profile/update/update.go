// Package update реализует HTTP-обработчик сохранения анкеты профиля.
package update

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
	identityservice "github.com/magabrotheeeer/car-rental/internal/services/identity"
)

// Request — данные анкеты. Email и пароль этим запросом не меняются.
type Request struct {
	Name          string `json:"name" validate:"required"`
	Age           int    `json:"age" validate:"required,gte=18"`
	Sex           string `json:"sex" validate:"required"`
	LicenceNumber string `json:"licence_number" validate:"required"`
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	UpdateProfile(ctx context.Context, email string, req identityservice.UpdateProfileRequest) (*models.User, error)
}

type Handler struct {
	log      *slog.Logger
	identity Service
	validate *validator.Validate
}

func New(log *slog.Logger, identity Service) *Handler {
	return &Handler{
		log:      log,
		identity: identity,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"

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

	user, err := h.identity.UpdateProfile(r.Context(), email, identityservice.UpdateProfileRequest{
		Name:          req.Name,
		Age:           req.Age,
		Sex:           req.Sex,
		LicenceNumber: req.LicenceNumber,
	})
	if err != nil {
		log.Error("profile update failed", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("profile saved", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(user))
}
