package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-rental/internal/http/response"
	"github.com/magabrotheeeer/car-rental/internal/lib/sl"
	"github.com/magabrotheeeer/car-rental/internal/models"
	identityservice "github.com/magabrotheeeer/car-rental/internal/services/identity"
)

// Request — входные данные для регистрации
type Request struct {
	Name          string `json:"name" validate:"required"`
	Age           int    `json:"age" validate:"required,gte=18"`
	Sex           string `json:"sex" validate:"required"`
	LicenceNumber string `json:"licence_number" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req identityservice.RegisterRequest) (*models.User, string, error)
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
	const op = "handlers.auth.register"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.identity.Register(r.Context(), identityservice.RegisterRequest{
		Name:          req.Name,
		Age:           req.Age,
		Sex:           req.Sex,
		LicenceNumber: req.LicenceNumber,
		Email:         req.Email,
		Password:      req.Password,
	})
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("user registered", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"email": user.Email,
		"name":  user.Name,
	}))
}
