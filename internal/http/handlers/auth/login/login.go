// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование операции входа сервису Identity.
// При успешной аутентификации возвращается JSON с токеном сессии;
// в случае ошибок формируются соответствующие HTTP-ответы.
package login

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
)

// Request — структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger
	identity Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом Identity.
func New(log *slog.Logger, identity Service) *Handler {
	return &Handler{
		log:      log,
		identity: identity,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, token, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}

	log.Info("login success", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"email": user.Email,
		"name":  user.Name,
	}))
}
