// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-rental/internal/lib/jwt"
	"github.com/magabrotheeeer/car-rental/internal/lib/licence"
	"github.com/magabrotheeeer/car-rental/internal/lib/password"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Ledger описывает контракт хранилища для операций с пользователями и сессией.
type Ledger interface {
	// Users возвращает всех пользователей, ключ — email в нижнем регистре.
	Users(ctx context.Context) (map[string]models.User, error)
	// SaveUsers заменяет документ users целиком.
	SaveUsers(ctx context.Context, users map[string]models.User) error
	// SaveSession записывает указатель сессии.
	SaveSession(ctx context.Context, session *models.Session) error
	// ClearSession сбрасывает сессию безусловно.
	ClearSession(ctx context.Context) error
}

// RegisterRequest — данные регистрации нового пользователя.
type RegisterRequest struct {
	Name          string
	Age           int
	Sex           string
	LicenceNumber string
	Email         string
	Password      string
}

// UpdateProfileRequest — данные анкеты профиля. Email и пароль
// этой операцией не меняются.
type UpdateProfileRequest struct {
	Name          string
	Age           int
	Sex           string
	LicenceNumber string
}

// IdentityService отвечает за регистрацию, авторизацию и анкету профиля.
type IdentityService struct {
	ledger   Ledger
	jwtMaker jwt.Maker

	newID func() string
	now   func() time.Time
}

// NewIdentityService создает новый экземпляр IdentityService.
func NewIdentityService(ledger Ledger, jwtMaker jwt.Maker) *IdentityService {
	return &IdentityService{
		ledger:   ledger,
		jwtMaker: jwtMaker,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// NormalizeEmail приводит email к каноничному виду ключа документа users.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateProfile(age int, licenceNumber string) error {
	if age < 18 {
		return fmt.Errorf("%w: age must be 18+", models.ErrValidation)
	}
	if !licence.IsValid(licenceNumber) {
		return fmt.Errorf("%w: licence must be 8-16 letters or digits", models.ErrValidation)
	}
	return nil
}

// Register создает нового пользователя и открывает для него сессию.
// Возвращает пользователя и подписанный токен сессии.
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	const op = "identity.Register"

	if err := validateProfile(req.Age, req.LicenceNumber); err != nil {
		return nil, "", err
	}

	email := NormalizeEmail(req.Email)

	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if _, exists := users[email]; exists {
		return nil, "", models.ErrDuplicateEmail
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:            s.newID(),
		Name:          strings.TrimSpace(req.Name),
		Age:           req.Age,
		Sex:           req.Sex,
		LicenceNumber: strings.TrimSpace(req.LicenceNumber),
		Email:         email,
		PasswordHash:  hash,
		CreatedAt:     s.now(),
	}
	users[email] = user

	if err := s.ledger.SaveUsers(ctx, users); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.ledger.SaveSession(ctx, &models.Session{Email: email}); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя, открывает сессию и возвращает токен.
func (s *IdentityService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "identity.Login"

	email = NormalizeEmail(email)

	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user, ok := users[email]
	if !ok {
		return nil, "", models.ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	if err := s.ledger.SaveSession(ctx, &models.Session{Email: email}); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Logout сбрасывает сессию безусловно.
func (s *IdentityService) Logout(ctx context.Context) error {
	const op = "identity.Logout"
	if err := s.ledger.ClearSession(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile обновляет анкету пользователя, на которого указывает
// email вызывающей сессии. Валидация та же, что при регистрации.
func (s *IdentityService) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (*models.User, error) {
	const op = "identity.UpdateProfile"

	if err := validateProfile(req.Age, req.LicenceNumber); err != nil {
		return nil, err
	}

	email = NormalizeEmail(email)

	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, ok := users[email]
	if !ok {
		return nil, models.ErrNotFound
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Age = req.Age
	user.Sex = req.Sex
	user.LicenceNumber = strings.TrimSpace(req.LicenceNumber)
	users[email] = user

	if err := s.ledger.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
