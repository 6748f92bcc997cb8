// Package jwt реализует генерацию и парсинг JWT токенов сессии.
//
// Токен несёт email пользователя и служит переносимым указателем сессии:
// обработчики извлекают email из claims и передают его явно в бизнес-логику.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает данные сессии, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"` // Email аутентифицированного пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken создаёт токен для указанного email
	GenerateToken(email string) (string, error)
	// ParseToken возвращает *CustomClaims с email, если токен корректен
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
