// Package storage определяет абстракцию хранилища документов (Record Store).
//
// Состояние сервиса — четыре независимых JSON-документа, адресуемых строковым
// ключом. Каждая запись заменяет документ целиком: частичных обновлений нет,
// поэтому неудавшаяся валидация никогда не доходит до записи.
package storage

import "context"

// Ключи документов хранилища.
const (
	KeyUsers    = "users"    // map email -> User
	KeySession  = "session"  // Session или null
	KeyCars     = "cars"     // каталог автомобилей
	KeyBookings = "bookings" // бронирования в порядке создания
)

// Store описывает контракт хранилища документов.
type Store interface {
	// Load возвращает документ по ключу или models.ErrDocumentNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save заменяет документ по ключу целиком.
	Save(ctx context.Context, key string, doc []byte) error
}
