// Package ledger — типизированная граница сериализации над хранилищем
// документов. Все операции бизнес-логики читают и пишут состояние только
// через него: JSON кодируется и декодируется здесь, выше ходят только
// доменные структуры.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/car-rental/internal/models"
	"github.com/magabrotheeeer/car-rental/internal/storage"
)

// Ledger инкапсулирует хранилище документов и типизированный доступ
// к четырём документам состояния: users, session, cars, bookings.
type Ledger struct {
	store storage.Store
}

// New создает Ledger поверх произвольной реализации storage.Store.
func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) load(ctx context.Context, key string, target any) (bool, error) {
	doc, err := l.store.Load(ctx, key)
	if errors.Is(err, models.ErrDocumentNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(doc, target); err != nil {
		return false, fmt.Errorf("decode document %s: %w", key, err)
	}
	return true, nil
}

func (l *Ledger) save(ctx context.Context, key string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", key, err)
	}
	return l.store.Save(ctx, key, doc)
}

// Users возвращает всех пользователей, ключ — email в нижнем регистре.
// Отсутствующий документ означает пустую карту.
func (l *Ledger) Users(ctx context.Context) (map[string]models.User, error) {
	users := make(map[string]models.User)
	if _, err := l.load(ctx, storage.KeyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = make(map[string]models.User)
	}
	return users, nil
}

// SaveUsers заменяет документ users целиком.
func (l *Ledger) SaveUsers(ctx context.Context, users map[string]models.User) error {
	return l.save(ctx, storage.KeyUsers, users)
}

// Session возвращает активную сессию либо nil, если её нет.
func (l *Ledger) Session(ctx context.Context) (*models.Session, error) {
	var session *models.Session
	if _, err := l.load(ctx, storage.KeySession, &session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveSession записывает указатель сессии; nil записывает null.
func (l *Ledger) SaveSession(ctx context.Context, session *models.Session) error {
	return l.save(ctx, storage.KeySession, session)
}

// ClearSession сбрасывает сессию безусловно.
func (l *Ledger) ClearSession(ctx context.Context) error {
	return l.SaveSession(ctx, nil)
}

// Cars возвращает каталог автомобилей. Отсутствующий документ
// возвращается как nil — признак того, что каталог ещё не заполнен.
func (l *Ledger) Cars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	found, err := l.load(ctx, storage.KeyCars, &cars)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return cars, nil
}

// SaveCars заменяет документ cars целиком.
func (l *Ledger) SaveCars(ctx context.Context, cars []models.Car) error {
	return l.save(ctx, storage.KeyCars, cars)
}

// Bookings возвращает все бронирования в порядке создания.
func (l *Ledger) Bookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if _, err := l.load(ctx, storage.KeyBookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SaveBookings заменяет документ bookings целиком.
func (l *Ledger) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	return l.save(ctx, storage.KeyBookings, bookings)
}
