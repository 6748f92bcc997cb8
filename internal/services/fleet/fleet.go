// Package services содержит бизнес-логику каталога автомобилей:
// идемпотентное заполнение, чтение с кешированием и тарифы.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/car-rental/internal/cache"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Тарифы аренды за день по типу автомобиля.
const (
	PricePerDaySedan = 2000
	PricePerDaySUV   = 2500
)

// Ledger описывает контракт хранилища для работы с каталогом.
type Ledger interface {
	// Cars возвращает каталог; nil означает, что каталог ещё не заполнен.
	Cars(ctx context.Context) ([]models.Car, error)
	// SaveCars заменяет документ cars целиком.
	SaveCars(ctx context.Context, cars []models.Car) error
}

// Cache описывает методы для кэширования каталога.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// FleetService реализует операции каталога автомобилей.
type FleetService struct {
	ledger Ledger
	cache  Cache
	log    *slog.Logger
}

// NewFleetService создает новый экземпляр FleetService.
func NewFleetService(ledger Ledger, cache Cache, log *slog.Logger) *FleetService {
	return &FleetService{
		ledger: ledger,
		cache:  cache,
		log:    log,
	}
}

// PriceFor возвращает тариф за день для типа автомобиля.
func PriceFor(carType string) (int, error) {
	switch carType {
	case models.CarTypeSedan:
		return PricePerDaySedan, nil
	case models.CarTypeSUV:
		return PricePerDaySUV, nil
	default:
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownCarType, carType)
	}
}

// SeedCatalog возвращает стартовый каталог из четырёх моделей.
func SeedCatalog() []models.Car {
	return []models.Car{
		{ID: "s1", Name: "Honda City", Type: models.CarTypeSedan, AvailableQty: 3},
		{ID: "s2", Name: "Hyundai Verna", Type: models.CarTypeSedan, AvailableQty: 2},
		{ID: "u1", Name: "Hyundai Creta", Type: models.CarTypeSUV, AvailableQty: 2},
		{ID: "u2", Name: "Mahindra XUV700", Type: models.CarTypeSUV, AvailableQty: 1},
	}
}

// Seed записывает стартовый каталог, только если документ cars ещё
// отсутствует. Повторные вызовы не трогают существующий каталог,
// чтобы не потерять изменения остатков между запусками.
func (s *FleetService) Seed(ctx context.Context) error {
	const op = "fleet.Seed"

	cars, err := s.ledger.Cars(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if cars != nil {
		return nil
	}

	if err := s.ledger.SaveCars(ctx, SeedCatalog()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("seeded car catalog", slog.Int("models", len(SeedCatalog())))
	return nil
}

// List возвращает каталог, при необходимости отфильтрованный по типу.
// Пустой фильтр или "all" означает весь каталог. Чтение без побочных эффектов.
func (s *FleetService) List(ctx context.Context, typeFilter string) ([]models.Car, error) {
	const op = "fleet.List"

	var cars []models.Car
	found, err := s.cache.Get(cache.CatalogKey, &cars)
	if err != nil {
		s.log.Warn("failed to read catalog cache", slog.Any("err", err))
	}
	if !found {
		cars, err = s.ledger.Cars(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.cache.Set(cache.CatalogKey, cars, time.Hour); err != nil {
			s.log.Warn("failed to cache catalog", slog.Any("err", err))
		}
	}

	if typeFilter == "" || typeFilter == "all" {
		return cars, nil
	}
	if _, err := PriceFor(typeFilter); err != nil {
		return nil, err
	}

	filtered := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		if car.Type == typeFilter {
			filtered = append(filtered, car)
		}
	}
	return filtered, nil
}
