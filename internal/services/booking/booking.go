// Package services содержит бизнес-логику жизненного цикла бронирования:
// создание с уменьшением остатка, расчёт счёта и закрытие с возвратом
// машины в каталог. Переход статуса единственный: active -> closed.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/car-rental/internal/cache"
	"github.com/magabrotheeeer/car-rental/internal/models"
	fleetservice "github.com/magabrotheeeer/car-rental/internal/services/fleet"
	identityservice "github.com/magabrotheeeer/car-rental/internal/services/identity"
)

// Штрафы при возврате.
const (
	PenaltyLatePerHour = 50
	PenaltyDamage      = 1500
)

var (
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings created.",
	})
	bookingsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_closed_total",
		Help: "Total number of bookings closed.",
	})
	rentalRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_revenue_total",
		Help: "Total charged amount across closed bookings.",
	})
)

// Ledger описывает контракт хранилища для операций бронирования.
type Ledger interface {
	Cars(ctx context.Context) ([]models.Car, error)
	SaveCars(ctx context.Context, cars []models.Car) error
	Bookings(ctx context.Context) ([]models.Booking, error)
	SaveBookings(ctx context.Context, bookings []models.Booking) error
}

// Cache описывает инвалидацию кеша каталога.
type Cache interface {
	Invalidate(key string) error
}

// ReceiptPublisher публикует событие о закрытом бронировании.
type ReceiptPublisher interface {
	Publish(routingKey string, message any) error
}

// ReceiptEvent — сообщение о возврате машины для очереди квитанций.
type ReceiptEvent struct {
	BookingID   string `json:"booking_id"`
	UserEmail   string `json:"user_email"`
	CarID       string `json:"car_id"`
	Days        int    `json:"days"`
	LateHours   int    `json:"late_hours"`
	Damaged     bool   `json:"damaged"`
	TotalCharge int    `json:"total_charge"`
}

// BookingService реализует жизненный цикл бронирования.
type BookingService struct {
	ledger    Ledger
	cache     Cache
	publisher ReceiptPublisher // может быть nil, тогда события не публикуются
	log       *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewBookingService создает новый экземпляр BookingService.
// publisher может быть nil — тогда квитанции не публикуются.
func NewBookingService(ledger Ledger, cache Cache, publisher ReceiptPublisher, log *slog.Logger) *BookingService {
	return &BookingService{
		ledger:    ledger,
		cache:     cache,
		publisher: publisher,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// ClampDays приводит срок аренды к минимуму в один день.
// Значения меньше единицы не отклоняются, а поднимаются до 1.
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	return days
}

// ClampLateHours отбрасывает отрицательную просрочку: штрафа нет, ошибки нет.
func ClampLateHours(lateHours int) int {
	if lateHours < 0 {
		return 0
	}
	return lateHours
}

// PreviewBill — чистый расчёт счёта возврата без побочных эффектов:
// тариф за тип машины умножается на дни, сверху штрафы за просрочку
// и повреждение.
func PreviewBill(car models.Car, days, lateHours int, damaged bool) (models.Bill, error) {
	perDay, err := fleetservice.PriceFor(car.Type)
	if err != nil {
		return models.Bill{}, err
	}

	bill := models.Bill{
		Base:        perDay * ClampDays(days),
		LatePenalty: ClampLateHours(lateHours) * PenaltyLatePerHour,
	}
	if damaged {
		bill.DamageCharge = PenaltyDamage
	}
	bill.Total = bill.Base + bill.LatePenalty + bill.DamageCharge
	return bill, nil
}

// EstimateTrip — предварительная оценка поездки: по числу пассажиров
// рекомендуется тип машины (до четырёх — седан, больше — SUV),
// стоимость считается по тарифу за день.
func EstimateTrip(days, people int) (models.Estimate, error) {
	days = ClampDays(days)

	carType := models.CarTypeSedan
	if people > 4 {
		carType = models.CarTypeSUV
	}
	perDay, err := fleetservice.PriceFor(carType)
	if err != nil {
		return models.Estimate{}, err
	}

	return models.Estimate{
		CarType:   carType,
		Days:      days,
		PerDay:    perDay,
		TotalCost: perDay * days,
	}, nil
}

func (s *BookingService) invalidateCatalog() {
	if err := s.cache.Invalidate(cache.CatalogKey); err != nil {
		s.log.Warn("failed to invalidate catalog cache", slog.Any("err", err))
	}
}

// Create оформляет бронирование: проверяет остаток, уменьшает количество
// свободных машин и добавляет запись со статусом active. Все проверки
// выполняются до первой записи, поэтому отказ не оставляет частичных
// изменений.
func (s *BookingService) Create(ctx context.Context, email, carID string, days int) (*models.Booking, error) {
	const op = "booking.Create"

	days = ClampDays(days)
	email = identityservice.NormalizeEmail(email)

	cars, err := s.ledger.Cars(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	carIdx := -1
	for i, car := range cars {
		if car.ID == carID {
			carIdx = i
			break
		}
	}
	if carIdx == -1 {
		return nil, models.ErrNotFound
	}
	if cars[carIdx].AvailableQty == 0 {
		return nil, models.ErrOutOfStock
	}

	bookings, err := s.ledger.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking := models.Booking{
		ID:        s.newID(),
		UserEmail: email,
		CarID:     carID,
		Days:      days,
		StartedAt: s.now(),
		Status:    models.BookingStatusActive,
	}

	cars[carIdx].AvailableQty--
	if err := s.ledger.SaveCars(ctx, cars); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.ledger.SaveBookings(ctx, append(bookings, booking)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateCatalog()

	bookingsCreated.Inc()
	s.log.Info("created booking",
		slog.String("booking_id", booking.ID),
		slog.String("car_id", carID),
		slog.Int("days", days))
	return &booking, nil
}

// ListActive возвращает активные бронирования пользователя
// в порядке создания.
func (s *BookingService) ListActive(ctx context.Context, email string) ([]models.Booking, error) {
	const op = "booking.ListActive"

	email = identityservice.NormalizeEmail(email)

	bookings, err := s.ledger.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var active []models.Booking
	for _, b := range bookings {
		if b.Status == models.BookingStatusActive && b.UserEmail == email {
			active = append(active, b)
		}
	}
	return active, nil
}

// Preview считает счёт возврата для активного бронирования вызывающего
// пользователя, ничего не изменяя.
func (s *BookingService) Preview(ctx context.Context, email, bookingID string, lateHours int, damaged bool) (*models.Bill, error) {
	const op = "booking.Preview"

	booking, car, err := s.findActive(ctx, email, bookingID)
	if err != nil {
		return nil, err
	}

	bill, err := PreviewBill(*car, booking.Days, lateHours, damaged)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &bill, nil
}

// Close закрывает бронирование: рассчитывает итоговую сумму, помечает
// запись закрытой и возвращает машину в каталог. Это единственная
// операция, увеличивающая остаток. Закрытое бронирование закрыто навсегда.
func (s *BookingService) Close(ctx context.Context, email, bookingID string, lateHours int, damaged bool) (*models.Booking, error) {
	const op = "booking.Close"

	email = identityservice.NormalizeEmail(email)

	bookings, err := s.ledger.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx := -1
	for i, b := range bookings {
		if b.ID == bookingID {
			idx = i
			break
		}
	}
	if idx == -1 || bookings[idx].Status != models.BookingStatusActive {
		return nil, models.ErrNotFound
	}
	if bookings[idx].UserEmail != email {
		return nil, models.ErrForbidden
	}

	cars, err := s.ledger.Cars(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	carIdx := -1
	for i, car := range cars {
		if car.ID == bookings[idx].CarID {
			carIdx = i
			break
		}
	}
	if carIdx == -1 {
		return nil, models.ErrNotFound
	}

	lateHours = ClampLateHours(lateHours)
	bill, err := PreviewBill(cars[carIdx], bookings[idx].Days, lateHours, damaged)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings[idx].Status = models.BookingStatusClosed
	bookings[idx].LateHours = lateHours
	bookings[idx].Damaged = damaged
	bookings[idx].TotalCharge = bill.Total
	cars[carIdx].AvailableQty++

	if err := s.ledger.SaveBookings(ctx, bookings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.ledger.SaveCars(ctx, cars); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateCatalog()

	bookingsClosed.Inc()
	rentalRevenue.Add(float64(bill.Total))

	closed := bookings[idx]
	s.log.Info("closed booking",
		slog.String("booking_id", closed.ID),
		slog.Int("total_charge", closed.TotalCharge))

	if s.publisher != nil {
		event := ReceiptEvent{
			BookingID:   closed.ID,
			UserEmail:   closed.UserEmail,
			CarID:       closed.CarID,
			Days:        closed.Days,
			LateHours:   closed.LateHours,
			Damaged:     closed.Damaged,
			TotalCharge: closed.TotalCharge,
		}
		if err := s.publisher.Publish("booking.closed", event); err != nil {
			s.log.Warn("failed to publish receipt event", slog.Any("err", err))
		}
	}

	return &closed, nil
}

func (s *BookingService) findActive(ctx context.Context, email, bookingID string) (*models.Booking, *models.Car, error) {
	const op = "booking.findActive"

	email = identityservice.NormalizeEmail(email)

	bookings, err := s.ledger.Bookings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var booking *models.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			booking = &bookings[i]
			break
		}
	}
	if booking == nil || booking.Status != models.BookingStatusActive {
		return nil, nil, models.ErrNotFound
	}
	if booking.UserEmail != email {
		return nil, nil, models.ErrForbidden
	}

	cars, err := s.ledger.Cars(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range cars {
		if cars[i].ID == booking.CarID {
			return booking, &cars[i], nil
		}
	}
	return nil, nil, models.ErrNotFound
}
