package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental/internal/models"
	fleetservice "github.com/magabrotheeeer/car-rental/internal/services/fleet"
	"github.com/magabrotheeeer/car-rental/internal/storage/ledger"
	"github.com/magabrotheeeer/car-rental/internal/storage/memory"
)

type noopCache struct{}

func (noopCache) Invalidate(string) error { return nil }

type capturingPublisher struct {
	routingKey string
	messages   []any
}

func (p *capturingPublisher) Publish(routingKey string, message any) error {
	p.routingKey = routingKey
	p.messages = append(p.messages, message)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newBookingService(t *testing.T) (*BookingService, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(memory.New())
	require.NoError(t, l.SaveCars(context.Background(), fleetservice.SeedCatalog()))

	svc := NewBookingService(l, noopCache{}, nil, discardLogger())
	counter := 0
	svc.newID = func() string {
		counter++
		return map[int]string{1: "b1", 2: "b2", 3: "b3", 4: "b4"}[counter]
	}
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, l
}

func carQty(t *testing.T, l *ledger.Ledger, carID string) int {
	t.Helper()
	cars, err := l.Cars(context.Background())
	require.NoError(t, err)
	for _, car := range cars {
		if car.ID == carID {
			return car.AvailableQty
		}
	}
	t.Fatalf("car %s not found", carID)
	return 0
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success decrements quantity", func(t *testing.T) {
		svc, l := newBookingService(t)

		booking, err := svc.Create(ctx, "Ivan@Example.com", "s1", 3)
		require.NoError(t, err)

		assert.Equal(t, "b1", booking.ID)
		assert.Equal(t, "ivan@example.com", booking.UserEmail)
		assert.Equal(t, models.BookingStatusActive, booking.Status)
		assert.Equal(t, 3, booking.Days)
		assert.Equal(t, 2, carQty(t, l, "s1"))
	})

	t.Run("days below one clamp to one", func(t *testing.T) {
		svc, _ := newBookingService(t)

		booking, err := svc.Create(ctx, "ivan@example.com", "s1", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, booking.Days)

		booking, err = svc.Create(ctx, "ivan@example.com", "s1", -5)
		require.NoError(t, err)
		assert.Equal(t, 1, booking.Days)
	})

	t.Run("unknown car", func(t *testing.T) {
		svc, _ := newBookingService(t)

		_, err := svc.Create(ctx, "ivan@example.com", "zz", 1)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("out of stock leaves state untouched", func(t *testing.T) {
		svc, l := newBookingService(t)

		// u2 засеян с единственной машиной.
		_, err := svc.Create(ctx, "ivan@example.com", "u2", 1)
		require.NoError(t, err)
		require.Equal(t, 0, carQty(t, l, "u2"))

		_, err = svc.Create(ctx, "petr@example.com", "u2", 1)
		require.ErrorIs(t, err, models.ErrOutOfStock)

		assert.Equal(t, 0, carQty(t, l, "u2"))
		bookings, err := l.Bookings(ctx)
		require.NoError(t, err)
		assert.Len(t, bookings, 1)
	})
}

func TestInventoryConservation(t *testing.T) {
	ctx := context.Background()
	svc, l := newBookingService(t)

	check := func() {
		cars, err := l.Cars(ctx)
		require.NoError(t, err)
		bookings, err := l.Bookings(ctx)
		require.NoError(t, err)

		seeded := map[string]int{}
		for _, car := range fleetservice.SeedCatalog() {
			seeded[car.ID] = car.AvailableQty
		}
		for _, car := range cars {
			active := 0
			for _, b := range bookings {
				if b.CarID == car.ID && b.Status == models.BookingStatusActive {
					active++
				}
			}
			assert.Equal(t, seeded[car.ID], car.AvailableQty+active,
				"conservation violated for car %s", car.ID)
		}
	}

	check()

	b1, err := svc.Create(ctx, "a@example.com", "s1", 2)
	require.NoError(t, err)
	check()

	b2, err := svc.Create(ctx, "a@example.com", "s1", 1)
	require.NoError(t, err)
	check()

	_, err = svc.Close(ctx, "a@example.com", b1.ID, 0, false)
	require.NoError(t, err)
	check()

	_, err = svc.Close(ctx, "a@example.com", b2.ID, 3, true)
	require.NoError(t, err)
	check()
}

func TestListActive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBookingService(t)

	b1, err := svc.Create(ctx, "a@example.com", "s1", 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b@example.com", "s2", 1)
	require.NoError(t, err)
	b3, err := svc.Create(ctx, "a@example.com", "u1", 2)
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, "A@example.com")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b1.ID, active[0].ID)
	assert.Equal(t, b3.ID, active[1].ID)

	_, err = svc.Close(ctx, "a@example.com", b1.ID, 0, false)
	require.NoError(t, err)

	active, err = svc.ListActive(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b3.ID, active[0].ID)
}

func TestPreviewBill(t *testing.T) {
	sedan := models.Car{ID: "s1", Type: models.CarTypeSedan}
	suv := models.Car{ID: "u1", Type: models.CarTypeSUV}

	t.Run("sedan with penalties", func(t *testing.T) {
		bill, err := PreviewBill(sedan, 3, 2, true)
		require.NoError(t, err)
		assert.Equal(t, 6000, bill.Base)
		assert.Equal(t, 100, bill.LatePenalty)
		assert.Equal(t, 1500, bill.DamageCharge)
		assert.Equal(t, 7600, bill.Total)
	})

	t.Run("suv without penalties", func(t *testing.T) {
		bill, err := PreviewBill(suv, 1, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 2500, bill.Total)
	})

	t.Run("negative late hours mean no penalty", func(t *testing.T) {
		bill, err := PreviewBill(sedan, 1, -7, false)
		require.NoError(t, err)
		assert.Equal(t, 2000, bill.Total)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := PreviewBill(models.Car{Type: "Truck"}, 1, 0, false)
		require.ErrorIs(t, err, models.ErrUnknownCarType)
	})
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	t.Run("computes total and returns car", func(t *testing.T) {
		svc, l := newBookingService(t)

		booking, err := svc.Create(ctx, "a@example.com", "s1", 3)
		require.NoError(t, err)
		require.Equal(t, 2, carQty(t, l, "s1"))

		closed, err := svc.Close(ctx, "a@example.com", booking.ID, 2, true)
		require.NoError(t, err)

		assert.Equal(t, models.BookingStatusClosed, closed.Status)
		assert.Equal(t, 7600, closed.TotalCharge)
		assert.Equal(t, 2, closed.LateHours)
		assert.True(t, closed.Damaged)
		assert.Equal(t, 3, carQty(t, l, "s1"))
	})

	t.Run("closing twice fails", func(t *testing.T) {
		svc, l := newBookingService(t)

		booking, err := svc.Create(ctx, "a@example.com", "s1", 1)
		require.NoError(t, err)

		_, err = svc.Close(ctx, "a@example.com", booking.ID, 0, false)
		require.NoError(t, err)

		_, err = svc.Close(ctx, "a@example.com", booking.ID, 0, false)
		require.ErrorIs(t, err, models.ErrNotFound)

		// Повторное закрытие не трогает остаток.
		assert.Equal(t, 3, carQty(t, l, "s1"))
	})

	t.Run("foreign booking forbidden", func(t *testing.T) {
		svc, _ := newBookingService(t)

		booking, err := svc.Create(ctx, "a@example.com", "s1", 1)
		require.NoError(t, err)

		_, err = svc.Close(ctx, "b@example.com", booking.ID, 0, false)
		require.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newBookingService(t)

		_, err := svc.Close(ctx, "a@example.com", "missing", 0, false)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("negative late hours coerced to zero", func(t *testing.T) {
		svc, _ := newBookingService(t)

		booking, err := svc.Create(ctx, "a@example.com", "u1", 1)
		require.NoError(t, err)

		closed, err := svc.Close(ctx, "a@example.com", booking.ID, -3, false)
		require.NoError(t, err)
		assert.Equal(t, 0, closed.LateHours)
		assert.Equal(t, 2500, closed.TotalCharge)
	})

	t.Run("publishes receipt event", func(t *testing.T) {
		l := ledger.New(memory.New())
		require.NoError(t, l.SaveCars(ctx, fleetservice.SeedCatalog()))
		pub := &capturingPublisher{}
		svc := NewBookingService(l, noopCache{}, pub, discardLogger())

		booking, err := svc.Create(ctx, "a@example.com", "s1", 3)
		require.NoError(t, err)

		_, err = svc.Close(ctx, "a@example.com", booking.ID, 2, true)
		require.NoError(t, err)

		require.Len(t, pub.messages, 1)
		assert.Equal(t, "booking.closed", pub.routingKey)
		event := pub.messages[0].(ReceiptEvent)
		assert.Equal(t, booking.ID, event.BookingID)
		assert.Equal(t, 7600, event.TotalCharge)
	})
}

func TestPreview(t *testing.T) {
	ctx := context.Background()
	svc, l := newBookingService(t)

	booking, err := svc.Create(ctx, "a@example.com", "s1", 3)
	require.NoError(t, err)

	bill, err := svc.Preview(ctx, "a@example.com", booking.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 7600, bill.Total)

	// Предпросмотр ничего не меняет.
	assert.Equal(t, 2, carQty(t, l, "s1"))
	active, err := svc.ListActive(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = svc.Preview(ctx, "b@example.com", booking.ID, 0, false)
	require.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Preview(ctx, "a@example.com", "missing", 0, false)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestEstimateTrip(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		people   int
		wantType string
		wantCost int
	}{
		{name: "small group gets sedan", days: 3, people: 4, wantType: models.CarTypeSedan, wantCost: 6000},
		{name: "large group gets suv", days: 2, people: 5, wantType: models.CarTypeSUV, wantCost: 5000},
		{name: "days clamp to one", days: 0, people: 2, wantType: models.CarTypeSedan, wantCost: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := EstimateTrip(tt.days, tt.people)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, est.CarType)
			assert.Equal(t, tt.wantCost, est.TotalCost)
		})
	}
}
