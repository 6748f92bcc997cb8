package models

import "time"

// Статусы бронирования. Переход единственный: active -> closed,
// закрытое бронирование нельзя открыть заново или удалить.
const (
	BookingStatusActive = "active"
	BookingStatusClosed = "closed"
)

// Booking представляет договор аренды: пользователь, машина, срок
// и статус жизненного цикла. Поля LateHours, Damaged и TotalCharge
// заполняются только при закрытии.
type Booking struct {
	ID          string    `json:"id"`                     // Уникальный идентификатор бронирования
	UserEmail   string    `json:"user_email"`             // Email владельца бронирования
	CarID       string    `json:"car_id"`                 // Идентификатор модели автомобиля
	Days        int       `json:"days"`                   // Срок аренды в днях, не меньше 1
	StartedAt   time.Time `json:"started_at"`             // Момент создания бронирования
	Status      string    `json:"status"`                 // active или closed
	LateHours   int       `json:"late_hours,omitempty"`   // Часы просрочки при возврате
	Damaged     bool      `json:"damaged,omitempty"`      // Признак повреждения при возврате
	TotalCharge int       `json:"total_charge,omitempty"` // Итоговая сумма, рассчитанная при возврате
}

// Bill — расчёт стоимости возврата: база за дни аренды плюс штрафы.
type Bill struct {
	Base         int `json:"base"`          // Тариф за тип машины, умноженный на дни
	LatePenalty  int `json:"late_penalty"`  // Штраф за просрочку
	DamageCharge int `json:"damage_charge"` // Штраф за повреждение
	Total        int `json:"total"`         // Итог
}

// Estimate — предварительная оценка поездки: рекомендованный тип машины
// и ориентировочная стоимость до оформления бронирования.
type Estimate struct {
	CarType   string `json:"car_type"`    // Рекомендованный тип машины
	Days      int    `json:"days"`        // Срок поездки в днях
	PerDay    int    `json:"per_day"`     // Тариф в день
	TotalCost int    `json:"total_cost"`  // Итоговая оценка
}
