// Package models содержит доменные модели прокатного сервиса:
// пользователя, сессию, автомобиль и бронирование. Структуры используются
// в бизнес-логике и сериализуются в документы хранилища.
package models

import "time"

// User представляет зарегистрированного клиента проката.
// Ключом в документе users служит email в нижнем регистре.
type User struct {
	ID            string    `json:"id"`             // Уникальный идентификатор пользователя
	Name          string    `json:"name"`           // Имя
	Age           int       `json:"age"`            // Возраст, не младше 18
	Sex           string    `json:"sex"`            // Пол
	LicenceNumber string    `json:"licence_number"` // Номер водительского удостоверения
	Email         string    `json:"email"`          // Электронная почта (уникальная, нижний регистр)
	PasswordHash  string    `json:"password_hash"`  // Хэш пароля пользователя
	CreatedAt     time.Time `json:"created_at"`     // Дата регистрации
}

// Session — единственный указатель на текущего аутентифицированного
// пользователя. Хранится в документе session, либо отсутствует (nil).
type Session struct {
	Email string `json:"email"` // Email активного пользователя
}
