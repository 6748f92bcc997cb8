package models

import "errors"

// Доменные ошибки прокатного сервиса. Каждая ошибка отклоняет одно
// действие пользователя и оставляет хранилище без изменений; обработчики
// HTTP сопоставляют их со статусами через errors.Is.
var (
	// ErrValidation — возраст младше 18 или некорректный номер ВУ.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail — email уже зарегистрирован (без учёта регистра).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrOutOfStock — свободных машин выбранной модели не осталось.
	ErrOutOfStock = errors.New("car out of stock")
	// ErrNotFound — запись не найдена или бронирование уже закрыто.
	ErrNotFound = errors.New("not found")
	// ErrForbidden — бронирование принадлежит другому пользователю.
	ErrForbidden = errors.New("forbidden")
	// ErrUnknownCarType — неизвестный тип автомобиля.
	ErrUnknownCarType = errors.New("unknown car type")
	// ErrDocumentNotFound — документ отсутствует в хранилище.
	ErrDocumentNotFound = errors.New("document not found")
)
