package models

// Типы автомобилей в каталоге.
const (
	CarTypeSedan = "Sedan"
	CarTypeSUV   = "SUV"
)

// Car представляет модель автомобиля в каталоге проката
// с остатком свободных машин.
type Car struct {
	ID           string `json:"id"`            // Идентификатор модели в каталоге
	Name         string `json:"name"`          // Название модели
	Type         string `json:"type"`          // Тип: Sedan или SUV
	AvailableQty int    `json:"available_qty"` // Количество свободных машин
}
