// Package licence проверяет формат номера водительского удостоверения.
//
// Номер считается корректным, если после удаления всех пробельных символов
// остаётся от 8 до 16 латинских букв и цифр.
package licence

import "regexp"

var (
	spaceRe = regexp.MustCompile(`\s+`)
	numRe   = regexp.MustCompile(`^[A-Za-z0-9]{8,16}$`)
)

// IsValid возвращает true, если номер ВУ соответствует формату.
func IsValid(number string) bool {
	cleaned := spaceRe.ReplaceAllString(number, "")
	return numRe.MatchString(cleaned)
}
