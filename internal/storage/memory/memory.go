// Package memory реализует хранилище документов в памяти процесса.
// Используется в модульных тестах вместо PostgreSQL.
package memory

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Storage хранит документы в map и реализует контракт storage.Store.
type Storage struct {
	docs map[string][]byte
}

// New создает пустое хранилище в памяти.
func New() *Storage {
	return &Storage{docs: make(map[string][]byte)}
}

// Load возвращает документ по ключу.
func (s *Storage) Load(_ context.Context, key string) ([]byte, error) {
	const op = "storage.memory.Load"
	doc, ok := s.docs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}
	return doc, nil
}

// Save заменяет документ по ключу целиком.
func (s *Storage) Save(_ context.Context, key string, doc []byte) error {
	s.docs[key] = append([]byte(nil), doc...)
	return nil
}
