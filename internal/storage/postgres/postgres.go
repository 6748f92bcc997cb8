// Package postgres реализует хранилище документов на основе PostgreSQL.
//
// Документы лежат в таблице documents (key TEXT PRIMARY KEY, doc JSONB);
// запись выполняется upsert-ом и заменяет документ целиком.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/car-rental/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует контракт storage.Store.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его ping-ом.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Load возвращает документ по ключу.
func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.postgres.Load"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT doc FROM documents WHERE key = $1`
	var doc []byte
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// Save заменяет документ по ключу целиком.
func (s *Storage) Save(ctx context.Context, key string, doc []byte) error {
	const op = "storage.postgres.Save"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO documents (key, doc, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, key, doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'documents'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table documents missing or query error: %w", err)
	}
	return nil
}
