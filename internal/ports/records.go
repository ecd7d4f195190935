package ports

import (
	"context"

	"github.com/larriantoniy/tg_intake_bot/internal/domain"
)

// RecordRepo хранит заполненные анкеты. Только append и чтение всего списка:
// записи неизменяемы, update/delete по модели данных не существуют.
type RecordRepo interface {
	Insert(ctx context.Context, rec domain.Record) error
	// ListAll возвращает все записи, спроецированные на публичные поля
	// (full_name, phone_number). Порядок определяется хранилищем.
	ListAll(ctx context.Context) ([]domain.Record, error)
	Close(ctx context.Context) error
}
