package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/larriantoniy/tg_intake_bot/internal/domain"
)

// RecordRepo — простое in-process хранилище для локальной разработки и тестов.
type RecordRepo struct {
	mu      sync.RWMutex
	records []domain.Record
}

func NewRecordRepo() *RecordRepo {
	return &RecordRepo{}
}

func (r *RecordRepo) Insert(_ context.Context, rec domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *RecordRepo) ListAll(_ context.Context) ([]domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, domain.Record{
			FullName:    rec.FullName,
			PhoneNumber: rec.PhoneNumber,
		})
	}
	return out, nil
}

func (r *RecordRepo) Close(_ context.Context) error { return nil }
