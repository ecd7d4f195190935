package memory

import (
	"context"
	"testing"

	"github.com/larriantoniy/tg_intake_bot/internal/domain"
)

func TestRecordRepoInsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepo()

	if err := repo.Insert(ctx, domain.Record{FullName: "Ivan Petrov", PhoneNumber: "+10000000000"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := repo.Insert(ctx, domain.Record{FullName: "Anna Karenina", PhoneNumber: "+20000000000"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	records, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].FullName != "Ivan Petrov" || records[1].FullName != "Anna Karenina" {
		t.Fatalf("insertion order not preserved: %+v", records)
	}
	for _, rec := range records {
		if rec.ID != "" || !rec.CreatedAt.IsZero() {
			t.Fatalf("listing must project internal fields away: %+v", rec)
		}
	}
}

func TestRecordRepoListCopiesState(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepo()
	if err := repo.Insert(ctx, domain.Record{FullName: "A", PhoneNumber: "+1"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	first, _ := repo.ListAll(ctx)
	first[0].FullName = "mutated"

	second, _ := repo.ListAll(ctx)
	if second[0].FullName != "A" {
		t.Fatalf("stored record was mutated through listing result")
	}
}
