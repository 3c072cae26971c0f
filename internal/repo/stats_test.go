package repo

import (
	"context"
	"testing"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

func TestPetsStats_EmptyThenPopulated(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Pet{})
	ctx := context.Background()

	count, maxUpd, err := PetsStats(ctx, db, "u1")
	if err != nil {
		t.Fatalf("PetsStats: %v", err)
	}
	if count != 0 || maxUpd != nil {
		t.Fatalf("empty stats = (%d, %v)", count, maxUpd)
	}

	_, _ = CreatePet(ctx, db, "u1", &domain.Pet{Name: "A"})
	_, _ = CreatePet(ctx, db, "u1", &domain.Pet{Name: "B"})
	_, _ = CreatePet(ctx, db, "u2", &domain.Pet{Name: "other"})

	count, maxUpd, err = PetsStats(ctx, db, "u1")
	if err != nil {
		t.Fatalf("PetsStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if maxUpd == nil || maxUpd.IsZero() {
		t.Fatalf("maxUpdatedAt = %v, want non-zero", maxUpd)
	}
}

func TestCareLogsStats(t *testing.T) {
	db := newRepoDB(t, &domain.User{}, &domain.Pet{}, &domain.CareLog{})
	ctx := context.Background()

	count, maxUpd, err := CareLogsStats(ctx, db, "p1")
	if err != nil || count != 0 || maxUpd != nil {
		t.Fatalf("empty stats = (%d, %v, %v)", count, maxUpd, err)
	}

	_, _ = UpsertCareLog(ctx, db, "p1", "2025-06-01", `{}`)
	_, _ = UpsertCareLog(ctx, db, "p1", "2025-06-02", `{}`)

	count, maxUpd, err = CareLogsStats(ctx, db, "p1")
	if err != nil {
		t.Fatalf("CareLogsStats: %v", err)
	}
	if count != 2 || maxUpd == nil {
		t.Fatalf("stats = (%d, %v)", count, maxUpd)
	}
}
