package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/types"
)

func newPerson(issuerID, groupID uuid.UUID) *types.Person {
	return &types.Person{
		FamilyName:                "Tremblay",
		GivenName:                 "Ada",
		BirthDate:                 time.Date(1987, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:                    "female",
		TravelDocumentID:          "P12345678",
		TravelDocumentIssuerID:    issuerID,
		ApprovedAccessLevel:       "medical_records",
		ApprovedAccessGranularity: "aggregated",
		TravelGroupID:             groupID,
	}
}

func TestPersonGetOrCreateDedup(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewPersonRepo(gdb, log)

	issuerID := uuid.New()
	groupID := uuid.New()

	first, err := repo.GetOrCreate(ctx, tx, newPerson(issuerID, groupID))
	if err != nil {
		t.Fatalf("first get-or-create: %v", err)
	}
	second, err := repo.GetOrCreate(ctx, tx, newPerson(issuerID, groupID))
	if err != nil {
		t.Fatalf("second get-or-create: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same natural key produced two rows: %s vs %s", first.ID, second.ID)
	}

	var count int64
	if err := tx.Model(&types.Person{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 person row, have %d", count)
	}
}

func TestPersonGetOrCreateNewKeyInserts(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewPersonRepo(gdb, log)

	issuerID := uuid.New()
	groupID := uuid.New()

	first, err := repo.GetOrCreate(ctx, tx, newPerson(issuerID, groupID))
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}

	// Same document id but a different birth date is a different key.
	other := newPerson(issuerID, groupID)
	other.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	second, err := repo.GetOrCreate(ctx, tx, other)
	if err != nil {
		t.Fatalf("get-or-create with new key: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("different natural keys must not share a row")
	}
}

func TestPersonListByTravelGroup(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewPersonRepo(gdb, log)

	issuerID := uuid.New()
	groupA := uuid.New()
	groupB := uuid.New()

	a := newPerson(issuerID, groupA)
	if _, err := repo.Create(ctx, tx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	b := newPerson(issuerID, groupB)
	b.TravelDocumentID = "P99999999"
	if _, err := repo.Create(ctx, tx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListByTravelGroup(ctx, tx, groupA)
	if err != nil {
		t.Fatalf("list by travel group: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected only group A's person, got %d rows", len(got))
	}
}
