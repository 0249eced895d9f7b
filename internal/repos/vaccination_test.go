package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/types"
)

func TestVaccinationGetOrCreateDedup(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewVaccinationRepo(gdb, log)

	vaccineID := uuid.New()
	placeID := uuid.New()
	profileID := uuid.New()
	providedOn := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	record := func() *types.Vaccination {
		return &types.Vaccination{
			VaccineID:             vaccineID,
			DoseProvider:          "clinic A",
			LocationProvidedID:    placeID,
			ProvidedOn:            providedOn,
			PublicHealthProfileID: profileID,
		}
	}

	first, err := repo.GetOrCreate(ctx, tx, record())
	if err != nil {
		t.Fatalf("first get-or-create: %v", err)
	}
	second, err := repo.GetOrCreate(ctx, tx, record())
	if err != nil {
		t.Fatalf("second get-or-create: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same dose key produced two rows: %s vs %s", first.ID, second.ID)
	}

	// Dose provider comparison is exact; a case variant is a new record.
	variant := record()
	variant.DoseProvider = "Clinic A"
	third, err := repo.GetOrCreate(ctx, tx, variant)
	if err != nil {
		t.Fatalf("variant get-or-create: %v", err)
	}
	if third.ID == first.ID {
		t.Fatal("case variant of dose_provider should insert a new row")
	}

	got, err := repo.ListByProfile(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("list by profile: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 vaccination rows, have %d", len(got))
	}
}
