package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/types"
)

func newReferenceFixture(t *testing.T) (ReferenceService, repos.VaccineRepo) {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	countryRepo := repos.NewCountryRepo(gdb, log)
	placeRepo := repos.NewPlaceRepo(gdb, log)
	vaccineRepo := repos.NewVaccineRepo(gdb, log)
	return NewReferenceService(log, countryRepo, placeRepo, vaccineRepo), vaccineRepo
}

func TestCountryGetOrCreateIdempotent(t *testing.T) {
	ctx := context.Background()
	ref, _ := newReferenceFixture(t)

	first, err := ref.GetOrCreateCountryByName(ctx, "Freedonia")
	require.NoError(t, err)
	require.Equal(t, "Freedonia", first.CountryName)
	require.Equal(t, types.DefaultCountryRiskRate, first.RiskRate)

	second, err := ref.GetOrCreateCountryByName(ctx, "Freedonia")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	byID, err := ref.GetCountryByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.CountryName, byID.CountryName)
}

func TestPlaceGetOrCreateScopedToCountry(t *testing.T) {
	ctx := context.Background()
	ref, _ := newReferenceFixture(t)

	canada, err := ref.GetOrCreateCountryByName(ctx, "Canada")
	require.NoError(t, err)
	france, err := ref.GetOrCreateCountryByName(ctx, "France")
	require.NoError(t, err)

	first, err := ref.GetOrCreatePlace(ctx, "Springfield", canada.ID)
	require.NoError(t, err)
	again, err := ref.GetOrCreatePlace(ctx, "Springfield", canada.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	// Same name under a different country is a different place.
	other, err := ref.GetOrCreatePlace(ctx, "Springfield", france.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, other.ID)
}

func TestVaccineLookupOnly(t *testing.T) {
	ctx := context.Background()
	ref, vaccineRepo := newReferenceFixture(t)

	// Missing vaccine is an error; the resolver never creates one.
	_, err := ref.GetVaccineByName(ctx, "Comirnaty")
	require.Error(t, err)

	seeded, err := vaccineRepo.Create(ctx, nil, &types.Vaccine{
		VaccineName:   "Comirnaty",
		Manufacturer:  "Pfizer-BioNTech",
		VaccineType:   "mRNA",
		RequiredDoses: 2,
		Approved:      true,
	})
	require.NoError(t, err)

	found, err := ref.GetVaccineByName(ctx, "Comirnaty")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, found.ID)

	byID, err := ref.GetVaccineByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "Comirnaty", byID.VaccineName)
}

func TestReferenceReturnsClones(t *testing.T) {
	ctx := context.Background()
	ref, _ := newReferenceFixture(t)

	first, err := ref.GetOrCreateCountryByName(ctx, "Sylvania")
	require.NoError(t, err)
	first.CountryName = "mutated"

	second, err := ref.GetOrCreateCountryByName(ctx, "Sylvania")
	require.NoError(t, err)
	require.Equal(t, "Sylvania", second.CountryName)
}
