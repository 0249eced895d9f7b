package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/types"
)

type ingestFixture struct {
	db      *gorm.DB
	svc     *ingestService
	vaccine repos.VaccineRepo
}

func newIngestFixture(t *testing.T, rate float64) *ingestFixture {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	countryRepo := repos.NewCountryRepo(gdb, log)
	placeRepo := repos.NewPlaceRepo(gdb, log)
	vaccineRepo := repos.NewVaccineRepo(gdb, log)
	reference := NewReferenceService(log, countryRepo, placeRepo, vaccineRepo)

	svc := NewIngestService(
		gdb,
		log,
		IngestConfig{MandatoryTestingRate: rate},
		reference,
		repos.NewPersonRepo(gdb, log),
		repos.NewTravelGroupRepo(gdb, log),
		repos.NewTripRepo(gdb, log),
		repos.NewHealthProfileRepo(gdb, log),
		repos.NewVaccinationRepo(gdb, log),
		repos.NewCovidTestRepo(gdb, log),
		repos.NewQuarantinePlanRepo(gdb, log),
		repos.NewPostalAddressRepo(gdb, log),
		repos.NewTravelResponseRepo(gdb, log),
	).(*ingestService)

	return &ingestFixture{db: gdb, svc: svc, vaccine: vaccineRepo}
}

func (f *ingestFixture) seedVaccine(t *testing.T, name string) {
	t.Helper()
	_, err := f.vaccine.Create(context.Background(), nil, &types.Vaccine{
		VaccineName:   name,
		Manufacturer:  "test",
		VaccineType:   "mRNA",
		RequiredDoses: 2,
		Approved:      true,
	})
	require.NoError(t, err)
}

func (f *ingestFixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func fullInput() *types.TravelerInput {
	arrival := time.Date(2021, 9, 3, 14, 0, 0, 0, time.UTC)
	departure := arrival.Add(-8 * time.Hour)
	pk := "shc-pk-001"
	return &types.TravelerInput{
		FamilyName:                "Okafor",
		GivenName:                 "Grace",
		BirthDate:                 time.Date(1985, 2, 17, 0, 0, 0, 0, time.UTC),
		Gender:                    "female",
		TravelDocumentID:          "A00112233",
		TravelDocumentIssuer:      "Freedonia",
		ApprovedAccessLevel:       "medical_records",
		ApprovedAccessGranularity: "aggregated",
		TripProvider:              "test-airline",
		TravelMode:                "AIR",
		OriginName:                "Freedonia Intl",
		OriginCountryName:         "Freedonia",
		DestinationName:           "Port Central",
		DestinationCountryName:    "Freedonia",
		TravelIntent:              "Entry",
		ScheduledDepartureTime:    &departure,
		ScheduledArrivalTime:      &arrival,
		TripState:                 "planned",
		SmartHealthcardPk:         &pk,
		Vaccinations: []*types.SlimVaccination{{
			VaccineName:      "Comirnaty",
			DoseProvider:     "clinic A",
			LocationProvided: "Freedonia Intl",
			CountryProvided:  "Freedonia",
			ProvidedOn:       time.Date(2021, 5, 2, 0, 0, 0, 0, time.UTC),
		}},
		CovidTest: &types.SlimCovidTest{
			TestName:   "PCR-1",
			TestType:   "PCR",
			DateTaken:  time.Date(2021, 9, 1, 9, 0, 0, 0, time.UTC),
			TestResult: false,
		},
		QuarantinePlan: &types.SlimQuarantinePlan{
			QuarantineRequired:       true,
			ConfirmationNoVulnerable: true,
			Active:                   true,
		},
		DateTime:      time.Date(2021, 9, 3, 14, 5, 0, 0, time.UTC),
		CbsaOfficerID: "officer-001",
		CbsaID:        "port-01",
	}
}

func TestIngestEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t, 0)
	f.seedVaccine(t, "Comirnaty")

	responses, err := f.svc.ProcessBatch(ctx, []*types.TravelerInput{fullInput()})
	require.NoError(t, err)
	require.Len(t, responses, 1)

	resp := responses[0]
	require.Equal(t, "OK", resp.PostStatus)
	require.Equal(t, "I", resp.ResponseCode)
	require.Equal(t, "port-01", resp.CbsaID)
	require.Nil(t, resp.Details)

	require.EqualValues(t, 1, f.count(t, &types.Country{}))
	require.EqualValues(t, 2, f.count(t, &types.Place{}))
	require.EqualValues(t, 1, f.count(t, &types.Person{}))
	require.EqualValues(t, 1, f.count(t, &types.Trip{}))
	require.EqualValues(t, 1, f.count(t, &types.PublicHealthProfile{}))
	require.EqualValues(t, 1, f.count(t, &types.Vaccination{}))
	require.EqualValues(t, 1, f.count(t, &types.CovidTest{}))
	require.EqualValues(t, 1, f.count(t, &types.QuarantinePlan{}))
	require.EqualValues(t, 1, f.count(t, &types.TravelResponse{}))

	// Response ids point at the rows that were just written.
	var trip types.Trip
	require.NoError(t, f.db.First(&trip).Error)
	require.Equal(t, trip.ID, resp.TripID)
	require.Equal(t, trip.PersonID, resp.PersonID)
}

func TestIngestDuplicateAsymmetry(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t, 0)
	f.seedVaccine(t, "Comirnaty")

	_, err := f.svc.ProcessBatch(ctx, []*types.TravelerInput{fullInput()})
	require.NoError(t, err)
	_, err = f.svc.ProcessBatch(ctx, []*types.TravelerInput{fullInput()})
	require.NoError(t, err)

	// Person, profile, and vaccination dedup on their natural keys; trip,
	// test, and plan always insert.
	require.EqualValues(t, 1, f.count(t, &types.Person{}))
	require.EqualValues(t, 1, f.count(t, &types.PublicHealthProfile{}))
	require.EqualValues(t, 1, f.count(t, &types.Vaccination{}))
	require.EqualValues(t, 2, f.count(t, &types.Trip{}))
	require.EqualValues(t, 2, f.count(t, &types.CovidTest{}))
	require.EqualValues(t, 2, f.count(t, &types.QuarantinePlan{}))
	require.EqualValues(t, 2, f.count(t, &types.TravelResponse{}))
	require.EqualValues(t, 2, f.count(t, &types.TravelGroup{}))
}

func TestIngestQuarantineFlagsForcedFalse(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t, 0)
	f.seedVaccine(t, "Comirnaty")

	responses, err := f.svc.ProcessBatch(ctx, []*types.TravelerInput{fullInput()})
	require.NoError(t, err)
	require.False(t, responses[0].QuarantineRequired)

	var plan types.QuarantinePlan
	require.NoError(t, f.db.First(&plan).Error)
	require.False(t, plan.QuarantineRequired)
	require.False(t, plan.Active)
	require.True(t, plan.ConfirmationNoVulnerable)
}

func TestIngestUnknownVaccineWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t, 0)
	// no vaccine seeded

	_, err := f.svc.ProcessBatch(ctx, []*types.TravelerInput{fullInput()})
	require.Error(t, err)

	// Reference rows survive; the traveller's own rows do not.
	require.EqualValues(t, 0, f.count(t, &types.Person{}))
	require.EqualValues(t, 0, f.count(t, &types.Trip{}))
	require.EqualValues(t, 0, f.count(t, &types.TravelResponse{}))
}

func TestReferralFollowsConfiguredRate(t *testing.T) {
	ctx := context.Background()
	f := newIngestFixture(t, 0.01)
	f.seedVaccine(t, "Comirnaty")

	draws := []float64{0.005, 0.5}
	i := 0
	f.svc.randFn = func() float64 {
		v := draws[i%len(draws)]
		i++
		return v
	}

	responses, err := f.svc.ProcessBatch(ctx, []*types.TravelerInput{fullInput(), fullInput()})
	require.NoError(t, err)
	require.Len(t, responses, 2)
	require.True(t, responses[0].RandomTestingReferral)
	require.False(t, responses[1].RandomTestingReferral)
}

func TestReferralRateStatistical(t *testing.T) {
	f := newIngestFixture(t, 0.25)

	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if f.svc.drawReferral() {
			hits++
		}
	}
	rate := float64(hits) / n
	require.InDelta(t, 0.25, rate, 0.02)
}
