package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openarrive/traveller-backend/internal/db"
	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/services"
	"github.com/openarrive/traveller-backend/internal/types"
)

// Offline demo-data tool. Loads the reference fixture (countries, vaccines)
// and generates a random population of travel groups with trips and health
// records through the same ingestion pipeline the server uses. Never part of
// the serving path.

type fixture struct {
	Countries []struct {
		Name     string  `yaml:"name"`
		RiskRate float64 `yaml:"riskRate"`
	} `yaml:"countries"`
	Vaccines []struct {
		VaccineName   string `yaml:"vaccineName"`
		Manufacturer  string `yaml:"manufacturer"`
		VaccineType   string `yaml:"vaccineType"`
		RequiredDoses int    `yaml:"requiredDoses"`
		Approved      bool   `yaml:"approved"`
	} `yaml:"vaccines"`
	Places []struct {
		Name    string `yaml:"name"`
		Country string `yaml:"country"`
	} `yaml:"places"`
}

var familyNames = []string{"Tremblay", "Singh", "Chen", "Okafor", "Muller", "Rossi", "Tanaka", "Garcia", "Oliveira", "Kowalski"}
var givenNames = []string{"Ada", "Bruno", "Chiara", "Dmitri", "Elena", "Farid", "Grace", "Hiro", "Ines", "Jonas"}

func main() {
	fixturePath := flag.String("fixture", "seed.yaml", "path to the reference fixture")
	groups := flag.Int("groups", 10, "number of travel groups to generate")
	groupSize := flag.Int("group-size", 3, "max travellers per group")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Error("Fixture read failed", "path", *fixturePath, "error", err)
		os.Exit(1)
	}
	var fix fixture
	if err := yaml.Unmarshal(raw, &fix); err != nil {
		log.Error("Fixture parse failed", "error", err)
		os.Exit(1)
	}
	if len(fix.Countries) == 0 || len(fix.Vaccines) == 0 {
		log.Error("Fixture must list at least one country and one vaccine")
		os.Exit(1)
	}

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	countryRepo := repos.NewCountryRepo(thePG, log)
	placeRepo := repos.NewPlaceRepo(thePG, log)
	vaccineRepo := repos.NewVaccineRepo(thePG, log)
	personRepo := repos.NewPersonRepo(thePG, log)
	travelGroupRepo := repos.NewTravelGroupRepo(thePG, log)
	tripRepo := repos.NewTripRepo(thePG, log)
	healthProfileRepo := repos.NewHealthProfileRepo(thePG, log)
	vaccinationRepo := repos.NewVaccinationRepo(thePG, log)
	covidTestRepo := repos.NewCovidTestRepo(thePG, log)
	quarantinePlanRepo := repos.NewQuarantinePlanRepo(thePG, log)
	postalAddressRepo := repos.NewPostalAddressRepo(thePG, log)
	travelResponseRepo := repos.NewTravelResponseRepo(thePG, log)

	reference := services.NewReferenceService(log, countryRepo, placeRepo, vaccineRepo)

	ctx := context.Background()

	// Reference fixture
	for _, c := range fix.Countries {
		country, err := reference.GetOrCreateCountryByName(ctx, c.Name)
		if err != nil {
			log.Error("Country seed failed", "name", c.Name, "error", err)
			os.Exit(1)
		}
		if c.RiskRate > 0 && country.RiskRate != c.RiskRate {
			country.RiskRate = c.RiskRate
			if err := thePG.Save(country).Error; err != nil {
				log.Error("Country risk rate update failed", "name", c.Name, "error", err)
				os.Exit(1)
			}
		}
	}
	for _, v := range fix.Vaccines {
		if _, err := reference.GetVaccineByName(ctx, v.VaccineName); err == nil {
			continue
		}
		if _, err := vaccineRepo.Create(ctx, nil, &types.Vaccine{
			VaccineName:   v.VaccineName,
			Manufacturer:  v.Manufacturer,
			VaccineType:   v.VaccineType,
			RequiredDoses: v.RequiredDoses,
			Approved:      v.Approved,
			ApprovedOn:    time.Now().UTC(),
		}); err != nil {
			log.Error("Vaccine seed failed", "name", v.VaccineName, "error", err)
			os.Exit(1)
		}
	}
	for _, p := range fix.Places {
		country, err := reference.GetOrCreateCountryByName(ctx, p.Country)
		if err != nil {
			log.Error("Place country seed failed", "name", p.Country, "error", err)
			os.Exit(1)
		}
		if _, err := reference.GetOrCreatePlace(ctx, p.Name, country.ID); err != nil {
			log.Error("Place seed failed", "name", p.Name, "error", err)
			os.Exit(1)
		}
	}
	log.Info("Reference fixture loaded", "countries", len(fix.Countries), "vaccines", len(fix.Vaccines), "places", len(fix.Places))

	// Demo population through the real pipeline.
	ingest := services.NewIngestService(
		thePG,
		log,
		services.IngestConfig{MandatoryTestingRate: 0.01},
		reference,
		personRepo,
		travelGroupRepo,
		tripRepo,
		healthProfileRepo,
		vaccinationRepo,
		covidTestRepo,
		quarantinePlanRepo,
		postalAddressRepo,
		travelResponseRepo,
	)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := 0
	for g := 0; g < *groups; g++ {
		size := 1 + rng.Intn(*groupSize)
		batch := make([]*types.TravelerInput, 0, size)
		for t := 0; t < size; t++ {
			batch = append(batch, randomTraveler(rng, &fix))
		}
		if _, err := ingest.ProcessBatch(ctx, batch); err != nil {
			log.Error("Demo batch failed", "group", g, "error", err)
			os.Exit(1)
		}
		total += size
	}
	log.Info("Demo population generated", "groups", *groups, "travellers", total)
}

func randomTraveler(rng *rand.Rand, fix *fixture) *types.TravelerInput {
	pick := func(n int) int { return rng.Intn(n) }
	origin := fix.Countries[pick(len(fix.Countries))]
	destination := fix.Countries[pick(len(fix.Countries))]
	vaccine := fix.Vaccines[pick(len(fix.Vaccines))]

	birth := time.Date(1950+pick(55), time.Month(1+pick(12)), 1+pick(28), 0, 0, 0, 0, time.UTC)
	arrival := time.Now().UTC().Add(time.Duration(pick(72)) * time.Hour)
	departure := arrival.Add(-time.Duration(2+pick(12)) * time.Hour)
	providedOn := time.Now().UTC().AddDate(0, -pick(10), 0)
	tested := time.Now().UTC().AddDate(0, 0, -pick(3))

	input := &types.TravelerInput{
		FamilyName:                familyNames[pick(len(familyNames))],
		GivenName:                 givenNames[pick(len(givenNames))],
		BirthDate:                 birth,
		Gender:                    []string{"female", "male", "other"}[pick(3)],
		TravelDocumentID:          fmt.Sprintf("P%08d", rng.Intn(100000000)),
		TravelDocumentIssuer:      origin.Name,
		ApprovedAccessLevel:       "medical_records",
		ApprovedAccessGranularity: "aggregated",
		TripProvider:              "demo-airline",
		TravelMode:                "AIR",
		OriginName:                origin.Name + " International",
		OriginCountryName:         origin.Name,
		DestinationName:           destination.Name + " Central",
		DestinationCountryName:    destination.Name,
		TravelIntent:              "Entry",
		ScheduledDepartureTime:    &departure,
		ScheduledArrivalTime:      &arrival,
		TripState:                 "planned",
		Vaccinations: []*types.SlimVaccination{{
			VaccineName:      vaccine.VaccineName,
			DoseProvider:     "demo clinic",
			LocationProvided: origin.Name + " Clinic",
			CountryProvided:  origin.Name,
			ProvidedOn:       providedOn,
		}},
		CovidTest: &types.SlimCovidTest{
			TestName:   "demo PCR",
			TestType:   "PCR",
			DateTaken:  tested,
			TestResult: rng.Float64() < 0.02,
		},
		DateTime:      time.Now().UTC(),
		CbsaOfficerID: fmt.Sprintf("officer-%03d", pick(50)),
		CbsaID:        fmt.Sprintf("port-%02d", pick(12)),
	}
	if rng.Float64() < 0.5 {
		input.QuarantinePlan = &types.SlimQuarantinePlan{
			QuarantineRequired:       true,
			ConfirmationNoVulnerable: rng.Float64() < 0.8,
			Active:                   true,
		}
	}
	return input
}
