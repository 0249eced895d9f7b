package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/types"
)

const (
	responseCodeIngested = "I"
	postStatusOK         = "OK"
)

// IngestService turns one posted traveller submission into the full set of
// persisted rows (Person, Trip, PublicHealthProfile, Vaccinations, CovidTest,
// QuarantinePlan) plus the audit TravelResponse returned to the caller.
//
// Each traveller's row writes run inside a single transaction: a failure at
// any step rolls back that traveller's earlier inserts. Reference entities
// (countries, places, vaccines) are resolved through the shared cache outside
// the transaction and survive a rollback. The service publishes no events;
// fan-out belongs to the resolver layer.
type IngestService interface {
	// ProcessBatch creates one TravelGroup and ingests every submission
	// into it, returning one TravelResponse per traveller in input order.
	// The first failing traveller aborts the batch.
	ProcessBatch(ctx context.Context, data []*types.TravelerInput) ([]*types.TravelResponse, error)
	// Process ingests a single traveller into an existing travel group.
	Process(ctx context.Context, input *types.TravelerInput, travelGroupID uuid.UUID) (*types.TravelResponse, error)
}

type IngestConfig struct {
	// MandatoryTestingRate is the Bernoulli rate for random testing
	// referrals, 0..1.
	MandatoryTestingRate float64
	// StepTimeout bounds the processing of one traveller; zero disables it.
	StepTimeout time.Duration
}

type ingestService struct {
	db                 *gorm.DB
	log                *logger.Logger
	cfg                IngestConfig
	reference          ReferenceService
	personRepo         repos.PersonRepo
	travelGroupRepo    repos.TravelGroupRepo
	tripRepo           repos.TripRepo
	healthProfileRepo  repos.HealthProfileRepo
	vaccinationRepo    repos.VaccinationRepo
	covidTestRepo      repos.CovidTestRepo
	quarantinePlanRepo repos.QuarantinePlanRepo
	postalAddressRepo  repos.PostalAddressRepo
	travelResponseRepo repos.TravelResponseRepo

	randMu sync.Mutex
	randFn func() float64
}

func NewIngestService(
	db *gorm.DB,
	log *logger.Logger,
	cfg IngestConfig,
	reference ReferenceService,
	personRepo repos.PersonRepo,
	travelGroupRepo repos.TravelGroupRepo,
	tripRepo repos.TripRepo,
	healthProfileRepo repos.HealthProfileRepo,
	vaccinationRepo repos.VaccinationRepo,
	covidTestRepo repos.CovidTestRepo,
	quarantinePlanRepo repos.QuarantinePlanRepo,
	postalAddressRepo repos.PostalAddressRepo,
	travelResponseRepo repos.TravelResponseRepo,
) IngestService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &ingestService{
		db:                 db,
		log:                log.With("service", "IngestService"),
		cfg:                cfg,
		reference:          reference,
		personRepo:         personRepo,
		travelGroupRepo:    travelGroupRepo,
		tripRepo:           tripRepo,
		healthProfileRepo:  healthProfileRepo,
		vaccinationRepo:    vaccinationRepo,
		covidTestRepo:      covidTestRepo,
		quarantinePlanRepo: quarantinePlanRepo,
		postalAddressRepo:  postalAddressRepo,
		travelResponseRepo: travelResponseRepo,
		randFn:             rng.Float64,
	}
}

func (is *ingestService) ProcessBatch(ctx context.Context, data []*types.TravelerInput) ([]*types.TravelResponse, error) {
	group, err := is.travelGroupRepo.Create(ctx, nil, &types.TravelGroup{})
	if err != nil {
		return nil, fmt.Errorf("create travel group: %w", err)
	}

	responses := make([]*types.TravelResponse, 0, len(data))
	for _, input := range data {
		resp, err := is.Process(ctx, input, group.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (is *ingestService) Process(ctx context.Context, input *types.TravelerInput, travelGroupID uuid.UUID) (*types.TravelResponse, error) {
	if is.cfg.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, is.cfg.StepTimeout)
		defer cancel()
	}

	// Reference rows first; they are shared lookup data and stay put even
	// if this traveller's transaction rolls back.
	issuer, err := is.reference.GetOrCreateCountryByName(ctx, input.TravelDocumentIssuer)
	if err != nil {
		return nil, fmt.Errorf("resolve travel document issuer: %w", err)
	}
	originCountry, err := is.reference.GetOrCreateCountryByName(ctx, input.OriginCountryName)
	if err != nil {
		return nil, fmt.Errorf("resolve origin country: %w", err)
	}
	origin, err := is.reference.GetOrCreatePlace(ctx, input.OriginName, originCountry.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve origin place: %w", err)
	}
	destinationCountry, err := is.reference.GetOrCreateCountryByName(ctx, input.DestinationCountryName)
	if err != nil {
		return nil, fmt.Errorf("resolve destination country: %w", err)
	}
	destination, err := is.reference.GetOrCreatePlace(ctx, input.DestinationName, destinationCountry.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve destination place: %w", err)
	}

	type resolvedVaccination struct {
		vaccineID uuid.UUID
		placeID   uuid.UUID
		slim      *types.SlimVaccination
	}
	resolved := make([]resolvedVaccination, 0, len(input.Vaccinations))
	for _, slim := range input.Vaccinations {
		vaccine, err := is.reference.GetVaccineByName(ctx, slim.VaccineName)
		if err != nil {
			return nil, fmt.Errorf("resolve vaccine %q: %w", slim.VaccineName, err)
		}
		country, err := is.reference.GetOrCreateCountryByName(ctx, slim.CountryProvided)
		if err != nil {
			return nil, fmt.Errorf("resolve vaccination country: %w", err)
		}
		place, err := is.reference.GetOrCreatePlace(ctx, slim.LocationProvided, country.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve vaccination place: %w", err)
		}
		resolved = append(resolved, resolvedVaccination{vaccineID: vaccine.ID, placeID: place.ID, slim: slim})
	}

	var addressCountryID, addressLocalityID uuid.UUID
	if input.QuarantinePlan != nil && input.QuarantinePlan.Address != nil {
		addr := input.QuarantinePlan.Address
		country, err := is.reference.GetOrCreateCountryByName(ctx, addr.AddressCountry)
		if err != nil {
			return nil, fmt.Errorf("resolve address country: %w", err)
		}
		locality, err := is.reference.GetOrCreatePlace(ctx, addr.AddressLocality, country.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve address locality: %w", err)
		}
		addressCountryID = country.ID
		addressLocalityID = locality.ID
	}

	var response *types.TravelResponse
	err = is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		person, err := is.personRepo.GetOrCreate(ctx, tx, &types.Person{
			FamilyName:                input.FamilyName,
			GivenName:                 input.GivenName,
			AdditionalNames:           input.AdditionalNames,
			BirthDate:                 input.BirthDate,
			Gender:                    input.Gender,
			TravelDocumentID:          input.TravelDocumentID,
			TravelDocumentIssuerID:    issuer.ID,
			ApprovedAccessLevel:       input.ApprovedAccessLevel,
			ApprovedAccessGranularity: input.ApprovedAccessGranularity,
			TravelGroupID:             travelGroupID,
		})
		if err != nil {
			return fmt.Errorf("get or create person: %w", err)
		}

		trip, err := is.tripRepo.Create(ctx, tx, &types.Trip{
			TripProvider:           input.TripProvider,
			TravelIdentifier:       input.TravelIdentifier,
			BookingID:              input.BookingID,
			TravelMode:             input.TravelMode,
			OriginPlaceID:          origin.ID,
			DestinationPlaceID:     destination.ID,
			TravelIntent:           input.TravelIntent,
			ScheduledDepartureTime: input.ScheduledDepartureTime,
			ScheduledArrivalTime:   input.ScheduledArrivalTime,
			DepartureTime:          input.DepartureTime,
			ArrivalTime:            input.ArrivalTime,
			TripState:              input.TripState,
			TravelGroupID:          travelGroupID,
			PersonID:               person.ID,
		})
		if err != nil {
			return fmt.Errorf("create trip: %w", err)
		}

		profile, err := is.healthProfileRepo.GetOrCreate(ctx, tx, &types.PublicHealthProfile{
			PersonID:          person.ID,
			SmartHealthcardPk: input.SmartHealthcardPk,
		})
		if err != nil {
			return fmt.Errorf("get or create public health profile: %w", err)
		}

		for _, rv := range resolved {
			if _, err := is.vaccinationRepo.GetOrCreate(ctx, tx, &types.Vaccination{
				VaccineID:             rv.vaccineID,
				DoseProvider:          rv.slim.DoseProvider,
				LocationProvidedID:    rv.placeID,
				ProvidedOn:            rv.slim.ProvidedOn,
				PublicHealthProfileID: profile.ID,
			}); err != nil {
				return fmt.Errorf("get or create vaccination: %w", err)
			}
		}

		if input.CovidTest != nil {
			if _, err := is.covidTestRepo.Create(ctx, tx, &types.CovidTest{
				PublicHealthProfileID: profile.ID,
				TestName:              input.CovidTest.TestName,
				TestType:              input.CovidTest.TestType,
				DateTaken:             input.CovidTest.DateTaken,
				TestResult:            input.CovidTest.TestResult,
			}); err != nil {
				return fmt.Errorf("create covid test: %w", err)
			}
		}

		quarantineRequired := false
		if input.QuarantinePlan != nil {
			plan := types.QuarantinePlanFromSlim(profile.ID, input.QuarantinePlan)
			if input.QuarantinePlan.Address != nil {
				addr := input.QuarantinePlan.Address
				created, err := is.postalAddressRepo.Create(ctx, tx, &types.PostalAddress{
					StreetAddress:     addr.StreetAddress,
					AddressLocalityID: addressLocalityID,
					AddressRegion:     addr.AddressRegion,
					AddressCountryID:  addressCountryID,
					PostalCode:        addr.PostalCode,
					Latitude:          addr.Latitude,
					Longitude:         addr.Longitude,
					AdditionalInfo:    addr.AdditionalInfo,
				})
				if err != nil {
					return fmt.Errorf("create postal address: %w", err)
				}
				plan.PostalAddressID = &created.ID
			}
			if _, err := is.quarantinePlanRepo.Create(ctx, tx, plan); err != nil {
				return fmt.Errorf("create quarantine plan: %w", err)
			}
			quarantineRequired = plan.QuarantineRequired
		}

		referral := is.drawReferral()

		response, err = is.travelResponseRepo.Create(ctx, tx, types.NewTravelResponse(
			postStatusOK,
			trip.ID,
			person.ID,
			input.CbsaID,
			responseCodeIngested,
			referral,
			quarantineRequired,
			"",
		))
		if err != nil {
			return fmt.Errorf("create travel response: %w", err)
		}
		return nil
	})
	if err != nil {
		is.log.Warn("Traveller ingestion failed", "cbsa_id", input.CbsaID, "error", err)
		return nil, err
	}

	is.log.Debug("Ingested traveller", "trip_id", response.TripID, "person_id", response.PersonID, "referral", response.RandomTestingReferral)
	return response, nil
}

// drawReferral is the one policy computation in the pipeline: a Bernoulli
// draw at the configured mandatory-testing rate.
func (is *ingestService) drawReferral() bool {
	is.randMu.Lock()
	defer is.randMu.Unlock()
	return is.randFn() < is.cfg.MandatoryTestingRate
}
