package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/types"
)

// ReferenceService resolves low-cardinality lookup entities (Country, Place,
// Vaccine) by natural key through an in-memory read-through cache. Countries
// and places are created lazily on first use; vaccines are seeded out of band
// and only looked up. Each entity type owns its own lock, and concurrent
// misses for the same key are collapsed through singleflight so one process
// inserts at most one row per unseen name. Reference rows are written outside
// any caller transaction: they are shared lookup data, not part of a single
// traveller's unit of work.
type ReferenceService interface {
	GetOrCreateCountryByName(ctx context.Context, name string) (*types.Country, error)
	GetCountryByID(ctx context.Context, id uuid.UUID) (*types.Country, error)
	GetOrCreatePlace(ctx context.Context, name string, countryID uuid.UUID) (*types.Place, error)
	GetPlaceByID(ctx context.Context, id uuid.UUID) (*types.Place, error)
	GetVaccineByName(ctx context.Context, name string) (*types.Vaccine, error)
	GetVaccineByID(ctx context.Context, id uuid.UUID) (*types.Vaccine, error)
	// WarmCache preloads all reference rows, mirroring the old
	// load-on-startup behavior.
	WarmCache(ctx context.Context) error
}

type referenceService struct {
	log         *logger.Logger
	countryRepo repos.CountryRepo
	placeRepo   repos.PlaceRepo
	vaccineRepo repos.VaccineRepo

	countryMu sync.RWMutex
	countries map[uuid.UUID]*types.Country

	placeMu sync.RWMutex
	places  map[uuid.UUID]*types.Place

	vaccineMu sync.RWMutex
	vaccines  map[uuid.UUID]*types.Vaccine

	flight singleflight.Group
}

func NewReferenceService(log *logger.Logger, countryRepo repos.CountryRepo, placeRepo repos.PlaceRepo, vaccineRepo repos.VaccineRepo) ReferenceService {
	return &referenceService{
		log:         log.With("service", "ReferenceService"),
		countryRepo: countryRepo,
		placeRepo:   placeRepo,
		vaccineRepo: vaccineRepo,
		countries:   make(map[uuid.UUID]*types.Country),
		places:      make(map[uuid.UUID]*types.Place),
		vaccines:    make(map[uuid.UUID]*types.Vaccine),
	}
}

func (rs *referenceService) WarmCache(ctx context.Context) error {
	countries, err := rs.countryRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("warm country cache: %w", err)
	}
	rs.countryMu.Lock()
	for _, c := range countries {
		rs.countries[c.ID] = c
	}
	rs.countryMu.Unlock()

	places, err := rs.placeRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("warm place cache: %w", err)
	}
	rs.placeMu.Lock()
	for _, p := range places {
		rs.places[p.ID] = p
	}
	rs.placeMu.Unlock()

	vaccines, err := rs.vaccineRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("warm vaccine cache: %w", err)
	}
	rs.vaccineMu.Lock()
	for _, v := range vaccines {
		rs.vaccines[v.ID] = v
	}
	rs.vaccineMu.Unlock()

	rs.log.Info("Reference cache warmed", "countries", len(countries), "places", len(places), "vaccines", len(vaccines))
	return nil
}

func (rs *referenceService) GetOrCreateCountryByName(ctx context.Context, name string) (*types.Country, error) {
	if c := rs.lookupCountryByName(name); c != nil {
		return c, nil
	}

	val, err, _ := rs.flight.Do("country:"+name, func() (interface{}, error) {
		if c := rs.lookupCountryByName(name); c != nil {
			return c, nil
		}
		c, err := rs.countryRepo.GetByName(ctx, nil, name)
		if err != nil {
			if !repos.IsNotFound(err) {
				return nil, err
			}
			c, err = rs.countryRepo.Create(ctx, nil, &types.Country{
				CountryName: name,
				RiskRate:    types.DefaultCountryRiskRate,
			})
			if err != nil {
				return nil, err
			}
			rs.log.Debug("Created country", "name", name, "id", c.ID)
		}
		rs.countryMu.Lock()
		rs.countries[c.ID] = c
		rs.countryMu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneCountry(val.(*types.Country)), nil
}

func (rs *referenceService) GetCountryByID(ctx context.Context, id uuid.UUID) (*types.Country, error) {
	rs.countryMu.RLock()
	c, ok := rs.countries[id]
	rs.countryMu.RUnlock()
	if ok {
		return cloneCountry(c), nil
	}
	c, err := rs.countryRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	rs.countryMu.Lock()
	rs.countries[c.ID] = c
	rs.countryMu.Unlock()
	return cloneCountry(c), nil
}

func (rs *referenceService) GetOrCreatePlace(ctx context.Context, name string, countryID uuid.UUID) (*types.Place, error) {
	if p := rs.lookupPlace(name, countryID); p != nil {
		return p, nil
	}

	val, err, _ := rs.flight.Do(fmt.Sprintf("place:%s:%s", countryID, name), func() (interface{}, error) {
		if p := rs.lookupPlace(name, countryID); p != nil {
			return p, nil
		}
		p, err := rs.placeRepo.GetByNameAndCountry(ctx, nil, name, countryID)
		if err != nil {
			if !repos.IsNotFound(err) {
				return nil, err
			}
			p, err = rs.placeRepo.Create(ctx, nil, &types.Place{
				PlaceName: name,
				CountryID: countryID,
			})
			if err != nil {
				return nil, err
			}
			rs.log.Debug("Created place", "name", name, "country_id", countryID, "id", p.ID)
		}
		rs.placeMu.Lock()
		rs.places[p.ID] = p
		rs.placeMu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return clonePlace(val.(*types.Place)), nil
}

func (rs *referenceService) GetPlaceByID(ctx context.Context, id uuid.UUID) (*types.Place, error) {
	rs.placeMu.RLock()
	p, ok := rs.places[id]
	rs.placeMu.RUnlock()
	if ok {
		return clonePlace(p), nil
	}
	p, err := rs.placeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	rs.placeMu.Lock()
	rs.places[p.ID] = p
	rs.placeMu.Unlock()
	return clonePlace(p), nil
}

func (rs *referenceService) GetVaccineByName(ctx context.Context, name string) (*types.Vaccine, error) {
	rs.vaccineMu.RLock()
	for _, v := range rs.vaccines {
		if v.VaccineName == name {
			rs.vaccineMu.RUnlock()
			return cloneVaccine(v), nil
		}
	}
	rs.vaccineMu.RUnlock()

	v, err := rs.vaccineRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, err
	}
	rs.vaccineMu.Lock()
	rs.vaccines[v.ID] = v
	rs.vaccineMu.Unlock()
	return cloneVaccine(v), nil
}

func (rs *referenceService) GetVaccineByID(ctx context.Context, id uuid.UUID) (*types.Vaccine, error) {
	rs.vaccineMu.RLock()
	v, ok := rs.vaccines[id]
	rs.vaccineMu.RUnlock()
	if ok {
		return cloneVaccine(v), nil
	}
	v, err := rs.vaccineRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	rs.vaccineMu.Lock()
	rs.vaccines[v.ID] = v
	rs.vaccineMu.Unlock()
	return cloneVaccine(v), nil
}

func (rs *referenceService) lookupCountryByName(name string) *types.Country {
	rs.countryMu.RLock()
	defer rs.countryMu.RUnlock()
	for _, c := range rs.countries {
		if c.CountryName == name {
			return cloneCountry(c)
		}
	}
	return nil
}

func (rs *referenceService) lookupPlace(name string, countryID uuid.UUID) *types.Place {
	rs.placeMu.RLock()
	defer rs.placeMu.RUnlock()
	for _, p := range rs.places {
		if p.PlaceName == name && p.CountryID == countryID {
			return clonePlace(p)
		}
	}
	return nil
}

// Callers get clones so cached rows are never shared mutable state.
func cloneCountry(c *types.Country) *types.Country {
	out := *c
	return &out
}

func clonePlace(p *types.Place) *types.Place {
	out := *p
	out.Country = nil
	return &out
}

func cloneVaccine(v *types.Vaccine) *types.Vaccine {
	out := *v
	return &out
}
