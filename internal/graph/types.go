package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/types"
)

func (b *builder) buildTypes() {
	b.countryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Country",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"countryName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"riskRate":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	b.placeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"placeName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"country": &graphql.Field{
				Type: b.countryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					place, ok := p.Source.(*types.Place)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Place.country")
					}
					return b.Reference.GetCountryByID(p.Context, place.CountryID)
				},
			},
		},
	})

	b.vaccineType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Vaccine",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"vaccineName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"manufacturer":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"vaccineType":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"requiredDoses": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"approved":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"approvedOn":    &graphql.Field{Type: graphql.DateTime},
			"details":       &graphql.Field{Type: graphql.String},
		},
	})

	b.vaccinationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Vaccination",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"doseProvider": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"providedOn":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"vaccine": &graphql.Field{
				Type: b.vaccineType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					v, ok := p.Source.(*types.Vaccination)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Vaccination.vaccine")
					}
					return b.Reference.GetVaccineByID(p.Context, v.VaccineID)
				},
			},
			"locationProvided": &graphql.Field{
				Type: b.placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					v, ok := p.Source.(*types.Vaccination)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Vaccination.locationProvided")
					}
					return b.Reference.GetPlaceByID(p.Context, v.LocationProvidedID)
				},
			},
			"publicHealthProfileId": &graphql.Field{
				Type: uuidScalar,
				Resolve: guarded(types.RoleAnalyst, func(p graphql.ResolveParams) (interface{}, error) {
					v, ok := p.Source.(*types.Vaccination)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Vaccination.publicHealthProfileId")
					}
					return v.PublicHealthProfileID, nil
				}),
			},
		},
	})

	b.covidTestType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CovidTest",
		Fields: graphql.Fields{
			"id":                    &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"publicHealthProfileId": &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"testName":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"testType":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"dateTaken":             &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"testResult":            &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	b.postalAddressType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PostalAddress",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"streetAddress": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressLocality": &graphql.Field{
				Type: b.placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, ok := p.Source.(*types.PostalAddress)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PostalAddress.addressLocality")
					}
					return b.Reference.GetPlaceByID(p.Context, a.AddressLocalityID)
				},
			},
			"addressRegion": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"addressCountry": &graphql.Field{
				Type: b.countryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, ok := p.Source.(*types.PostalAddress)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PostalAddress.addressCountry")
					}
					return b.Reference.GetCountryByID(p.Context, a.AddressCountryID)
				},
			},
			"postalCode":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"latitude":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"longitude":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"additionalInfo": &graphql.Field{Type: graphql.String},
		},
	})

	b.quarantinePlanType = graphql.NewObject(graphql.ObjectConfig{
		Name: "QuarantinePlan",
		Fields: graphql.Fields{
			"id":                       &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"publicHealthProfileId":    &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"dateCreated":              &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"quarantineRequired":       &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"confirmationNoVulnerable": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"active":                   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"address": &graphql.Field{
				Type: b.postalAddressType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					plan, ok := p.Source.(*types.QuarantinePlan)
					if !ok {
						return nil, fmt.Errorf("unexpected source for QuarantinePlan.address")
					}
					if plan.PostalAddressID == nil {
						return nil, nil
					}
					return b.PostalAddressRepo.GetByID(p.Context, nil, *plan.PostalAddressID)
				},
			},
		},
	})

	b.healthProfileType = graphql.NewObject(graphql.ObjectConfig{
		Name: "PublicHealthProfile",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"personId": &graphql.Field{
				Type: uuidScalar,
				Resolve: guarded(types.RoleAnalyst, func(p graphql.ResolveParams) (interface{}, error) {
					profile, ok := p.Source.(*types.PublicHealthProfile)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PublicHealthProfile.personId")
					}
					return profile.PersonID, nil
				}),
			},
			"smartHealthcardPk": &graphql.Field{
				Type: graphql.String,
				Resolve: guarded(types.RoleAnalyst, func(p graphql.ResolveParams) (interface{}, error) {
					profile, ok := p.Source.(*types.PublicHealthProfile)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PublicHealthProfile.smartHealthcardPk")
					}
					return profile.SmartHealthcardPk, nil
				}),
			},
			"vaccinations": &graphql.Field{
				Type: graphql.NewList(b.vaccinationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					profile, ok := p.Source.(*types.PublicHealthProfile)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PublicHealthProfile.vaccinations")
					}
					return b.VaccinationRepo.ListByProfile(p.Context, nil, profile.ID)
				},
			},
			"covidTests": &graphql.Field{
				Type: graphql.NewList(b.covidTestType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					profile, ok := p.Source.(*types.PublicHealthProfile)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PublicHealthProfile.covidTests")
					}
					return b.CovidTestRepo.ListByProfile(p.Context, nil, profile.ID)
				},
			},
			"quarantinePlans": &graphql.Field{
				Type: graphql.NewList(b.quarantinePlanType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					profile, ok := p.Source.(*types.PublicHealthProfile)
					if !ok {
						return nil, fmt.Errorf("unexpected source for PublicHealthProfile.quarantinePlans")
					}
					return b.QuarantinePlanRepo.ListByProfile(p.Context, nil, profile.ID)
				},
			},
		},
	})

	b.personType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"familyName":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"givenName":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"additionalNames": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"birthDate":       &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"gender":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"travelDocumentId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"travelDocumentIssuer": &graphql.Field{
				Type: b.countryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					person, ok := p.Source.(*types.Person)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Person.travelDocumentIssuer")
					}
					return b.Reference.GetCountryByID(p.Context, person.TravelDocumentIssuerID)
				},
			},
			"approvedAccessLevel":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"approvedAccessGranularity": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"travelGroupId":             &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"publicHealthProfile": &graphql.Field{
				Type: b.healthProfileType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					person, ok := p.Source.(*types.Person)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Person.publicHealthProfile")
					}
					profile, err := b.HealthProfileRepo.GetByPersonID(p.Context, nil, person.ID)
					if err != nil {
						if repos.IsNotFound(err) {
							return nil, nil
						}
						return nil, err
					}
					return profile, nil
				},
			},
		},
	})

	b.tripType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Trip",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"tripProvider":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"travelIdentifier": &graphql.Field{Type: graphql.String},
			"bookingId":        &graphql.Field{Type: graphql.String},
			"travelMode":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"origin": &graphql.Field{
				Type: b.placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					trip, ok := p.Source.(*types.Trip)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Trip.origin")
					}
					return b.Reference.GetPlaceByID(p.Context, trip.OriginPlaceID)
				},
			},
			"destination": &graphql.Field{
				Type: b.placeType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					trip, ok := p.Source.(*types.Trip)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Trip.destination")
					}
					return b.Reference.GetPlaceByID(p.Context, trip.DestinationPlaceID)
				},
			},
			"transitPoints": &graphql.Field{
				Type: graphql.NewList(b.placeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					trip, ok := p.Source.(*types.Trip)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Trip.transitPoints")
					}
					places := make([]*types.Place, 0, len(trip.TransitPointPlaceIDs))
					for _, id := range trip.TransitPointPlaceIDs {
						place, err := b.Reference.GetPlaceByID(p.Context, id)
						if err != nil {
							return nil, err
						}
						places = append(places, place)
					}
					return places, nil
				},
			},
			"travelIntent":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"scheduledDepartureTime": &graphql.Field{Type: graphql.DateTime},
			"scheduledArrivalTime":   &graphql.Field{Type: graphql.DateTime},
			"departureTime":          &graphql.Field{Type: graphql.DateTime},
			"arrivalTime":            &graphql.Field{Type: graphql.DateTime},
			"tripState":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"travelGroupId":          &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"person": &graphql.Field{
				Type: b.personType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					trip, ok := p.Source.(*types.Trip)
					if !ok {
						return nil, fmt.Errorf("unexpected source for Trip.person")
					}
					people, err := b.PersonRepo.GetByIDs(p.Context, nil, []uuid.UUID{trip.PersonID})
					if err != nil {
						return nil, err
					}
					if len(people) == 0 {
						return nil, nil
					}
					return people[0], nil
				},
			},
		},
	})

	b.travelGroupType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TravelGroup",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"people": &graphql.Field{
				Type: graphql.NewList(b.personType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					group, ok := p.Source.(*types.TravelGroup)
					if !ok {
						return nil, fmt.Errorf("unexpected source for TravelGroup.people")
					}
					return b.PersonRepo.ListByTravelGroup(p.Context, nil, group.ID)
				},
			},
			"trips": &graphql.Field{
				Type: graphql.NewList(b.tripType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					group, ok := p.Source.(*types.TravelGroup)
					if !ok {
						return nil, fmt.Errorf("unexpected source for TravelGroup.trips")
					}
					return b.TripRepo.ListByTravelGroup(p.Context, nil, group.ID)
				},
			},
		},
	})

	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: uuidScalar,
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(*types.User)
					if !ok {
						return nil, fmt.Errorf("unexpected source for User.id")
					}
					return user.ID, nil
				}),
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(*types.User)
					if !ok {
						return nil, fmt.Errorf("unexpected source for User.email")
					}
					return user.Email, nil
				}),
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(*types.User)
					if !ok {
						return nil, fmt.Errorf("unexpected source for User.name")
					}
					return user.Name, nil
				}),
			},
			"role":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"accessLevel": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	b.slimUserType = graphql.NewObject(graphql.ObjectConfig{
		Name: "SlimUser",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"accessLevel": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	b.signInType = graphql.NewObject(graphql.ObjectConfig{
		Name: "SignInPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(b.slimUserType)},
		},
	})

	b.travelResponseType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TravelResponse",
		Fields: graphql.Fields{
			"id":                    &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"postStatus":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tripId":                &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"personId":              &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
			"cbsaId":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"responseCode":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"randomTestingReferral": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"quarantineRequired":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"dateTime":              &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"details":               &graphql.Field{Type: graphql.String},
		},
	})
}
