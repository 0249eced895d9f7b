package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/services"
)

// SchemaConfig carries everything the resolvers reach for. Repos serve the
// plain list/get queries and relation fields; services own ingestion, auth,
// and the live feed.
type SchemaConfig struct {
	Log                *logger.Logger
	Reference          services.ReferenceService
	Ingest             services.IngestService
	Auth               services.AuthService
	Users              services.UserService
	Feed               services.TravelerFeed
	PersonRepo         repos.PersonRepo
	TravelGroupRepo    repos.TravelGroupRepo
	TripRepo           repos.TripRepo
	HealthProfileRepo  repos.HealthProfileRepo
	VaccinationRepo    repos.VaccinationRepo
	CovidTestRepo      repos.CovidTestRepo
	QuarantinePlanRepo repos.QuarantinePlanRepo
	PostalAddressRepo  repos.PostalAddressRepo
}

type builder struct {
	SchemaConfig

	countryType        *graphql.Object
	placeType          *graphql.Object
	vaccineType        *graphql.Object
	vaccinationType    *graphql.Object
	covidTestType      *graphql.Object
	postalAddressType  *graphql.Object
	quarantinePlanType *graphql.Object
	healthProfileType  *graphql.Object
	personType         *graphql.Object
	tripType           *graphql.Object
	travelGroupType    *graphql.Object
	userType           *graphql.Object
	slimUserType       *graphql.Object
	signInType         *graphql.Object
	travelResponseType *graphql.Object
}

// NewSchema assembles the executable schema.
func NewSchema(cfg SchemaConfig) (graphql.Schema, error) {
	b := &builder{SchemaConfig: cfg}
	b.buildTypes()
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryRoot(),
		Mutation: b.mutationRoot(),
	})
}
