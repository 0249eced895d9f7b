package graph

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/services"
	"github.com/openarrive/traveller-backend/internal/types"
)

type schemaFixture struct {
	schema  graphql.Schema
	db      *gorm.DB
	auth    services.AuthService
	vaccine repos.VaccineRepo
}

func newSchemaFixture(t *testing.T) *schemaFixture {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	countryRepo := repos.NewCountryRepo(gdb, log)
	placeRepo := repos.NewPlaceRepo(gdb, log)
	vaccineRepo := repos.NewVaccineRepo(gdb, log)
	personRepo := repos.NewPersonRepo(gdb, log)
	travelGroupRepo := repos.NewTravelGroupRepo(gdb, log)
	tripRepo := repos.NewTripRepo(gdb, log)
	healthProfileRepo := repos.NewHealthProfileRepo(gdb, log)
	vaccinationRepo := repos.NewVaccinationRepo(gdb, log)
	covidTestRepo := repos.NewCovidTestRepo(gdb, log)
	quarantinePlanRepo := repos.NewQuarantinePlanRepo(gdb, log)
	postalAddressRepo := repos.NewPostalAddressRepo(gdb, log)
	travelResponseRepo := repos.NewTravelResponseRepo(gdb, log)
	userRepo := repos.NewUserRepo(gdb, log)

	reference := services.NewReferenceService(log, countryRepo, placeRepo, vaccineRepo)
	ingest := services.NewIngestService(
		gdb, log,
		services.IngestConfig{MandatoryTestingRate: 0},
		reference,
		personRepo, travelGroupRepo, tripRepo, healthProfileRepo,
		vaccinationRepo, covidTestRepo, quarantinePlanRepo,
		postalAddressRepo, travelResponseRepo,
	)
	auth := services.NewAuthService(log, services.AuthConfig{
		JWTSecret:      "test-secret",
		PasswordPepper: "pepper",
		TokenDuration:  time.Hour,
	}, userRepo)
	users := services.NewUserService(log, userRepo, auth)

	schema, err := NewSchema(SchemaConfig{
		Log:                log,
		Reference:          reference,
		Ingest:             ingest,
		Auth:               auth,
		Users:              users,
		Feed:               services.NewNoopFeed(),
		PersonRepo:         personRepo,
		TravelGroupRepo:    travelGroupRepo,
		TripRepo:           tripRepo,
		HealthProfileRepo:  healthProfileRepo,
		VaccinationRepo:    vaccinationRepo,
		CovidTestRepo:      covidTestRepo,
		QuarantinePlanRepo: quarantinePlanRepo,
		PostalAddressRepo:  postalAddressRepo,
	})
	require.NoError(t, err)

	return &schemaFixture{schema: schema, db: gdb, auth: auth, vaccine: vaccineRepo}
}

func (f *schemaFixture) do(ctx context.Context, query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         f.schema,
		RequestString:  query,
		Context:        ctx,
		VariableValues: vars,
	})
}

func travelerVars() map[string]interface{} {
	return map[string]interface{}{
		"data": []interface{}{map[string]interface{}{
			"familyName":                "Okafor",
			"givenName":                 "Grace",
			"birthDate":                 "1985-02-17T00:00:00Z",
			"gender":                    "female",
			"travelDocumentId":          "A00112233",
			"travelDocumentIssuer":      "Freedonia",
			"approvedAccessLevel":       "medical_records",
			"approvedAccessGranularity": "aggregated",
			"tripProvider":              "test-airline",
			"travelMode":                "AIR",
			"originName":                "Freedonia Intl",
			"originCountryName":         "Freedonia",
			"destinationName":           "Port Central",
			"destinationCountryName":    "Freedonia",
			"travelIntent":              "Entry",
			"tripState":                 "planned",
			"vaccinations": []interface{}{map[string]interface{}{
				"vaccineName":      "Comirnaty",
				"doseProvider":     "clinic A",
				"locationProvided": "Freedonia Intl",
				"countryProvided":  "Freedonia",
				"providedOn":       "2021-05-02T00:00:00Z",
			}},
			"dateTime":      "2021-09-03T14:05:00Z",
			"cbsaOfficerId": "officer-001",
			"cbsaId":        "port-01",
		}},
	}
}

const ingestMutation = `
mutation Ingest($data: [TravelerInput!]!) {
	ingestTravelerBatch(data: $data) {
		postStatus
		responseCode
		quarantineRequired
	}
}`

func TestPingMutation(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.do(context.Background(), `mutation { ping(data: "PING") }`, nil)
	require.False(t, result.HasErrors())
	data := result.Data.(map[string]interface{})
	require.Equal(t, "PONG", data["ping"])

	result = f.do(context.Background(), `mutation { ping(data: "HELLO") }`, nil)
	require.False(t, result.HasErrors())
	data = result.Data.(map[string]interface{})
	require.Equal(t, "WRONG", data["ping"])
}

func TestIngestMutationRequiresOperator(t *testing.T) {
	f := newSchemaFixture(t)

	result := f.do(ctxWithRole(types.RoleUser), ingestMutation, travelerVars())
	require.True(t, result.HasErrors())
	require.Contains(t, result.Errors[0].Message, "OPERATOR role required")

	// Denial leaves no rows behind.
	var groups int64
	require.NoError(t, f.db.Model(&types.TravelGroup{}).Count(&groups).Error)
	require.Zero(t, groups)
	var people int64
	require.NoError(t, f.db.Model(&types.Person{}).Count(&people).Error)
	require.Zero(t, people)
}

func TestIngestMutationEndToEnd(t *testing.T) {
	f := newSchemaFixture(t)
	_, err := f.vaccine.Create(context.Background(), nil, &types.Vaccine{
		VaccineName:   "Comirnaty",
		Manufacturer:  "Pfizer-BioNTech",
		VaccineType:   "mRNA",
		RequiredDoses: 2,
		Approved:      true,
	})
	require.NoError(t, err)

	result := f.do(ctxWithRole(types.RoleOperator), ingestMutation, travelerVars())
	require.Falsef(t, result.HasErrors(), "unexpected errors: %v", result.Errors)

	data := result.Data.(map[string]interface{})
	responses := data["ingestTravelerBatch"].([]interface{})
	require.Len(t, responses, 1)
	first := responses[0].(map[string]interface{})
	require.Equal(t, "OK", first["postStatus"])
	require.Equal(t, "I", first["responseCode"])

	// The queries see the ingested trip.
	result = f.do(ctxWithRole(types.RoleOperator), `{ allTrips { tripProvider person { familyName } } }`, nil)
	require.Falsef(t, result.HasErrors(), "unexpected errors: %v", result.Errors)
	trips := result.Data.(map[string]interface{})["allTrips"].([]interface{})
	require.Len(t, trips, 1)
	trip := trips[0].(map[string]interface{})
	require.Equal(t, "test-airline", trip["tripProvider"])
	require.Equal(t, "Okafor", trip["person"].(map[string]interface{})["familyName"])
}

func TestProfileFieldsGatedToAnalyst(t *testing.T) {
	f := newSchemaFixture(t)
	_, err := f.vaccine.Create(context.Background(), nil, &types.Vaccine{
		VaccineName:   "Comirnaty",
		Manufacturer:  "Pfizer-BioNTech",
		VaccineType:   "mRNA",
		RequiredDoses: 2,
		Approved:      true,
	})
	require.NoError(t, err)

	result := f.do(ctxWithRole(types.RoleOperator), ingestMutation, travelerVars())
	require.Falsef(t, result.HasErrors(), "unexpected errors: %v", result.Errors)

	const query = `{ allPeople { publicHealthProfile { id personId } } }`

	result = f.do(ctxWithRole(types.RoleOperator), query, nil)
	require.True(t, result.HasErrors())
	require.Contains(t, result.Errors[0].Message, "ANALYST role required")

	result = f.do(ctxWithRole(types.RoleAnalyst), query, nil)
	require.Falsef(t, result.HasErrors(), "unexpected errors: %v", result.Errors)
}

func TestUserQueriesGatedToAdmin(t *testing.T) {
	f := newSchemaFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &types.UserInput{
		Name:     "Border Officer",
		Email:    "officer@example.org",
		Password: "pw",
		Role:     "operator",
	}, uuid.Nil)
	require.NoError(t, err)

	const query = `{ getUserByEmail(email: "officer@example.org") { email role } }`

	result := f.do(ctxWithRole(types.RoleAnalyst), query, nil)
	require.True(t, result.HasErrors())
	require.Contains(t, result.Errors[0].Message, "ADMIN role required")

	result = f.do(ctxWithRole(types.RoleAdmin), query, nil)
	require.Falsef(t, result.HasErrors(), "unexpected errors: %v", result.Errors)
	user := result.Data.(map[string]interface{})["getUserByEmail"].(map[string]interface{})
	require.Equal(t, "officer@example.org", user["email"])
	require.Equal(t, "OPERATOR", user["role"])
}

func TestSignInMutation(t *testing.T) {
	f := newSchemaFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &types.UserInput{
		Name:     "Analyst",
		Email:    "analyst@example.org",
		Password: "correct-horse",
		Role:     "analyst",
	}, uuid.Nil)
	require.NoError(t, err)

	result := f.do(ctx, `mutation { signIn(email: "analyst@example.org", password: "correct-horse") { token user { email role } } }`, nil)
	require.Falsef(t, result.HasErrors(), "unexpected errors: %v", result.Errors)
	payload := result.Data.(map[string]interface{})["signIn"].(map[string]interface{})
	require.NotEmpty(t, payload["token"])
	user := payload["user"].(map[string]interface{})
	require.Equal(t, "analyst@example.org", user["email"])
	require.Equal(t, "ANALYST", user["role"])

	result = f.do(ctx, `mutation { signIn(email: "analyst@example.org", password: "wrong") { token } }`, nil)
	require.True(t, result.HasErrors())
}
