package graph

import (
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/openarrive/traveller-backend/internal/requestdata"
	"github.com/openarrive/traveller-backend/internal/services"
	"github.com/openarrive/traveller-backend/internal/types"
)

type signInPayload struct {
	Token string          `json:"token"`
	User  *types.SlimUser `json:"user"`
}

// decodeArg converts a coerced GraphQL argument value into a typed input
// struct through its json tags.
func decodeArg(value interface{}, out interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode argument: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode argument: %w", err)
	}
	return nil
}

func (b *builder) mutationRoot() *graphql.Object {
	addressInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SlimAddressInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"streetAddress":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"addressLocality": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"addressRegion":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"addressCountry":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"postalCode":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"latitude":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"longitude":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"additionalInfo":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	quarantinePlanInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SlimQuarantinePlanInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"quarantineRequired":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
			"confirmationNoVulnerable": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
			"active":                   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
			"address":                  &graphql.InputObjectFieldConfig{Type: addressInput},
		},
	})

	vaccinationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SlimVaccinationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"vaccineName":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"doseProvider":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"locationProvided": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"countryProvided":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"providedOn":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	covidTestInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SlimCovidTestInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"testName":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"testType":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"dateTaken":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.DateTime)},
			"testResult": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	travelerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TravelerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"familyName":                &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"givenName":                 &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"additionalNames":           &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"birthDate":                 &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.DateTime)},
			"gender":                    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"travelDocumentId":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"travelDocumentIssuer":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"approvedAccessLevel":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"approvedAccessGranularity": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"tripProvider":              &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"travelIdentifier":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"bookingId":                 &graphql.InputObjectFieldConfig{Type: graphql.String},
			"travelMode":                &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"originName":                &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"originCountryName":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"destinationName":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"destinationCountryName":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"travelIntent":              &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"scheduledDepartureTime":    &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"scheduledArrivalTime":      &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"departureTime":             &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"arrivalTime":               &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"tripState":                 &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"smartHealthcardPk":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"vaccinations":              &graphql.InputObjectFieldConfig{Type: graphql.NewList(vaccinationInput)},
			"covidTest":                 &graphql.InputObjectFieldConfig{Type: covidTestInput},
			"quarantinePlan":            &graphql.InputObjectFieldConfig{Type: quarantinePlanInput},
			"dateTime":                  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.DateTime)},
			"cbsaOfficerId":             &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"cbsaId":                    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"role":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"ingestTravelerBatch": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(b.travelResponseType)),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(travelerInput))),
					},
				},
				Resolve: guarded(types.RoleOperator, func(p graphql.ResolveParams) (interface{}, error) {
					var data []*types.TravelerInput
					if err := decodeArg(p.Args["data"], &data); err != nil {
						return nil, err
					}
					if len(data) == 0 {
						return nil, fmt.Errorf("empty traveler batch")
					}

					responses, err := b.Ingest.ProcessBatch(p.Context, data)
					if err != nil {
						return nil, err
					}

					// Fan-out is best effort; a feed outage never fails
					// an already committed batch.
					for _, resp := range responses {
						if err := b.Feed.Publish(p.Context, services.FeedEventFromResponse(resp)); err != nil {
							b.Log.Warn("Feed publish failed", "trip_id", resp.TripID, "error", err)
						}
					}
					return responses, nil
				}),
			},
			"signIn": &graphql.Field{
				Type: graphql.NewNonNull(b.signInType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					token, user, err := b.Auth.Login(p.Context, email, password)
					if err != nil {
						return nil, err
					}
					return &signInPayload{Token: token, User: user.Slim()}, nil
				},
			},
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Args: graphql.FieldConfigArgument{
					"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)},
				},
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					var input types.UserInput
					if err := decodeArg(p.Args["user"], &input); err != nil {
						return nil, err
					}
					rd := requestdata.GetRequestData(p.Context)
					return b.Auth.Register(p.Context, &input, rd.UserID)
				}),
			},
			"ping": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if data, _ := p.Args["data"].(string); data == "PING" {
						return "PONG", nil
					}
					return "WRONG", nil
				},
			},
		},
	})
}
