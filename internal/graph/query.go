package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/openarrive/traveller-backend/internal/types"
)

func argCount(p graphql.ResolveParams) int {
	if n, ok := p.Args["count"].(int); ok && n > 0 {
		return n
	}
	return 0
}

func argID(p graphql.ResolveParams) (uuid.UUID, error) {
	id, ok := p.Args["id"].(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid id argument")
	}
	return id, nil
}

func (b *builder) queryRoot() *graphql.Object {
	countArg := graphql.FieldConfigArgument{
		"count": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}
	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidScalar)},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allTrips": &graphql.Field{
				Type: graphql.NewList(b.tripType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.TripRepo.List(p.Context, nil, 0)
				},
			},
			"getTrips": &graphql.Field{
				Type: graphql.NewList(b.tripType),
				Args: countArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.TripRepo.List(p.Context, nil, argCount(p))
				},
			},
			"tripById": &graphql.Field{
				Type: b.tripType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p)
					if err != nil {
						return nil, err
					}
					return b.TripRepo.GetByID(p.Context, nil, id)
				},
			},
			"allTravelGroups": &graphql.Field{
				Type: graphql.NewList(b.travelGroupType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.TravelGroupRepo.List(p.Context, nil)
				},
			},
			"travelGroupByID": &graphql.Field{
				Type: b.travelGroupType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p)
					if err != nil {
						return nil, err
					}
					return b.TravelGroupRepo.GetByID(p.Context, nil, id)
				},
			},
			"allPeople": &graphql.Field{
				Type: graphql.NewList(b.personType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.PersonRepo.List(p.Context, nil, 0)
				},
			},
			"getPeople": &graphql.Field{
				Type: graphql.NewList(b.personType),
				Args: countArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.PersonRepo.List(p.Context, nil, argCount(p))
				},
			},
			"allVaccinations": &graphql.Field{
				Type: graphql.NewList(b.vaccinationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.VaccinationRepo.List(p.Context, nil, 0)
				},
			},
			"getVaccinations": &graphql.Field{
				Type: graphql.NewList(b.vaccinationType),
				Args: countArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.VaccinationRepo.List(p.Context, nil, argCount(p))
				},
			},
			"allQuarantinePlans": &graphql.Field{
				Type: graphql.NewList(b.quarantinePlanType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.QuarantinePlanRepo.List(p.Context, nil, 0)
				},
			},
			"getQuarantinePlans": &graphql.Field{
				Type: graphql.NewList(b.quarantinePlanType),
				Args: countArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.QuarantinePlanRepo.List(p.Context, nil, argCount(p))
				},
			},
			"allCovidTestResults": &graphql.Field{
				Type: graphql.NewList(b.covidTestType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.CovidTestRepo.List(p.Context, nil, 0)
				},
			},
			"getCovidTestResults": &graphql.Field{
				Type: graphql.NewList(b.covidTestType),
				Args: countArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.CovidTestRepo.List(p.Context, nil, argCount(p))
				},
			},
			"allUsers": &graphql.Field{
				Type: graphql.NewList(b.userType),
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					return b.Users.List(p.Context)
				}),
			},
			"getUserByEmail": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					email, _ := p.Args["email"].(string)
					return b.Users.GetByEmail(p.Context, email)
				}),
			},
			"getUserById": &graphql.Field{
				Type: b.userType,
				Args: idArg,
				Resolve: guarded(types.RoleAdmin, func(p graphql.ResolveParams) (interface{}, error) {
					id, err := argID(p)
					if err != nil {
						return nil, err
					}
					return b.Users.GetByID(p.Context, id)
				}),
			},
		},
	})
}
