package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/openarrive/traveller-backend/internal/requestdata"
	"github.com/openarrive/traveller-backend/internal/types"
)

// RequireRole checks the caller's role claim against a minimum. Checks run
// before the resolver body, so a denial leaves no side effects.
func RequireRole(ctx context.Context, min types.Role) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || !rd.HasRole {
		if rd != nil && rd.TokenErr != nil {
			return fmt.Errorf("authentication required: %v", rd.TokenErr)
		}
		return errors.New("authentication required")
	}
	if !rd.Role.Meets(min) {
		return fmt.Errorf("access denied: %s role required", min)
	}
	return nil
}

// guarded wraps a resolver with a minimum-role check.
func guarded(min types.Role, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if err := RequireRole(p.Context, min); err != nil {
			return nil, err
		}
		return resolve(p)
	}
}
