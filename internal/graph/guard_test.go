package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openarrive/traveller-backend/internal/requestdata"
	"github.com/openarrive/traveller-backend/internal/types"
)

func ctxWithRole(role types.Role) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		Role:    role,
		HasRole: true,
	})
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	err := RequireRole(context.Background(), types.RoleUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), "authentication required")
}

func TestRequireRolePropagatesTokenError(t *testing.T) {
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenErr: errors.New("invalid or expired token"),
	})
	err := RequireRole(ctx, types.RoleUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid or expired token")
}

func TestRequireRoleBelowMinimum(t *testing.T) {
	err := RequireRole(ctxWithRole(types.RoleUser), types.RoleOperator)
	require.Error(t, err)
	require.Contains(t, err.Error(), "access denied: OPERATOR role required")

	err = RequireRole(ctxWithRole(types.RoleOperator), types.RoleAdmin)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ADMIN role required")
}

func TestRequireRoleSatisfied(t *testing.T) {
	require.NoError(t, RequireRole(ctxWithRole(types.RoleOperator), types.RoleOperator))
	require.NoError(t, RequireRole(ctxWithRole(types.RoleAnalyst), types.RoleOperator))

	// Admin satisfies every minimum.
	for _, min := range []types.Role{types.RoleUser, types.RoleOperator, types.RoleAnalyst, types.RoleAdmin} {
		require.NoError(t, RequireRole(ctxWithRole(types.RoleAdmin), min))
	}
}
