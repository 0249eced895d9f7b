package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openarrive/traveller-backend/internal/repos"
	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/types"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAuthService(log, AuthConfig{
		JWTSecret:      "test-secret",
		PasswordPepper: "test-pepper",
		TokenDuration:  2 * time.Hour,
	}, repos.NewUserRepo(gdb, log))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	user, err := auth.Register(ctx, &types.UserInput{
		Name:     "Border Officer",
		Email:    "Officer@Example.org",
		Password: "hunter22",
		Role:     "operator",
	}, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, "officer@example.org", user.Email)
	require.Equal(t, string(types.RoleOperator), user.Role)
	require.NotEqual(t, "hunter22", user.Hash)

	token, loggedIn, err := auth.Login(ctx, "officer@example.org", "hunter22")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)
	require.Equal(t, string(types.RoleOperator), claims.Role)
	require.True(t, claims.ExpiresAt.After(time.Now().Add(time.Hour)))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	_, err := auth.Register(ctx, &types.UserInput{
		Name:     "Analyst",
		Email:    "analyst@example.org",
		Password: "correct-horse",
		Role:     "analyst",
	}, uuid.Nil)
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "analyst@example.org", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email fails the same way as a wrong password.
	_, _, err = auth.Login(ctx, "nobody@example.org", "correct-horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	input := &types.UserInput{Name: "A", Email: "dup@example.org", Password: "pw", Role: "user"}
	_, err := auth.Register(ctx, input, uuid.Nil)
	require.NoError(t, err)

	_, err = auth.Register(ctx, input, uuid.Nil)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	auth := newAuthFixture(t)

	_, err := auth.Register(ctx, &types.UserInput{
		Name:     "U",
		Email:    "u@example.org",
		Password: "pw",
		Role:     "user",
	}, uuid.Nil)
	require.NoError(t, err)

	token, _, err := auth.Login(ctx, "u@example.org", "pw")
	require.NoError(t, err)

	_, err = auth.ParseToken(token + "x")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = auth.ParseToken("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}
