package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/openarrive/traveller-backend/internal/repos/testutil"
	"github.com/openarrive/traveller-backend/internal/types"
)

func TestUserRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, log)

	created, err := repo.Create(ctx, tx, &types.User{
		Hash:  "not-a-real-hash",
		Email: "officer@example.org",
		Role:  string(types.RoleOperator),
		Name:  "Border Officer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, "officer@example.org")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatal("lookup returned a different user")
	}

	exists, err := repo.EmailExists(ctx, tx, "officer@example.org")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatal("email should exist")
	}

	exists, err = repo.EmailExists(ctx, tx, "nobody@example.org")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Fatal("unknown email should not exist")
	}
}

func TestUserRepoNotFound(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewUserRepo(gdb, log)

	_, err := repo.GetByID(ctx, tx, uuid.New())
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
}
